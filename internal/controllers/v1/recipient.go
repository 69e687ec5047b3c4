package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/grovesmith/backend/internal/auth"
	"github.com/grovesmith/backend/internal/events"
	"github.com/grovesmith/backend/internal/httputil"
	"github.com/grovesmith/backend/internal/models"
	"golang.org/x/exp/slices"
)

const resetConfirmation = "yes-reset-this-account"

func (co Controller) RegisterRecipientRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsRecipients)
		r.GET("", co.GetRecipients)
		r.POST("", co.CreateRecipients)
	}
	{
		r.OPTIONS("/:id", OptionsRecipientDetail)
		r.GET("/:id", co.GetRecipient)
		r.PATCH("/:id", co.UpdateRecipient)
	}
	{
		r.OPTIONS("/:id/archive", httputil.OptionsPost)
		r.POST("/:id/archive", co.ArchiveRecipient)
		r.OPTIONS("/:id/unarchive", httputil.OptionsPost)
		r.POST("/:id/unarchive", co.UnarchiveRecipient)
		r.OPTIONS("/:id/reset", httputil.OptionsPost)
		r.POST("/:id/reset", co.ResetRecipient)
		r.OPTIONS("/:id/undistributed", httputil.OptionsGet)
		r.GET("/:id/undistributed", co.GetUndistributed)
	}
	{
		r.OPTIONS("/:id/distributions", httputil.OptionsGetPost)
		r.GET("/:id/distributions", co.GetDistributions)
		r.POST("/:id/distributions", co.CreateDistribution)
	}
	{
		r.OPTIONS("/:id/transactions", httputil.OptionsGet)
		r.GET("/:id/transactions", co.GetTransactions)
	}
	{
		r.OPTIONS("/:id/give", httputil.OptionsGet)
		r.GET("/:id/give", co.GetGive)
	}
	{
		r.OPTIONS("/:id/causes", httputil.OptionsGetPost)
		r.GET("/:id/causes", co.GetCauses)
		r.POST("/:id/causes", co.CreateCause)
	}
}

// OptionsRecipients returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Recipients
//	@Success		204
//	@Router			/v1/recipients [options]
func OptionsRecipients(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsRecipientDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Recipients
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/recipients/{id} [options]
func OptionsRecipientDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	managerID, err := auth.ManagerID(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = models.GetRecipient(db(c), managerID, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatch(c)
}

// CreateRecipients creates recipients
//
//	@Summary		Create recipients
//	@Description	Creates new recipients, each with four empty categories
//	@Tags			Recipients
//	@Produce		json
//	@Success		201			{object}	RecipientCreateResponse
//	@Failure		400			{object}	RecipientCreateResponse
//	@Failure		401			{object}	RecipientCreateResponse
//	@Failure		500			{object}	RecipientCreateResponse
//	@Param			recipients	body		[]RecipientEditable	true	"Recipients"
//	@Router			/v1/recipients [post]
func (co Controller) CreateRecipients(c *gin.Context) {
	managerID, err := auth.ManagerID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecipientCreateResponse{Error: &e})
		return
	}

	var editables []RecipientEditable
	err = httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecipientCreateResponse{Error: &e})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := RecipientCreateResponse{}

	for _, editable := range editables {
		recipient, err := models.CreateRecipient(db(c), managerID, editable.create())
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		apiResource, err := co.newRecipient(c, recipient)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		r.Data = append(r.Data, RecipientResponse{Data: &apiResource})
	}

	c.JSON(status, r)
}

// GetRecipients returns the recipients of the manager
//
//	@Summary		Get recipients
//	@Description	Returns the active recipients ordered by name
//	@Tags			Recipients
//	@Produce		json
//	@Success		200			{object}	RecipientListResponse
//	@Failure		400			{object}	RecipientListResponse
//	@Failure		401			{object}	RecipientListResponse
//	@Failure		500			{object}	RecipientListResponse
//	@Param			archived	query		bool	false	"Include archived recipients"
//	@Router			/v1/recipients [get]
func (co Controller) GetRecipients(c *gin.Context) {
	managerID, err := auth.ManagerID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecipientListResponse{Error: &e})
		return
	}

	var filter RecipientQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		e := httputil.ErrInvalidQuery.Error()
		c.JSON(http.StatusBadRequest, RecipientListResponse{Error: &e})
		return
	}

	recipients, err := models.ListRecipients(db(c), managerID, filter.Archived)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecipientListResponse{Error: &e})
		return
	}

	// Transform resources to their API representation
	data := make([]Recipient, 0, len(recipients))
	for _, recipient := range recipients {
		apiResource, err := co.newRecipient(c, recipient)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), RecipientListResponse{Error: &e})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, RecipientListResponse{Data: data})
}

// recipientFromURI loads the recipient addressed by the request
func recipientFromURI(c *gin.Context) (string, models.Recipient, error) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		return "", models.Recipient{}, err
	}

	managerID, err := auth.ManagerID(c)
	if err != nil {
		return "", models.Recipient{}, err
	}

	recipient, err := models.GetRecipient(db(c), managerID, uri.ID.UUID)
	if err != nil {
		return "", models.Recipient{}, err
	}

	return managerID, recipient, nil
}

// respondRecipient writes the API representation of the recipient
func (co Controller) respondRecipient(c *gin.Context, recipient models.Recipient) {
	apiResource, err := co.newRecipient(c, recipient)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecipientResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, RecipientResponse{Data: &apiResource})
}

// GetRecipient returns a specific recipient
//
//	@Summary		Get recipient
//	@Description	Returns a specific recipient with its balances
//	@Tags			Recipients
//	@Produce		json
//	@Success		200	{object}	RecipientResponse
//	@Failure		400	{object}	RecipientResponse
//	@Failure		401	{object}	RecipientResponse
//	@Failure		404	{object}	RecipientResponse
//	@Failure		500	{object}	RecipientResponse
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/recipients/{id} [get]
func (co Controller) GetRecipient(c *gin.Context) {
	_, recipient, err := recipientFromURI(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecipientResponse{Error: &e})
		return
	}

	co.respondRecipient(c, recipient)
}

// UpdateRecipient updates the profile of a recipient
//
//	@Summary		Update recipient
//	@Description	Updates the profile of an active recipient. Only values to be updated need to be specified.
//	@Tags			Recipients
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	RecipientResponse
//	@Failure		400			{object}	RecipientResponse
//	@Failure		401			{object}	RecipientResponse
//	@Failure		404			{object}	RecipientResponse
//	@Failure		500			{object}	RecipientResponse
//	@Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			recipient	body		RecipientEditable	true	"Recipient"
//	@Router			/v1/recipients/{id} [patch]
func (co Controller) UpdateRecipient(c *gin.Context) {
	managerID, recipient, err := recipientFromURI(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecipientResponse{Error: &e})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, RecipientEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecipientResponse{Error: &e})
		return
	}

	var data RecipientEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecipientResponse{Error: &e})
		return
	}

	// Fields not in the body keep their current value
	profile := models.RecipientProfile{
		Name:            recipient.Name,
		AllowanceAmount: recipient.AllowanceAmount,
		AvatarURL:       recipient.AvatarURL,
	}
	if slices.Contains(updateFields, "Name") {
		profile.Name = data.Name
	}
	if slices.Contains(updateFields, "AllowanceAmount") {
		profile.AllowanceAmount = data.AllowanceAmount
	}
	if slices.Contains(updateFields, "AvatarURL") {
		profile.AvatarURL = data.AvatarURL
	}

	recipient, err = models.UpdateRecipientProfile(db(c), managerID, recipient.ID, profile)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecipientResponse{Error: &e})
		return
	}

	co.respondRecipient(c, recipient)
}

func (co Controller) setArchived(c *gin.Context, archived bool) {
	managerID, recipient, err := recipientFromURI(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecipientResponse{Error: &e})
		return
	}

	recipient, err = models.SetArchived(db(c), managerID, recipient.ID, archived)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecipientResponse{Error: &e})
		return
	}

	co.respondRecipient(c, recipient)
}

// ArchiveRecipient archives a recipient
//
//	@Summary		Archive recipient
//	@Description	Hides the recipient from the recipient list
//	@Tags			Recipients
//	@Produce		json
//	@Success		200	{object}	RecipientResponse
//	@Failure		400	{object}	RecipientResponse
//	@Failure		401	{object}	RecipientResponse
//	@Failure		404	{object}	RecipientResponse
//	@Failure		500	{object}	RecipientResponse
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/recipients/{id}/archive [post]
func (co Controller) ArchiveRecipient(c *gin.Context) {
	co.setArchived(c, true)
}

// UnarchiveRecipient unarchives a recipient
//
//	@Summary		Unarchive recipient
//	@Description	Shows the recipient in the recipient list again
//	@Tags			Recipients
//	@Produce		json
//	@Success		200	{object}	RecipientResponse
//	@Failure		400	{object}	RecipientResponse
//	@Failure		401	{object}	RecipientResponse
//	@Failure		404	{object}	RecipientResponse
//	@Failure		500	{object}	RecipientResponse
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/recipients/{id}/unarchive [post]
func (co Controller) UnarchiveRecipient(c *gin.Context) {
	co.setArchived(c, false)
}

// ResetRecipient resets the account of a recipient
//
//	@Summary		Reset account
//	@Description	Zeroes all balances, resets all causes and deletes the complete distribution and transaction history
//	@Tags			Recipients
//	@Produce		json
//	@Success		200		{object}	ResetResponse
//	@Failure		400		{object}	ResetResponse
//	@Failure		401		{object}	ResetResponse
//	@Failure		404		{object}	ResetResponse
//	@Failure		500		{object}	ResetResponse
//	@Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			confirm	query		string	true	"Confirmation to reset the account. Must be 'yes-reset-this-account'"
//	@Router			/v1/recipients/{id}/reset [post]
func (co Controller) ResetRecipient(c *gin.Context) {
	managerID, recipient, err := recipientFromURI(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ResetResponse{Error: &e})
		return
	}

	var params ResetQuery
	err = c.ShouldBindQuery(&params)
	if err != nil || params.Confirm != resetConfirmation {
		e := errResetConfirmation.Error()
		c.JSON(http.StatusBadRequest, ResetResponse{Error: &e})
		return
	}

	message, err := models.ResetAccount(db(c), managerID, recipient.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ResetResponse{Error: &e})
		return
	}

	co.publish(c, events.New(events.AccountReset, managerID, recipient.ID, nil))
	c.JSON(http.StatusOK, ResetResponse{Message: message})
}

// GetUndistributed returns the undistributed allowance of a recipient
//
//	@Summary		Get undistributed allowance
//	@Description	Returns the allowance owed since the recipient was created that has not been distributed yet
//	@Tags			Recipients
//	@Produce		json
//	@Success		200	{object}	UndistributedResponse
//	@Failure		400	{object}	UndistributedResponse
//	@Failure		401	{object}	UndistributedResponse
//	@Failure		404	{object}	UndistributedResponse
//	@Failure		500	{object}	UndistributedResponse
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/recipients/{id}/undistributed [get]
func (co Controller) GetUndistributed(c *gin.Context) {
	managerID, recipient, err := recipientFromURI(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UndistributedResponse{Error: &e})
		return
	}

	undistributed, err := models.Undistributed(db(c), managerID, recipient.ID, time.Now())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UndistributedResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, UndistributedResponse{Data: &undistributed})
}
