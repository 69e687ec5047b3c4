package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/grovesmith/backend/internal/auth"
	"github.com/grovesmith/backend/internal/events"
	"github.com/grovesmith/backend/internal/httputil"
	"github.com/grovesmith/backend/internal/models"
)

func (co Controller) RegisterCauseRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/:id", OptionsCauseDetail)
		r.GET("/:id", co.GetCause)
		r.PATCH("/:id", co.UpdateCause)
		r.DELETE("/:id", co.DeleteCause)
	}
	{
		r.OPTIONS("/:id/allocations", httputil.OptionsPost)
		r.POST("/:id/allocations", co.AllocateToCause)
		r.OPTIONS("/:id/complete", httputil.OptionsPost)
		r.POST("/:id/complete", co.CompleteCause)
	}
}

// causeFromURI loads the cause addressed by the request
func causeFromURI(c *gin.Context) (string, models.CharitableCause, error) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		return "", models.CharitableCause{}, err
	}

	managerID, err := auth.ManagerID(c)
	if err != nil {
		return "", models.CharitableCause{}, err
	}

	cause, err := models.GetCause(db(c), managerID, uri.ID.UUID)
	if err != nil {
		return "", models.CharitableCause{}, err
	}

	return managerID, cause, nil
}

// OptionsCauseDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Causes
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/causes/{id} [options]
func OptionsCauseDetail(c *gin.Context) {
	_, _, err := causeFromURI(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// GetCauses returns the causes of a recipient
//
//	@Summary		Get causes
//	@Description	Returns all causes of a recipient, active and completed, oldest first
//	@Tags			Causes
//	@Produce		json
//	@Success		200	{object}	CauseListResponse
//	@Failure		400	{object}	CauseListResponse
//	@Failure		401	{object}	CauseListResponse
//	@Failure		404	{object}	CauseListResponse
//	@Failure		500	{object}	CauseListResponse
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/recipients/{id}/causes [get]
func (co Controller) GetCauses(c *gin.Context) {
	managerID, recipient, err := recipientFromURI(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseListResponse{Error: &e})
		return
	}

	causes, err := models.ListCauses(db(c), managerID, recipient.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseListResponse{Error: &e})
		return
	}

	now := time.Now()
	data := make([]Cause, 0, len(causes))
	for _, cause := range causes {
		data = append(data, newCause(c, cause, now))
	}

	c.JSON(http.StatusOK, CauseListResponse{Data: data})
}

// CreateCause creates a cause for a recipient
//
//	@Summary		Create cause
//	@Description	Creates a charitable cause. A recipient can have at most 3 causes that are not completed.
//	@Tags			Causes
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	CauseResponse
//	@Failure		400		{object}	CauseResponse
//	@Failure		401		{object}	CauseResponse
//	@Failure		404		{object}	CauseResponse
//	@Failure		409		{object}	CauseResponse
//	@Failure		500		{object}	CauseResponse
//	@Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			cause	body		CauseEditable	true	"Cause"
//	@Router			/v1/recipients/{id}/causes [post]
func (co Controller) CreateCause(c *gin.Context) {
	managerID, recipient, err := recipientFromURI(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseResponse{Error: &e})
		return
	}

	var editable CauseEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseResponse{Error: &e})
		return
	}

	cause, err := models.CreateCause(db(c), managerID, recipient.ID, editable.model())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseResponse{Error: &e})
		return
	}

	apiResource := newCause(c, cause, time.Now())
	c.JSON(http.StatusCreated, CauseResponse{Data: &apiResource})
}

// GetCause returns a specific cause
//
//	@Summary		Get cause
//	@Description	Returns a specific cause with its progress
//	@Tags			Causes
//	@Produce		json
//	@Success		200	{object}	CauseResponse
//	@Failure		400	{object}	CauseResponse
//	@Failure		401	{object}	CauseResponse
//	@Failure		404	{object}	CauseResponse
//	@Failure		500	{object}	CauseResponse
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/causes/{id} [get]
func (co Controller) GetCause(c *gin.Context) {
	_, cause, err := causeFromURI(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseResponse{Error: &e})
		return
	}

	apiResource := newCause(c, cause, time.Now())
	c.JSON(http.StatusOK, CauseResponse{Data: &apiResource})
}

// UpdateCause updates a cause
//
//	@Summary		Update cause
//	@Description	Updates a cause. Only values to be updated need to be specified. The goal can not be lower than the allocated amount.
//	@Tags			Causes
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	CauseResponse
//	@Failure		400		{object}	CauseResponse
//	@Failure		401		{object}	CauseResponse
//	@Failure		404		{object}	CauseResponse
//	@Failure		500		{object}	CauseResponse
//	@Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			cause	body		CauseEditable	true	"Cause"
//	@Router			/v1/causes/{id} [patch]
func (co Controller) UpdateCause(c *gin.Context) {
	managerID, cause, err := causeFromURI(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseResponse{Error: &e})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, CauseEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseResponse{Error: &e})
		return
	}

	var data CauseEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseResponse{Error: &e})
		return
	}

	cause, err = models.UpdateCause(db(c), managerID, cause.ID, data.model(), updateFields...)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseResponse{Error: &e})
		return
	}

	apiResource := newCause(c, cause, time.Now())
	c.JSON(http.StatusOK, CauseResponse{Data: &apiResource})
}

// DeleteCause deletes a cause
//
//	@Summary		Delete cause
//	@Description	Deletes a cause. Money allocated to it becomes unallocated again.
//	@Tags			Causes
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		401	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/causes/{id} [delete]
func (co Controller) DeleteCause(c *gin.Context) {
	managerID, cause, err := causeFromURI(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DeleteCause(db(c), managerID, cause.ID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// AllocateToCause earmarks Give money for a cause
//
//	@Summary		Allocate to cause
//	@Description	Earmarks unallocated Give money for the cause. No money moves and no transaction is recorded.
//	@Tags			Causes
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	CauseResponse
//	@Failure		400			{object}	CauseResponse
//	@Failure		401			{object}	CauseResponse
//	@Failure		404			{object}	CauseResponse
//	@Failure		409			{object}	CauseResponse
//	@Failure		500			{object}	CauseResponse
//	@Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			allocation	body		AllocationEditable	true	"Allocation"
//	@Router			/v1/causes/{id}/allocations [post]
func (co Controller) AllocateToCause(c *gin.Context) {
	managerID, cause, err := causeFromURI(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseResponse{Error: &e})
		return
	}

	var allocation AllocationEditable
	err = httputil.BindData(c, &allocation)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseResponse{Error: &e})
		return
	}

	cause, err = models.AllocateToCause(db(c), managerID, cause.ID, allocation.Amount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseResponse{Error: &e})
		return
	}

	apiResource := newCause(c, cause, time.Now())
	c.JSON(http.StatusOK, CauseResponse{Data: &apiResource})
}

// CompleteCause donates the allocated money of a cause
//
//	@Summary		Complete cause
//	@Description	Withdraws the allocated amount from the Give category, records the donation and marks the cause as completed
//	@Tags			Causes
//	@Produce		json
//	@Success		200	{object}	CauseResponse
//	@Failure		400	{object}	CauseResponse
//	@Failure		401	{object}	CauseResponse
//	@Failure		404	{object}	CauseResponse
//	@Failure		409	{object}	CauseResponse
//	@Failure		500	{object}	CauseResponse
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/causes/{id}/complete [post]
func (co Controller) CompleteCause(c *gin.Context) {
	managerID, cause, err := causeFromURI(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseResponse{Error: &e})
		return
	}

	cause, err = models.CompleteCause(db(c), managerID, cause.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CauseResponse{Error: &e})
		return
	}

	apiResource := newCause(c, cause, time.Now())
	co.publish(c, events.New(events.CauseCompleted, managerID, cause.RecipientID, apiResource))
	c.JSON(http.StatusOK, CauseResponse{Data: &apiResource})
}
