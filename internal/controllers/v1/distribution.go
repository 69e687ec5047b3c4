package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grovesmith/backend/internal/events"
	"github.com/grovesmith/backend/internal/httputil"
	"github.com/grovesmith/backend/internal/models"
)

// GetDistributions returns the distribution history of a recipient
//
//	@Summary		Get distributions
//	@Description	Returns the distributions of a recipient, newest first
//	@Tags			Distributions
//	@Produce		json
//	@Success		200	{object}	DistributionListResponse
//	@Failure		400	{object}	DistributionListResponse
//	@Failure		401	{object}	DistributionListResponse
//	@Failure		404	{object}	DistributionListResponse
//	@Failure		500	{object}	DistributionListResponse
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/recipients/{id}/distributions [get]
func (co Controller) GetDistributions(c *gin.Context) {
	managerID, recipient, err := recipientFromURI(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DistributionListResponse{Error: &e})
		return
	}

	distributions, err := models.ListDistributions(db(c), managerID, recipient.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DistributionListResponse{Error: &e})
		return
	}

	data := make([]Distribution, 0, len(distributions))
	for _, distribution := range distributions {
		data = append(data, newDistribution(c, distribution))
	}

	c.JSON(http.StatusOK, DistributionListResponse{Data: data})
}

// CreateDistribution distributes allowance to a recipient
//
//	@Summary		Distribute allowance
//	@Description	Credits the amounts to the four categories of an active recipient and records one transaction per category that receives money
//	@Tags			Distributions
//	@Accept			json
//	@Produce		json
//	@Success		201				{object}	DistributionResponse
//	@Failure		400				{object}	DistributionResponse
//	@Failure		401				{object}	DistributionResponse
//	@Failure		404				{object}	DistributionResponse
//	@Failure		500				{object}	DistributionResponse
//	@Param			id				path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			distribution	body		DistributionEditable	true	"Distribution"
//	@Router			/v1/recipients/{id}/distributions [post]
func (co Controller) CreateDistribution(c *gin.Context) {
	managerID, recipient, err := recipientFromURI(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DistributionResponse{Error: &e})
		return
	}

	var editable DistributionEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DistributionResponse{Error: &e})
		return
	}

	create, err := editable.create(recipient.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DistributionResponse{Error: &e})
		return
	}

	distribution, err := models.Distribute(db(c), managerID, create)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DistributionResponse{Error: &e})
		return
	}

	apiResource := newDistribution(c, distribution)
	co.publish(c, events.New(events.DistributionCreated, managerID, recipient.ID, apiResource))
	c.JSON(http.StatusCreated, DistributionResponse{Data: &apiResource})
}
