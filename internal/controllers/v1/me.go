package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grovesmith/backend/internal/auth"
	"github.com/grovesmith/backend/internal/httputil"
	"github.com/grovesmith/backend/internal/models"
)

func (co Controller) RegisterMeRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsMe)
	r.GET("", co.GetMe)
}

type MeResponse struct {
	Error *string         `json:"error" example:"you must be signed in to use this endpoint"` // The error, if any occurred
	Data  *models.Manager `json:"data"`                                                       // The manager profile
}

// OptionsMe returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Me
//	@Success		204
//	@Router			/v1/me [options]
func OptionsMe(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetMe returns the profile of the signed in manager
//
//	@Summary		Get manager profile
//	@Description	Returns the profile of the signed in manager. The profile is created on the first request.
//	@Tags			Me
//	@Produce		json
//	@Success		200	{object}	MeResponse
//	@Failure		401	{object}	MeResponse
//	@Failure		500	{object}	MeResponse
//	@Router			/v1/me [get]
func (co Controller) GetMe(c *gin.Context) {
	principal, err := auth.CurrentPrincipal(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MeResponse{Error: &e})
		return
	}

	manager, err := models.EnsureManager(db(c), models.ManagerProfile{
		ID:       principal.ID,
		Email:    principal.Email,
		FullName: principal.FullName,
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MeResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, MeResponse{Data: &manager})
}
