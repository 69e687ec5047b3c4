package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grovesmith/backend/internal/httputil"
)

type RootResponse struct {
	Links RootLinks `json:"links"` // Links for the v1 API
}

type RootLinks struct {
	Me         string `json:"me" example:"https://example.com/api/v1/me"`                 // URL of the manager profile
	Recipients string `json:"recipients" example:"https://example.com/api/v1/recipients"` // URL of Recipient collection endpoint
	Themes     string `json:"themes" example:"https://example.com/api/v1/themes"`         // URL of the theme palette
}

// GetRoot returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	RootResponse
//	@Failure		401	{object}	httpError
//	@Router			/v1 [get]
func GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Me:         link(c, "/me"),
			Recipients: link(c, "/recipients"),
			Themes:     link(c, "/themes"),
		},
	})
}

// OptionsRoot returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}
