package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grovesmith/backend/internal/httputil"
	"github.com/grovesmith/backend/internal/theme"
)

type ThemeListResponse struct {
	Data []theme.Theme `json:"data"` // List of themes
}

func (co Controller) RegisterThemeRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsThemes)
	r.GET("", GetThemes)
}

// OptionsThemes returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Themes
//	@Success		204
//	@Router			/v1/themes [options]
func OptionsThemes(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetThemes returns all profile themes
//
//	@Summary		Get themes
//	@Description	Returns all profile themes. The theme of a recipient is derived from its ID.
//	@Tags			Themes
//	@Produce		json
//	@Success		200	{object}	ThemeListResponse
//	@Router			/v1/themes [get]
func GetThemes(c *gin.Context) {
	c.JSON(http.StatusOK, ThemeListResponse{Data: theme.All()})
}
