package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/grovesmith/backend/internal/models"
	guuid "github.com/grovesmith/backend/internal/uuid"
)

type URIID struct {
	ID guuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// link returns the absolute URL of a v1 path
func link(c *gin.Context, format string, args ...any) string {
	return c.GetString(string(models.DBContextURL)) + "/v1" + fmt.Sprintf(format, args...)
}
