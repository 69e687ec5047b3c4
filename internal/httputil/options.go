package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func options(c *gin.Context, allow string) {
	c.Header("allow", allow)
	c.Status(http.StatusNoContent)
}

func OptionsGet(c *gin.Context) {
	options(c, "OPTIONS, GET")
}

func OptionsPost(c *gin.Context) {
	options(c, "OPTIONS, POST")
}

func OptionsGetPost(c *gin.Context) {
	options(c, "OPTIONS, GET, POST")
}

func OptionsGetPatch(c *gin.Context) {
	options(c, "OPTIONS, GET, PATCH")
}

func OptionsGetPatchDelete(c *gin.Context) {
	options(c, "OPTIONS, GET, PATCH, DELETE")
}
