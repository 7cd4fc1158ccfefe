package http

import (
	"github.com/gin-gonic/gin"

	"voicetask/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	ex := rg.Group("/extraction")
	{
		ex.POST("/extract", mw.RateLimit(), h.Extract)
		ex.POST("/confirm", mw.RateLimit(), h.Confirm)
	}
}
