package http

import (
	"flux-ci/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps the repository management endpoints. All of them sit
// behind the Auth middleware.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	repos := rg.Group("/repos", mw.Auth())
	{
		repos.POST("", h.Create)
		repos.GET("", h.List)
		repos.POST("/ping", h.Ping)
		repos.GET("/:id", h.Detail)
		repos.PUT("/:id", h.Update)
		repos.DELETE("/:id", h.Delete)
	}
}
