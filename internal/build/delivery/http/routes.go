package http

import (
	"flux-ci/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps the build endpoints. Builds are listed and triggered
// under their repository and managed by their own id.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	repos := rg.Group("/repos/:id/builds", mw.Auth())
	{
		repos.GET("", h.List)
		repos.POST("", h.Trigger)
	}

	builds := rg.Group("/builds", mw.Auth())
	{
		builds.GET("/:id", h.Detail)
		builds.POST("/:id/restart", h.Restart)
		builds.POST("/:id/stop", h.Stop)
		builds.DELETE("/:id", h.Delete)
	}
}
