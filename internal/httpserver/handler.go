package httpserver

import (
	"context"
	"fmt"

	"flux-ci/internal/middleware"
	"flux-ci/internal/model"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (srv HTTPServer) mapHandlers() error {
	if err := srv.gin.SetTrustedProxies(srv.trustedProxies); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}

	mw := middleware.New(srv.l, srv.apiToken)

	srv.registerMiddlewares(mw)
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(mw); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares(mw middleware.Middleware) {
	srv.gin.Use(gin.Recovery(), mw.RequestID(), mw.AccessLog())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "HTTP mode: production")
	} else {
		srv.l.Infof(ctx, "HTTP mode: %s", srv.environment)
	}
	if srv.apiToken == "" {
		srv.l.Warnf(ctx, "auth.api_token is empty, the management API will reject every request")
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes wires repositories, builds and the push hook.
func (srv HTTPServer) registerDomainRoutes(mw middleware.Middleware) error {
	ctx := context.Background()
	api := srv.gin.Group("/api/v1")

	repoUC := srv.setupRepositoryDomain(ctx, api, mw)
	buildUC := srv.setupBuildDomain(ctx, api, mw)
	srv.setupWebhookDomain(ctx, repoUC, buildUC)

	return nil
}
