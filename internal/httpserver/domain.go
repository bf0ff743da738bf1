package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"flux-ci/internal/build"
	buildHTTP "flux-ci/internal/build/delivery/http"
	buildRepo "flux-ci/internal/build/repository/sqlite"
	buildUC "flux-ci/internal/build/usecase"
	"flux-ci/internal/gitrepo"
	gitrepoHTTP "flux-ci/internal/gitrepo/delivery/http"
	gitrepoRepo "flux-ci/internal/gitrepo/repository/sqlite"
	gitrepoUC "flux-ci/internal/gitrepo/usecase"
	"flux-ci/internal/middleware"
	"flux-ci/internal/refpolicy"
	"flux-ci/internal/webhook"
)

// setupRepositoryDomain registers /api/v1/repos.
func (srv HTTPServer) setupRepositoryDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) gitrepo.UseCase {
	repo := gitrepoRepo.New(srv.db, srv.l)
	uc := gitrepoUC.New(repo, srv.executor, srv.pinger, srv.l)
	h := gitrepoHTTP.New(srv.l, uc)
	gitrepoHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Repository domain registered")
	return uc
}

// setupBuildDomain registers /api/v1/builds and /api/v1/repos/:id/builds.
func (srv HTTPServer) setupBuildDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) build.UseCase {
	repo := buildRepo.New(srv.db, srv.l)
	uc := buildUC.New(repo, srv.executor, srv.l, srv.appURL)
	h := buildHTTP.New(srv.l, uc)
	buildHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Build domain registered")
	return uc
}

// setupWebhookDomain registers the push hook at the root, where providers are
// pointed to.
func (srv HTTPServer) setupWebhookDomain(ctx context.Context, repos gitrepo.UseCase, builds build.UseCase) {
	h := webhook.NewHandler(srv.l, repos, builds, refpolicy.New(), srv.webhook)
	webhook.RegisterRoutes(srv.gin, h)

	srv.l.Infof(ctx, "Push webhook registered at POST /hook/push")
}
