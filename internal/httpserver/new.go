package httpserver

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"

	"flux-ci/internal/executor"
	"flux-ci/internal/gitrepo"
	"flux-ci/internal/model"
	"flux-ci/internal/webhook"
	"flux-ci/pkg/log"
)

// Executor runs, terminates and cleans up builds for the build and
// repository domains.
type Executor interface {
	Enqueue(ctx context.Context, b model.Build) error
	Terminate(ctx context.Context, b model.Build) error
	Purge(ctx context.Context, b model.Build) error
	PurgeRepository(ctx context.Context, repo model.Repository) error
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Storage and build execution
	db       *sql.DB
	executor Executor
	pinger   gitrepo.Pinger

	// Domains
	webhook        webhook.SecurityConfig
	trustedProxies []string
	appURL         string
	apiToken       string
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	DB       *sql.DB
	Executor Executor
	// Pinger checks clone urls; nil uses git from PATH.
	Pinger gitrepo.Pinger

	Webhook webhook.SecurityConfig
	// TrustedProxies may set X-Forwarded-For and X-Real-IP; empty trusts none.
	TrustedProxies []string
	AppURL         string
	APIToken       string
}

// New creates a new HTTPServer instance with every route registered.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:              logger,
		gin:            gin.New(),
		port:           cfg.Port,
		mode:           cfg.Mode,
		environment:    cfg.Environment,
		db:             cfg.DB,
		executor:       cfg.Executor,
		pinger:         cfg.Pinger,
		webhook:        cfg.Webhook,
		trustedProxies: cfg.TrustedProxies,
		appURL:         cfg.AppURL,
		apiToken:       cfg.APIToken,
	}

	if srv.pinger == nil {
		srv.pinger = executor.NewGitRunner("", "")
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.db == nil {
		return errors.New("database is required")
	}
	if srv.executor == nil {
		return errors.New("executor is required")
	}
	return nil
}
