package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flux-ci/config"
	"flux-ci/config/sqlite"
	_ "flux-ci/docs" // Swagger docs
	buildRepo "flux-ci/internal/build/repository/sqlite"
	"flux-ci/internal/executor"
	gitrepoRepo "flux-ci/internal/gitrepo/repository/sqlite"
	"flux-ci/internal/httpserver"
	"flux-ci/internal/webhook"
	"flux-ci/pkg/log"
)

const executorShutdownTimeout = 30 * time.Second

// @title       flux-ci API
// @description Push webhooks from seven Git hosts, verified and turned into numbered builds.
// @version     1
// @host        localhost:8080
// @schemes     http
// @securityDefinitions.apikey ApiToken
// @in          header
// @name        X-API-Token
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting flux-ci...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Storage
	db, err := sqlite.Connect(ctx, cfg.SQLite)
	if err != nil {
		logger.Errorf(ctx, "Failed to open database %s: %v", cfg.SQLite.Path, err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Infof(ctx, "Database ready at %s", cfg.SQLite.Path)

	// 4. Build executor
	runner := executor.NewGitRunner(cfg.Executor.GitBinary, cfg.Executor.BuildScript)
	exec := executor.New(
		logger,
		buildRepo.New(db, logger),
		gitrepoRepo.New(db, logger),
		runner,
		executor.Config{
			Workers:       cfg.Executor.Workers,
			QueueSize:     cfg.Executor.QueueSize,
			WorkspaceRoot: cfg.Executor.WorkspaceRoot,
			LogRoot:       cfg.Executor.LogRoot,
		},
	)
	if err := exec.Start(ctx); err != nil {
		logger.Errorf(ctx, "Failed to start executor: %v", err)
		os.Exit(1)
	}

	// 5. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		DB:          db,
		Executor:    exec,
		Pinger:      runner,
		Webhook: webhook.SecurityConfig{
			AllowedIPs:       cfg.Webhook.AllowedIPs,
			RateLimitPerMin:  cfg.Webhook.RateLimitPerMin,
			RequireSignature: cfg.Webhook.RequireSignature,
		},
		TrustedProxies: cfg.Webhook.TrustedProxies,
		AppURL:   cfg.App.URL,
		APIToken: cfg.Auth.APIToken,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), executorShutdownTimeout)
	defer cancel()
	if err := exec.Shutdown(shutdownCtx); err != nil {
		logger.Warnf(ctx, "Executor shutdown: %v", err)
	}

	logger.Info(ctx, "Server stopped gracefully")
}
