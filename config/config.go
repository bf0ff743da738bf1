package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	App        AppConfig

	// Storage
	SQLite SQLiteConfig

	// Build pipeline
	Webhook  WebhookConfig
	Executor ExecutorConfig
	Auth     AuthConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// AppConfig holds the public base URL used to build links in log lines.
type AppConfig struct {
	URL string
}

type SQLiteConfig struct {
	Path          string
	BusyTimeoutMS int
}

type WebhookConfig struct {
	AllowedIPs       []string
	TrustedProxies   []string
	RateLimitPerMin  int
	RequireSignature bool
}

type ExecutorConfig struct {
	Workers       int
	QueueSize     int
	WorkspaceRoot string
	LogRoot       string
	BuildScript   string
	GitBinary     string
}

// AuthConfig holds the static token guarding the build and repository API.
// An empty token rejects every privileged request.
type AuthConfig struct {
	APIToken string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/flux/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/flux/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	cfg.App.URL = strings.TrimRight(viper.GetString("app.url"), "/")

	// Storage
	cfg.SQLite.Path = viper.GetString("sqlite.path")
	cfg.SQLite.BusyTimeoutMS = viper.GetInt("sqlite.busy_timeout_ms")

	// Webhooks
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.RequireSignature = viper.GetBool("webhook.require_signature")
	cfg.Webhook.AllowedIPs = splitList(viper.GetString("webhook.allowed_ips"))
	cfg.Webhook.TrustedProxies = splitList(viper.GetString("webhook.trusted_proxies"))

	// Executor
	cfg.Executor.Workers = viper.GetInt("executor.workers")
	cfg.Executor.QueueSize = viper.GetInt("executor.queue_size")
	cfg.Executor.WorkspaceRoot = viper.GetString("executor.workspace_root")
	cfg.Executor.LogRoot = viper.GetString("executor.log_root")
	cfg.Executor.BuildScript = viper.GetString("executor.build_script")
	cfg.Executor.GitBinary = viper.GetString("executor.git_binary")

	// Auth
	cfg.Auth.APIToken = viper.GetString("auth.api_token")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("app.url", "http://localhost:8080")

	viper.SetDefault("sqlite.path", "./data/flux.db")
	viper.SetDefault("sqlite.busy_timeout_ms", 5000)

	viper.SetDefault("webhook.rate_limit_per_min", 120)
	viper.SetDefault("webhook.require_signature", false)

	viper.SetDefault("executor.workers", 2)
	viper.SetDefault("executor.queue_size", 64)
	viper.SetDefault("executor.workspace_root", "./data/builds")
	viper.SetDefault("executor.log_root", "./data/logs")
	viper.SetDefault("executor.build_script", ".flux-build.sh")
	viper.SetDefault("executor.git_binary", "git")
}

func (cfg *Config) validate() error {
	if cfg.HTTPServer.Port <= 0 || cfg.HTTPServer.Port > 65535 {
		return fmt.Errorf("http_server.port out of range: %d", cfg.HTTPServer.Port)
	}
	if cfg.Executor.Workers <= 0 {
		return errors.New("executor.workers must be positive")
	}
	if cfg.Executor.QueueSize <= 0 {
		return errors.New("executor.queue_size must be positive")
	}
	if cfg.SQLite.Path == "" {
		return errors.New("sqlite.path is required")
	}
	return nil
}

// splitList splits a comma separated value; viper does not parse arrays from env.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
