package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/Chative-core-poc-v1/storefront/internal/agent/model"
	"github.com/Chative-core-poc-v1/storefront/internal/core"
	logx "github.com/Chative-core-poc-v1/storefront/pkg/logger"
	pkgredis "github.com/Chative-core-poc-v1/storefront/pkg/redis"
)

// AppConfig defines all configurable parameters of the assistant,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL"`

	// Infrastructure
	Redis pkgredis.Config

	HTTP         model.HTTPConfig
	Fixtures     model.FixtureConfig
	TraceArchive model.TraceArchiveConfig
}

// loadConfig reads envFile (when present) and binds the environment.
func loadConfig(envFile string) (*AppConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			logx.Debug().Err(err).Str("file", envFile).Msg("No env file loaded")
		}
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	if cfg.TraceArchive.Enabled {
		if !cfg.Redis.Enabled() {
			return nil, fmt.Errorf("TRACE_ARCHIVE_ENABLED needs REDIS_URL")
		}
		if cfg.TraceArchive.TTL < 0 {
			return nil, fmt.Errorf("TRACE_ARCHIVE_TTL must not be negative, got %s", cfg.TraceArchive.TTL)
		}
	}
	return &cfg, nil
}

func (c *AppConfig) env() core.Environment {
	return core.ParseEnvironment(c.Environment)
}
