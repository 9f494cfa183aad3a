package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV"       envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT"      envDefault:"8080"  validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"  validate:"oneof=debug info warn error"`

	DatabaseURL    string `env:"DATABASE_URL,required" validate:"required"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START"      envDefault:"false"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	// AuthVariant selects how requests are authenticated, see auth.Variant.
	AuthVariant string        `env:"AUTH_VARIANT" envDefault:"bearer_session" validate:"oneof=bearer_session bearer_stateless header_email header_mobile"`
	JWTSecret   string        `env:"JWT_SECRET,required"                      validate:"required,min=32"`
	JWTTTL      time.Duration `env:"JWT_TTL"      envDefault:"24h"            validate:"gt=0"`
	// JWKSURL switches bearer verification to RS256 keys served by an external
	// identity provider. Tokens are then minted by that provider, not by /api/auth/login.
	JWKSURL string `env:"JWKS_URL" validate:"excluded_unless=AuthVariant bearer_stateless,omitempty,url"`

	SessionReapCron  string `env:"SESSION_REAP_CRON"  envDefault:"@every 10m" validate:"required"`
	SessionReapBatch int    `env:"SESSION_REAP_BATCH" envDefault:"500"        validate:"min=1,max=10000"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SlogLevel maps LOG_LEVEL onto a slog level. Unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IssuesTokens reports whether this server signs its own bearer tokens and
// therefore exposes the login endpoint.
func (c *Config) IssuesTokens() bool {
	return c.JWKSURL == ""
}
