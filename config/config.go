package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/job-tracker/internal/auth"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string `env:"ENV"       envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT"      envDefault:"8080"  validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"  validate:"oneof=debug info warn error"`

	// postgres://... or sqlite://path
	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`
	StatsCron   string `env:"STATS_CRON"   envDefault:"@every 1m" validate:"required"`

	JWTSecret   string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	JWTLifetime auth.Lifetime `env:"JWT_LIFETIME"        envDefault:"30d"`

	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"   envSeparator:","`
	RateLimitRequests  int           `env:"RATE_LIMIT_REQUESTS"  envDefault:"100" validate:"min=1"`
	RateLimitWindow    time.Duration `env:"RATE_LIMIT_WINDOW"    envDefault:"15m" validate:"gt=0"`
	TrustedProxies     []string      `env:"TRUSTED_PROXIES"      envSeparator:","`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

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
