// Package config loads application settings from environment variables
// using github.com/caarlos0/env, with an optional .env file for local
// development.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// APIURL is the base URL of the commerce gateway.
	APIURL string `env:"API_URL" envDefault:"http://localhost:8080"`

	// APITimeout bounds every outgoing request. There is no user-facing
	// cancellation; a timed-out submission is simply treated as failed.
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"5s"`

	// StoreBackend selects the durable store: sqlite (default), redis
	// (shared kiosk profiles) or memory (no persistence).
	StoreBackend string `env:"STORE_BACKEND" envDefault:"sqlite"`

	// StorePath overrides the sqlite file location. Empty means the
	// default profile directory.
	StorePath string `env:"STORE_PATH"`

	Redis RedisConfig `envPrefix:"REDIS_"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type RedisConfig struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.Sanitize()
	return &cfg, nil
}

// Sanitize applies guardrails to loaded values.
func (c *Config) Sanitize() {
	if c.APITimeout <= 0 {
		c.APITimeout = 5 * time.Second
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	switch c.StoreBackend {
	case "sqlite", "redis", "memory":
	default:
		c.StoreBackend = "sqlite"
	}
}

// SlogLevel maps LogLevel onto a slog level, defaulting to Info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
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
