package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is everything the API process reads from the environment. Values are
// deployment-provided; validation beyond parsing happens per auth/storage mode
// so a memory-backed dev run needs no external services configured.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// AuthMode selects the auth backend: "gotrue" (default) or "dev" for the
	// in-process fake used in local runs.
	AuthMode    string `env:"AUTH_MODE" envDefault:"gotrue"`
	AuthBaseURL string `env:"AUTH_BASE_URL"`
	AuthAPIKey  string `env:"AUTH_API_KEY"`
	JWTSecret   string `env:"AUTH_JWT_SECRET"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"memory"`
	DatabaseURL    string `env:"DATABASE_URL"`

	GroqAPIKey  string `env:"GROQ_API_KEY"`
	GroqBaseURL string `env:"GROQ_BASE_URL"`
	GroqModel   string `env:"GROQ_MODEL"`

	GeocoderBaseURL string        `env:"GEOCODER_BASE_URL"`
	GeocoderTimeout time.Duration `env:"GEOCODER_TIMEOUT" envDefault:"5s"`
}

// Load parses the environment and validates the combinations the selected
// modes require.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.AuthMode = strings.ToLower(strings.TrimSpace(cfg.AuthMode))
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))

	switch cfg.AuthMode {
	case "dev":
	case "gotrue":
		if cfg.AuthBaseURL == "" {
			return Config{}, fmt.Errorf("AUTH_BASE_URL is required when AUTH_MODE=gotrue")
		}
		if cfg.JWTSecret == "" {
			return Config{}, fmt.Errorf("AUTH_JWT_SECRET is required when AUTH_MODE=gotrue")
		}
	default:
		return Config{}, fmt.Errorf("AUTH_MODE must be gotrue or dev, got %q", cfg.AuthMode)
	}

	switch cfg.StorageBackend {
	case "memory":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL is required when STORAGE_BACKEND=postgres")
		}
	default:
		return Config{}, fmt.Errorf("STORAGE_BACKEND must be memory or postgres, got %q", cfg.StorageBackend)
	}

	return cfg, nil
}
