package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	BaseURL        string        `env:"BASE_URL"`
	ServerPort     int           `env:"PORT" envDefault:"8080"`
	DatabasePath   string        `env:"DATABASE_PATH" envDefault:"./pixelgram.db"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPTimeout    time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Activity log maintenance.
	ActivityRetention     time.Duration `env:"ACTIVITY_RETENTION" envDefault:"720h"`
	ActivityPruneSchedule string        `env:"ACTIVITY_PRUNE_SCHEDULE" envDefault:"@daily"`
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// RequireBaseURL reports an error when no backend base URL is configured.
func (c *Config) RequireBaseURL() error {
	if c.BaseURL == "" {
		return fmt.Errorf("BASE_URL is not set")
	}
	return nil
}
