// Package config loads unsei settings from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Log output formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config holds process-wide settings. Command-line flags override the
// matching fields.
type Config struct {
	DBPath      string `env:"UNSEI_DB" envDefault:"unsei.db"`
	LogLevel    string `env:"UNSEI_LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"UNSEI_LOG_FORMAT" envDefault:"console"`
	Workers     int    `env:"UNSEI_WORKERS" envDefault:"4"`
	MetricsPath string `env:"UNSEI_METRICS_FILE"`
}

// Load reads the configuration from environment variables and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values that env parsing cannot.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("config: UNSEI_DB must not be empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("config: UNSEI_LOG_FORMAT %q must be %s or %s", c.LogFormat, LogFormatConsole, LogFormatJSON)
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: UNSEI_WORKERS must be at least 1, got %d", c.Workers)
	}
	return nil
}

// Level returns the parsed zerolog level.
func (c Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("config: UNSEI_LOG_LEVEL: %w", err)
	}
	return lvl, nil
}
