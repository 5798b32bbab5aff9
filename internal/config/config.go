// Package config reads runtime settings from HUDDLE_* environment variables.
// Command-line flags take precedence over these values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/julianstephens/huddle/internal/constants"
)

const EnvPrefix = "HUDDLE_"

type Config struct {
	ConfigPath      string        `env:"CONFIG"`
	Debug           bool          `env:"DEBUG" envDefault:"false"`
	Strict          bool          `env:"STRICT" envDefault:"false"`
	SavedResetDelay time.Duration `env:"SAVED_RESET"`
	MigrationsPath  string        `env:"MIGRATIONS_PATH"`
}

func Load() (*Config, error) {
	// Fields start at their defaults; env only overrides what is set
	cfg := &Config{
		ConfigPath:      constants.DefaultConfigPath,
		SavedResetDelay: constants.SavedResetDelay,
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.ConfigPath) == "" {
		return errors.New("config path must not be empty")
	}
	if c.SavedResetDelay <= 0 {
		c.SavedResetDelay = constants.SavedResetDelay
	}
	return nil
}

// ExpandPath resolves a leading "~" to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// IsJSONPath reports whether path selects the JSON file backend.
func IsJSONPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
