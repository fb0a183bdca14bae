// Package config handles loading and parsing application configuration.
// It supports three sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. The --config command-line flag
//  3. Built-in defaults (no file at all)
//
// Unlike a server, a terminal tool should start with zero setup, so
// every field has a sensible default and the YAML file is optional.
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// StoragePath is the filesystem path to the SQLite .db file.
	// The file is created on first run if it does not exist.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"students.db"`
}

// Load reads, validates, and returns the application config.
//
// configPath is the value of the --config flag; when it is empty the
// CONFIG_PATH environment variable is consulted, and when that is empty
// too the defaults above apply (env overrides still respected).
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		// Useful in Docker / CI where env vars are the standard way
		// to pass config.
		configPath = os.Getenv("CONFIG_PATH")
	}

	var cfg Config

	if configPath == "" {
		// No file anywhere — populate from env vars and defaults only.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
		return &cfg, nil
	}

	// A path was given explicitly, so a missing file is a user error
	// worth reporting, not something to silently fall back from.
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	// cleanenv.ReadConfig reads the YAML file and populates the struct.
	// It also reads any env:"..." tagged fields from the environment,
	// so env vars win over file values.
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", configPath, err)
	}

	return &cfg, nil
}
