// Package aliasing provides the bijective snake_case↔UI display name map
// for register fields, controlled-vocabulary lookup tables, and
// operator-configurable column synonyms.
//
// Different data providers label the same recognised field differently
// ("Sex" vs "Organism sex"). This package loads an optional YAML config of
// synonyms and resolves them to the closed set of recognised fields,
// leaving the built-in UI name bijection (columns.go) untouched.
//
// Example configuration (.register.yaml):
//
//	column_synonyms:
//	  - synonym: "Sex"
//	    field: "organism_sex"
package aliasing

import (
	"errors"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pharos-project/register/internal/config"
)

// Config holds column synonym configuration loaded from .register.yaml.
type Config struct {
	//nolint:tagliatelle // snake_case is intentional for YAML config files
	ColumnSynonyms []ColumnSynonym `yaml:"column_synonyms"`
}

const (
	// DefaultConfigPath is the default location for the register aliasing
	// configuration file.
	DefaultConfigPath = ".register.yaml"

	// ConfigPathEnvVar is the environment variable name for a custom
	// config path.
	ConfigPathEnvVar = "REGISTER_CONFIG_PATH"
)

// LoadConfig loads synonym configuration from a YAML file at the given path.
//
// Behavior:
//   - Returns empty config (not error) if file doesn't exist - synonyms are optional
//   - Returns empty config + logs warning if YAML is invalid (graceful degradation)
//   - Returns populated config on success
//
// This graceful degradation ensures the service can start even without
// synonyms configured.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		ColumnSynonyms: []ColumnSynonym{},
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is from trusted config source
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("Config file not found, continuing without column synonyms",
				slog.String("path", path))

			return cfg, nil
		}

		slog.Warn("Failed to read config file, continuing without column synonyms",
			slog.String("path", path),
			slog.String("error", err.Error()))

		return cfg, nil
	}

	if len(data) == 0 {
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Warn("Failed to parse config file, continuing without column synonyms",
			slog.String("path", path),
			slog.String("error", err.Error()))

		return &Config{ColumnSynonyms: []ColumnSynonym{}}, nil
	}

	if cfg.ColumnSynonyms == nil {
		cfg.ColumnSynonyms = []ColumnSynonym{}
	}

	return cfg, nil
}

// LoadConfigFromEnv loads config from the path specified in the
// REGISTER_CONFIG_PATH environment variable, falling back to
// DefaultConfigPath in the current directory if not set.
func LoadConfigFromEnv() (*Config, error) {
	path := config.GetEnvStr(ConfigPathEnvVar, DefaultConfigPath)

	return LoadConfig(path)
}
