// SPDX-License-Identifier: MIT

package transform

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var configValidate = validator.New()

// Config selects the pipeline's optional behavior.
type Config struct {
	// CombineAffineFunctions enables the affine-merge pass.
	CombineAffineFunctions bool `yaml:"combine_affine_functions"`

	// MoveEqualityIndicators enables reclassification of equality terms.
	MoveEqualityIndicators bool `yaml:"move_equality_indicators"`

	// Verify checks separability of the output.
	Verify bool `yaml:"verify"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"required,oneof=debug info warn error"`
}

// DefaultConfig returns the default pipeline: both optional passes off,
// verification on, info logging.
func DefaultConfig() Config {
	return Config{
		Verify:   true,
		LogLevel: "info",
	}
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// SlogLevel maps LogLevel onto slog.Level; unknown values map to info.
func (c Config) SlogLevel() slog.Level {
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

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("ParseConfig: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("ParseConfig: %w", err)
	}

	return cfg, nil
}

// LoadConfig reads a YAML config file. An empty path or a missing file
// yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("LoadConfig(%q): %w", path, err)
	}

	return ParseConfig(data)
}
