// Package config defines the medal pool configuration and its loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers defaults, an optional YAML file and the environment.
// - Validation errors wrap ErrInvalidConfig; loader failures wrap ErrLoadConfig.
package config

import (
	"context"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// OutputSuffix is inserted before the guess file extension to name the
	// updated table, e.g. "_updated".
	OutputSuffix string `koanf:"output_suffix"`

	// ListSeparator splits countries inside one medal cell.
	ListSeparator string `koanf:"list_separator"`

	// MetricsTextfile, when set, receives a Prometheus textfile after each run.
	MetricsTextfile string `koanf:"metrics_textfile"`

	// StrictBalance rejects events whose unmatched guesses and results differ
	// in count.
	StrictBalance bool `koanf:"strict_balance"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:      "info",
		OutputSuffix:  "_updated",
		ListSeparator: ", ",
	}
}
