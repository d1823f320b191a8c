// Package config loads carbonsense settings from a YAML file and
// CARBONSENSE_* environment variables, and exposes them process-wide.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Yasharm4x/CarbonSense-v5/internal/greenops"
)

// Output formats understood by the CLI renderers.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
	FormatYAML   = "yaml"
)

const maxPrecision = 6

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full carbonsense configuration.
type Config struct {
	Output   OutputConfig   `yaml:"output"   mapstructure:"output"   json:"output"`
	Defaults DefaultsConfig `yaml:"defaults" mapstructure:"defaults" json:"defaults"`
	Catalog  CatalogConfig  `yaml:"catalog"  mapstructure:"catalog"  json:"catalog"`
	Score    ScoreConfig    `yaml:"score"    mapstructure:"score"    json:"score"`
	Logging  LoggingConfig  `yaml:"logging"  mapstructure:"logging"  json:"logging"`
}

// OutputConfig controls how results are rendered.
type OutputConfig struct {
	// DefaultFormat is one of table, json, ndjson or yaml.
	DefaultFormat string `yaml:"default_format" mapstructure:"default_format" json:"default_format"`
	// Precision is the number of decimals shown for grams in tables.
	Precision int `yaml:"precision" mapstructure:"precision" json:"precision"`
}

// DefaultsConfig pre-fills selection flags.
type DefaultsConfig struct {
	Region string `yaml:"region" mapstructure:"region" json:"region"`
	// Hardware is a hardware key, or "none" for estimates without a hardware factor.
	Hardware string `yaml:"hardware" mapstructure:"hardware" json:"hardware"`
}

// CatalogConfig points at a user catalog file.
type CatalogConfig struct {
	// Path is a YAML catalog merged over the built-in one. Empty means built-in only.
	Path string `yaml:"path" mapstructure:"path" json:"path"`
	// Replace uses Path instead of the built-in catalog rather than merging.
	Replace bool `yaml:"replace" mapstructure:"replace" json:"replace"`
}

// ScoreConfig holds green score defaults.
type ScoreConfig struct {
	EnergyThresholdKWh float64 `yaml:"energy_threshold_kwh" mapstructure:"energy_threshold_kwh" json:"energy_threshold_kwh"`
	DecayRate          float64 `yaml:"decay_rate"           mapstructure:"decay_rate"           json:"decay_rate"`
	Blend              string  `yaml:"blend"                mapstructure:"blend"                json:"blend"`
}

// LoggingConfig configures diagnostic logging.
type LoggingConfig struct {
	Level  string `yaml:"level"  mapstructure:"level"  json:"level"`
	Format string `yaml:"format" mapstructure:"format" json:"format"`
	// File sends logs to a file instead of stderr.
	File string `yaml:"file" mapstructure:"file" json:"file"`
}

// New returns the built-in defaults.
func New() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     2,
		},
		Defaults: DefaultsConfig{
			Region:   "us-west",
			Hardware: "gpu",
		},
		Score: ScoreConfig{
			EnergyThresholdKWh: greenops.DefaultEnergyThresholdKWh,
			DecayRate:          greenops.DefaultDecayRate,
			Blend:              string(greenops.BlendMultiplicative),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate reports every invalid setting, joined.
func (c *Config) Validate() error {
	var errs []error

	if !IsValidFormat(c.Output.DefaultFormat) {
		errs = append(errs, fmt.Errorf("%w: output.default_format %q (want table, json, ndjson or yaml)",
			ErrInvalidConfig, c.Output.DefaultFormat))
	}
	if c.Output.Precision < 0 || c.Output.Precision > maxPrecision {
		errs = append(errs, fmt.Errorf("%w: output.precision %d (want 0-%d)",
			ErrInvalidConfig, c.Output.Precision, maxPrecision))
	}
	if c.Score.EnergyThresholdKWh < 0 {
		errs = append(errs, fmt.Errorf("%w: score.energy_threshold_kwh must be non-negative", ErrInvalidConfig))
	}
	if c.Score.DecayRate < 0 {
		errs = append(errs, fmt.Errorf("%w: score.decay_rate must be non-negative", ErrInvalidConfig))
	}
	if _, err := greenops.ParseBlend(c.Score.Blend); err != nil {
		errs = append(errs, fmt.Errorf("%w: score.blend: %w", ErrInvalidConfig, err))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: logging.format %q (want console or json)", ErrInvalidConfig, c.Logging.Format))
	}

	return errors.Join(errs...)
}

// ScoreOptions converts the score section for greenops.GreenScore.
// An invalid blend falls back to multiplicative; Validate reports it.
func (c *Config) ScoreOptions() greenops.ScoreOptions {
	blend, err := greenops.ParseBlend(c.Score.Blend)
	if err != nil {
		blend = greenops.BlendMultiplicative
	}
	return greenops.ScoreOptions{
		EnergyThresholdKWh: c.Score.EnergyThresholdKWh,
		DecayRate:          c.Score.DecayRate,
		Blend:              blend,
	}
}

// IsValidFormat reports whether format names a known output format.
func IsValidFormat(format string) bool {
	switch format {
	case FormatTable, FormatJSON, FormatNDJSON, FormatYAML:
		return true
	default:
		return false
	}
}
