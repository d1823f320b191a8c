package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. CARBONSENSE_OUTPUT_PRECISION.
const EnvPrefix = "CARBONSENSE"

// EnvHome overrides the configuration directory.
const EnvHome = "CARBONSENSE_HOME"

// ConfigFileName is the file looked up inside the configuration directory.
const ConfigFileName = "config.yaml"

// GetConfigDir returns the carbonsense configuration directory:
// $CARBONSENSE_HOME when set, otherwise ~/.carbonsense.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".carbonsense"), nil
}

// DefaultConfigPath returns the config file inside GetConfigDir.
func DefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// Load builds a Config from defaults, the YAML file at path and CARBONSENSE_*
// environment variables, in increasing priority. With an empty path the
// default config file is used when it exists. An explicit path must exist.
//
// It returns the config and the file actually read ("" when none).
func Load(path string) (*Config, string, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	registerDefaults(v, New())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, "", fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return nil, "", err
		}
	}
	v.SetConfigFile(path)

	used := path
	if err := v.ReadInConfig(); err != nil {
		notFound := &viper.ConfigFileNotFoundError{}
		switch {
		case errors.As(err, notFound), errors.Is(err, os.ErrNotExist):
			// The config file is optional.
			used = ""
		default:
			return nil, "", fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, "", fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, used, nil
}

// registerDefaults makes every key known to viper so AutomaticEnv can
// override keys absent from the file.
func registerDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("output.default_format", d.Output.DefaultFormat)
	v.SetDefault("output.precision", d.Output.Precision)
	v.SetDefault("defaults.region", d.Defaults.Region)
	v.SetDefault("defaults.hardware", d.Defaults.Hardware)
	v.SetDefault("catalog.path", d.Catalog.Path)
	v.SetDefault("catalog.replace", d.Catalog.Replace)
	v.SetDefault("score.energy_threshold_kwh", d.Score.EnergyThresholdKWh)
	v.SetDefault("score.decay_rate", d.Score.DecayRate)
	v.SetDefault("score.blend", d.Score.Blend)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
}

// ErrConfigExists is returned by WriteFile when the target exists and force is false.
var ErrConfigExists = errors.New("config file already exists")

// WriteFile writes cfg as YAML to path, creating parent directories.
// An existing file is only replaced when force is true.
func WriteFile(cfg *Config, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}
