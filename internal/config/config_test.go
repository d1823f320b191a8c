package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yasharm4x/CarbonSense-v5/internal/config"
	"github.com/Yasharm4x/CarbonSense-v5/internal/greenops"
)

func TestNew_Defaults(t *testing.T) {
	cfg := config.New()

	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
	assert.Equal(t, 2, cfg.Output.Precision)
	assert.Equal(t, "us-west", cfg.Defaults.Region)
	assert.Equal(t, "gpu", cfg.Defaults.Hardware)
	assert.InDelta(t, 0.001, cfg.Score.EnergyThresholdKWh, 0)
	assert.InDelta(t, 0.5, cfg.Score.DecayRate, 0)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"bad format", func(c *config.Config) { c.Output.DefaultFormat = "xml" }, "output.default_format"},
		{"negative precision", func(c *config.Config) { c.Output.Precision = -1 }, "output.precision"},
		{"huge precision", func(c *config.Config) { c.Output.Precision = 12 }, "output.precision"},
		{"negative threshold", func(c *config.Config) { c.Score.EnergyThresholdKWh = -1 }, "energy_threshold_kwh"},
		{"negative decay", func(c *config.Config) { c.Score.DecayRate = -0.1 }, "decay_rate"},
		{"bad blend", func(c *config.Config) { c.Score.Blend = "geometric" }, "score.blend"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestScoreOptions(t *testing.T) {
	cfg := config.New()
	cfg.Score.Blend = "harmonic"
	cfg.Score.DecayRate = 0.2

	opts := cfg.ScoreOptions()
	assert.Equal(t, greenops.BlendHarmonic, opts.Blend)
	assert.InDelta(t, 0.2, opts.DecayRate, 0)

	cfg.Score.Blend = "bogus"
	assert.Equal(t, greenops.BlendMultiplicative, cfg.ScoreOptions().Blend)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())

	cfg, used, err := config.Load("")
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, config.New(), cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)

	path := filepath.Join(home, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
output:
  default_format: json
defaults:
  region: eu-west
score:
  blend: harmonic
`), 0o600))
	t.Setenv("CARBONSENSE_OUTPUT_PRECISION", "4")
	t.Setenv("CARBONSENSE_DEFAULTS_HARDWARE", "tpu")

	cfg, used, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, config.FormatJSON, cfg.Output.DefaultFormat)
	assert.Equal(t, 4, cfg.Output.Precision)
	assert.Equal(t, "eu-west", cfg.Defaults.Region)
	assert.Equal(t, "tpu", cfg.Defaults.Hardware)
	assert.Equal(t, "harmonic", cfg.Score.Blend)
	assert.Equal(t, "info", cfg.Logging.Level, "unset keys keep defaults")
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  default_format: xml\n"), 0o600))

	_, _, err := config.Load(path)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.New()
	cfg.Defaults.Region = "asia-pacific"

	require.NoError(t, config.WriteFile(cfg, path, false))

	loaded, used, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "asia-pacific", loaded.Defaults.Region)

	err = config.WriteFile(cfg, path, false)
	require.ErrorIs(t, err, config.ErrConfigExists)
	require.NoError(t, config.WriteFile(cfg, path, true))
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv(config.EnvHome, "/opt/carbonsense")
	dir, err := config.GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, "/opt/carbonsense", dir)

	path, err := config.DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/opt/carbonsense", "config.yaml"), path)
}

func TestGlobalConfig(t *testing.T) {
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)

	assert.Equal(t, config.FormatTable, config.GetDefaultOutputFormat())

	cfg := config.New()
	cfg.Output.DefaultFormat = config.FormatYAML
	cfg.Output.Precision = 3
	cfg.Logging.Level = "debug"
	config.SetGlobalConfig(cfg)

	assert.Same(t, cfg, config.GetGlobalConfig())
	assert.Equal(t, config.FormatYAML, config.GetDefaultOutputFormat())
	assert.Equal(t, 3, config.GetOutputPrecision())
	assert.Equal(t, "debug", config.GetLoggingConfig().Level)
}

func TestToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "warn", Format: "json"}
	got := lc.ToLoggingConfig()
	assert.Equal(t, "stderr", got.Output)
	assert.Equal(t, "warn", got.Level)

	lc.File = "/tmp/cs.log"
	got = lc.ToLoggingConfig()
	assert.Equal(t, "file", got.Output)
	assert.Equal(t, "/tmp/cs.log", got.File)
}
