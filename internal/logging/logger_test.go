package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yasharm4x/CarbonSense-v5/internal/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, logging.ParseLevel(tt.in), tt.in)
	}
}

func TestNewLoggerWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewLoggerWithWriter(&buf, logging.Config{Level: "debug", Format: "json"})

	l.Debug().Str("k", "v").Msg("hello")
	assert.Contains(t, buf.String(), `"message":"hello"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
	assert.Contains(t, buf.String(), `"time":`)
}

func TestNewLoggerWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewLoggerWithWriter(&buf, logging.Config{Level: "warn", Format: "json"})

	l.Info().Msg("quiet")
	assert.Empty(t, buf.String())
	l.Warn().Msg("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	l := logging.ComponentLogger(logging.NewLoggerWithWriter(&buf, logging.Config{Format: "json"}), "cli")

	l.Info().Msg("x")
	assert.Contains(t, buf.String(), `"component":"cli"`)
}

func TestTraceIDHook(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewLoggerWithWriter(&buf, logging.Config{Format: "json"})
	ctx := logging.ContextWithTraceID(context.Background(), "01TESTTRACE")

	l.Info().Ctx(ctx).Msg("with trace")
	assert.Contains(t, buf.String(), `"trace_id":"01TESTTRACE"`)

	buf.Reset()
	l.Info().Msg("without trace")
	assert.NotContains(t, buf.String(), "trace_id")
}

func TestTraceIDs(t *testing.T) {
	id := logging.GenerateTraceID()
	_, err := ulid.Parse(id)
	require.NoError(t, err)

	ctx := context.Background()
	assert.Empty(t, logging.TraceIDFromContext(ctx))
	assert.NotEmpty(t, logging.GetOrGenerateTraceID(ctx))

	ctx = logging.ContextWithTraceID(ctx, id)
	assert.Equal(t, id, logging.GetOrGenerateTraceID(ctx))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := logging.NewLoggerWithWriter(&buf, logging.Config{Format: "json"})
	ctx := l.WithContext(context.Background())

	logging.FromContext(ctx).Info().Msg("from ctx")
	assert.Contains(t, buf.String(), "from ctx")
}

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "carbonsense.log")
	res := logging.NewLoggerWithPath(logging.Config{Level: "info", Format: "console", Output: "file", File: path})
	t.Cleanup(func() { _ = res.Close() })

	require.True(t, res.UsingFile)
	assert.False(t, res.FallbackUsed)
	assert.Equal(t, path, res.FilePath)

	res.Logger.Info().Msg("to disk")
	require.NoError(t, res.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"to disk"`)
}

func TestNewLoggerWithPath_Fallback(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	res := logging.NewLoggerWithPath(logging.Config{Output: "file", File: filepath.Join(blocker, "x.log")})
	assert.False(t, res.UsingFile)
	assert.True(t, res.FallbackUsed)
	assert.NotEmpty(t, res.FallbackReason)
	assert.NoError(t, res.Close())
}

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	logging.PrintLogPathMessage(&buf, "/tmp/x.log")
	logging.PrintFallbackWarning(&buf, "denied")
	assert.Contains(t, buf.String(), "Logging to /tmp/x.log")
	assert.Contains(t, buf.String(), "file logging unavailable (denied)")
}
