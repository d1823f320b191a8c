// Package logging builds the zerolog loggers used across carbonsense and
// carries them, with a per-run trace ID, through context.Context.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output and format names accepted in Config.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
	OutputFile   = "file"

	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config describes how to build a logger.
type Config struct {
	// Level is a zerolog level name; unknown names fall back to info.
	Level string
	// Format is "console" for human output or "json".
	Format string
	// Output is "stderr", "stdout" or "file".
	Output string
	// File is the log file path when Output is "file".
	File string
	// Caller adds the source location to every event.
	Caller bool
}

// LogPathResult is a logger plus what happened while opening its output.
type LogPathResult struct {
	Logger zerolog.Logger

	// UsingFile is true when events go to FilePath.
	UsingFile bool
	FilePath  string

	// FallbackUsed is true when a file was requested but stderr is used instead.
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close releases the log file, if one was opened.
func (r *LogPathResult) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// NewLogger builds a logger writing to stderr or stdout. File output is ignored;
// use NewLoggerWithPath for it.
func NewLogger(cfg Config) zerolog.Logger {
	var w io.Writer = os.Stderr
	if cfg.Output == OutputStdout {
		w = os.Stdout
	}
	return newLogger(w, cfg)
}

// NewLoggerWithWriter builds a logger writing to w.
func NewLoggerWithWriter(w io.Writer, cfg Config) zerolog.Logger {
	return newLogger(w, cfg)
}

// NewLoggerWithPath builds a logger honouring file output. When the file
// cannot be opened the logger falls back to stderr and records why.
func NewLoggerWithPath(cfg Config) LogPathResult {
	if cfg.Output != OutputFile || cfg.File == "" {
		return LogPathResult{Logger: NewLogger(cfg)}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
		return LogPathResult{
			Logger:         newLogger(os.Stderr, cfg),
			FallbackUsed:   true,
			FallbackReason: fmt.Sprintf("creating log directory: %v", err),
		}
	}

	f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return LogPathResult{
			Logger:         newLogger(os.Stderr, cfg),
			FallbackUsed:   true,
			FallbackReason: fmt.Sprintf("opening log file: %v", err),
		}
	}

	// Files always get JSON; colour codes do not belong on disk.
	fileCfg := cfg
	fileCfg.Format = FormatJSON
	return LogPathResult{
		Logger:    newLogger(f, fileCfg),
		UsingFile: true,
		FilePath:  cfg.File,
		file:      f,
	}
}

func newLogger(w io.Writer, cfg Config) zerolog.Logger {
	if strings.EqualFold(cfg.Format, FormatConsole) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger().Hook(TraceIDHook{})
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	if level == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// ComponentLogger returns l with a component field.
func ComponentLogger(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

// PrintLogPathMessage tells the user where logs are going.
func PrintLogPathMessage(w io.Writer, path string) {
	_, _ = fmt.Fprintf(w, "Logging to %s\n", path)
}

// PrintFallbackWarning tells the user file logging was not possible.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: file logging unavailable (%s), logging to stderr\n", reason)
}
