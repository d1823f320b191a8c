package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Yasharm4x/CarbonSense-v5/internal/config"
	"github.com/Yasharm4x/CarbonSense-v5/internal/logging"
)

// Environment overrides for the logging section.
const (
	EnvLogLevel  = "CARBONSENSE_LOG_LEVEL"
	EnvLogFormat = "CARBONSENSE_LOG_FORMAT"
)

// setupLogging configures logging based on config file, environment, and CLI flags.
func setupLogging(cmd *cobra.Command) logging.LogPathResult {
	loggingCfg := config.GetLoggingConfig()

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}

	if envLevel := os.Getenv(EnvLogLevel); envLevel != "" && !debug {
		loggingCfg.Level = envLevel
	}
	if envFormat := os.Getenv(EnvLogFormat); envFormat != "" {
		loggingCfg.Format = envFormat
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return result
}

// cleanupLogging closes the log file handle, if any.
func cleanupLogging(_ *cobra.Command, logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
