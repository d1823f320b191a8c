package config

import "github.com/Yasharm4x/CarbonSense-v5/internal/logging"

// ToLoggingConfig converts the logging section for the logging package.
//
//   - Level and Format are copied directly
//   - If File is set, Output becomes "file" and File is passed through
//   - If File is empty, Output defaults to "stderr"
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}
