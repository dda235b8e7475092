// Package logger builds prefixed charmbracelet/log instances that respect
// the process-wide log level set from the command line.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Default creates a prefixed logger on stderr with the global level.
// stdout stays clean for the IPC stream.
func Default(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}
