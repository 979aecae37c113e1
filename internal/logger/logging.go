// Package logger provides charmbracelet/log loggers configured the same way across mnemo.
//
// Every logger writes to stderr: stdout is reserved for IPC responses.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a prefixed charm log that follows the global log level.
func New(prefix string) *log.Logger {
	return NewWithConfig(os.Stderr, prefix, log.GetLevel(), false, log.GetLevel() == log.DebugLevel, log.TextFormatter)
}

// NewWithConfig creates a charm log with custom config.
func NewWithConfig(w io.Writer, prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}

// Setup configures the default logger. Debug mode enables timestamps and debug output,
// otherwise only warnings and errors are printed.
func Setup(debug bool) {
	log.SetOutput(os.Stderr)
	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
		return
	}
	log.SetLevel(log.WarnLevel)
	log.SetReportTimestamp(false)
}
