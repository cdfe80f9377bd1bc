// Package logger provides modifications to charmbracelet/log's default logger to be used in various files/packages.
//
// Loggers write to stderr unless handed a writer. Stdout belongs to the IPC
// stream and to rendered tables.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Setup configures the global charm logger for the process.
func Setup(debug bool) {
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(false)
	if debug {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
		return
	}
	log.SetLevel(log.WarnLevel)
}

// New creates a new default charm log that respects the global log level.
func New(prefix string) *log.Logger {
	return NewWithWriter(os.Stderr, prefix)
}

// NewWithWriter is New with an explicit destination, mostly for tests.
func NewWithWriter(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a new charm log with custom config
func NewWithConfig(w io.Writer, prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}
