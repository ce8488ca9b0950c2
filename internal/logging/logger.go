// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Package-level logger is intentional for convenience
var (
	defaultMu     sync.RWMutex
	defaultLogger *log.Logger
)

// New creates a stderr logger at the given level: "debug", "info", "warn"
// or "error". Anything else means info.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})

	logger.SetLevel(ParseLevel(level))

	return logger
}

// NewInteractive creates a logger for messages addressed to the person at
// the terminal, such as prompts and confirmations. It writes to stdout
// with a "gowsfmt" prefix.
func NewInteractive() *log.Logger {
	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          "gowsfmt",
	})
	logger.SetLevel(log.InfoLevel)

	return logger
}

// ParseLevel maps a level name to a log.Level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Default returns the package-level default logger.
func Default() *log.Logger {
	defaultMu.RLock()
	logger := defaultLogger
	defaultMu.RUnlock()

	if logger != nil {
		return logger
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLogger == nil {
		defaultLogger = New("info")
	}

	return defaultLogger
}

// SetDefault sets the package-level default logger.
func SetDefault(logger *log.Logger) {
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}

// SetLevel updates the level of the default logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}
