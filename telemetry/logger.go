// Package telemetry provides the logging and metrics setup shared by
// the CLI and the dashboard server.
package telemetry

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewLogger creates the structured JSON logger used by long-running
// components.
func NewLogger(service string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	return zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

// NewConsoleLogger creates a human-readable logger for CLI commands.
func NewConsoleLogger(out io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: out}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
