// Package logger provides a configured zerolog logger.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a zerolog.Logger tagged with the service name. Development
// environments get human friendly console output on stderr; everything
// else writes JSON lines to stdout.
func New(serviceName string, development bool) zerolog.Logger {
	var out io.Writer = os.Stdout
	if development {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	return With(out, serviceName)
}

// With builds the service logger on top of an arbitrary writer.
func With(w io.Writer, serviceName string) zerolog.Logger {
	return zerolog.New(w).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}
