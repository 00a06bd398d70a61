// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"

	"github.com/gatewaynode/flashbrain/internal/config"
)

// newLogger builds the slog logger handed to the lesson core. charmbracelet/log
// is the handler so events render like the rest of the CLI output.
func newLogger(w io.Writer, level config.LogLevel, verbose bool) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		Prefix: "flashbrain",
		Level:  logLevel(level, verbose),
	})
	return slog.New(handler)
}

// logLevel maps the configured level; --verbose always means debug.
func logLevel(level config.LogLevel, verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	switch level {
	case config.LogLevelDebug:
		return log.DebugLevel
	case config.LogLevelInfo:
		return log.InfoLevel
	case config.LogLevelError:
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}
