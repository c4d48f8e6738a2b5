// Package observability wires structured logging, Prometheus metrics and
// OpenTelemetry tracing for the NELA risk service.
package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogConfig holds logging configuration.
type LogConfig struct {
	Output io.Writer // defaults to os.Stdout
	Level  string    // "debug", "info", "warn", "error"
	Format string    // "json", "text"
}

// InitLogger initializes a structured slog.Logger and makes it the default.
func InitLogger(cfg LogConfig) *slog.Logger {
	logger := slog.New(newHandler(cfg.Output, cfg.Format, parseLevel(cfg.Level)))
	slog.SetDefault(logger)
	return logger
}

// DiagnosticLogger returns the sink for per-component calculation traces.
// When disabled it discards everything, so production logs never carry
// intermediate model terms.
func DiagnosticLogger(enabled bool, cfg LogConfig) *slog.Logger {
	if !enabled {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(newHandler(cfg.Output, cfg.Format, slog.LevelDebug)).
		With(slog.String("channel", "nela_debug"))
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{
		Level: level,
	}

	switch strings.ToLower(format) {
	case "json":
		return slog.NewJSONHandler(w, opts)
	default:
		return slog.NewTextHandler(w, opts)
	}
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
