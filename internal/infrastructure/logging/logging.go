// Package logging wraps log/slog with the service defaults.
//
// Never log tokens or secrets; log the subject or a prefix instead.
package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

// Logger is safe for concurrent use.
type Logger struct {
	*slog.Logger
}

// New builds a Logger writing to w. format is "json" or "text"; level is one of
// debug, info, warn, error.
func New(w io.Writer, level, format string) *Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &Logger{
		Logger: slog.New(handler).With("service", "catalog-service"),
	}
}

// Default is used before configuration has been loaded.
func Default() *Logger {
	return New(os.Stdout, "info", "json")
}

// Discard drops every record. Tests use it.
func Discard() *Logger {
	return New(io.Discard, "error", "text")
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// StdLogger adapts the logger for libraries that expect a *log.Logger.
func (l *Logger) StdLogger(level slog.Level) *log.Logger {
	return slog.NewLogLogger(l.Handler(), level)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
