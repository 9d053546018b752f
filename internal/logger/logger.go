package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Sink is the logging port handed to components that emit diagnostics.
// *slog.Logger satisfies it.
type Sink interface {
	Log(ctx context.Context, level slog.Level, msg string, args ...any)
}

// ParseLevel converts a string level name to slog.Level.
// Supported values: debug, info, warn, error (case-insensitive).
// Returns slog.LevelInfo for unrecognized values.
func ParseLevel(level string) slog.Level {
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

// Init initializes the global logger with the specified level.
// Extra handlers, such as the on-screen Console, receive every record as well.
// This should be called once at application startup.
func Init(level slog.Level, extra ...slog.Handler) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if attr.Key == slog.LevelKey {
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			}
			return attr
		},
	}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if len(extra) > 0 {
		handler = newFanout(append([]slog.Handler{handler}, extra...)...)
	}
	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

// Default returns the process-wide logger as a Sink.
func Default() Sink {
	return slog.Default()
}

// Discard returns a Sink that drops everything.
func Discard() Sink {
	return slog.New(discardHandler{})
}

// Debug logs a message at DEBUG level.
func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

// Info logs a message at INFO level.
func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

// Warn logs a message at WARN level.
func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

// Error logs a message at ERROR level.
func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}
