package hashintern

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with interner-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithKind adds the string kind to the logger.
func (l *Logger) WithKind(kind string) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind),
	}
}

// LogGrowth logs a reallocation of one interner component.
func (l *Logger) LogGrowth(ctx context.Context, component string, oldCap, newCap, entries int) {
	l.DebugContext(ctx, "interner grew",
		"component", component,
		"old_cap", oldCap,
		"new_cap", newCap,
		"entries", entries,
	)
}

// LogRefused logs a value that was not interned.
func (l *Logger) LogRefused(ctx context.Context, entries int, err error) {
	l.WarnContext(ctx, "intern refused",
		"entries", entries,
		"error", err,
	)
}

// LogRestore logs the outcome of loading entries from a snapshot.
func (l *Logger) LogRestore(ctx context.Context, entries int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot restore failed",
			"entries_restored", entries,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot restored",
			"entries_restored", entries,
		)
	}
}

// LogAdvise logs access advice the kernel rejected for a mapped snapshot.
func (l *Logger) LogAdvise(ctx context.Context, path string, err error) {
	l.DebugContext(ctx, "snapshot access advice ignored",
		"path", path,
		"error", err,
	)
}

// LogSnapshot logs the outcome of writing a snapshot.
func (l *Logger) LogSnapshot(ctx context.Context, entries int, compression string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"entries", entries,
			"compression", compression,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot written",
			"entries", entries,
			"compression", compression,
		)
	}
}
