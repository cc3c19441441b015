package fastlist

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with fastlist-specific context.
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithName adds a list name field to the logger (useful when several lists
// share one handler).
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("list", name),
	}
}

// LogStale logs an operation rejected because its handle did not resolve.
func (l *Logger) LogStale(op string, idx Index) {
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug("stale index",
		"op", op,
		"index", idx.String(),
	)
}

// LogSplit logs a SplitOff.
func (l *Logger) LogSplit(at Index, moved int) {
	l.Debug("split completed",
		"index", at.String(),
		"moved", moved,
	)
}

// LogRemoveAll logs a concurrent bulk removal.
func (l *Logger) LogRemoveAll(ctx context.Context, requested, removed int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "remove all failed",
			"requested", requested,
			"removed", removed,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "remove all completed",
			"requested", requested,
			"removed", removed,
		)
	}
}

// LogSnapshot logs a snapshot write or read.
func (l *Logger) LogSnapshot(ctx context.Context, op string, count int, compression string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"op", op,
			"compression", compression,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot completed",
			"op", op,
			"count", count,
			"compression", compression,
		)
	}
}
