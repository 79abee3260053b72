package octaindex

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with octaindex-specific context.
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
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithStrategy adds a strategy field to the logger.
func (l *Logger) WithStrategy(strategy string) *Logger {
	return &Logger{
		Logger: l.Logger.With("strategy", strategy),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogBatch logs a batch operation outcome. Strategy and batch size are
// carried as logger fields; see WithStrategy and WithCount.
func (l *Logger) LogBatch(ctx context.Context, op string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "batch failed",
			"op", op,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "batch completed",
			"op", op,
		)
	}
}

// LogFallback logs a backend fallback decision.
func (l *Logger) LogFallback(ctx context.Context, from, to string, reason error) {
	l.WarnContext(ctx, "backend fallback",
		"from", from,
		"to", to,
		"reason", reason,
	)
}

// LogGPUInit logs a GPU backend initialization attempt.
func (l *Logger) LogGPUInit(ctx context.Context, adapter string, err error) {
	if err != nil {
		l.WarnContext(ctx, "GPU backend unavailable",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "GPU backend ready",
			"adapter", adapter,
		)
	}
}
