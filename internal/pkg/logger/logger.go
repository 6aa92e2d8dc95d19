package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	defaultLogger *slog.Logger
	level         = new(slog.LevelVar)
	mu            sync.RWMutex
	once          sync.Once
)

// Initialize sets up the structured logger.
// Logs go to stderr as JSON so stdout stays free for search results.
func Initialize() {
	once.Do(func() {
		level.Set(slog.LevelWarn)
		handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     level,
			AddSource: false,
		})
		mu.Lock()
		defaultLogger = slog.New(handler)
		mu.Unlock()
	})
}

// Get returns the default structured logger
func Get() *slog.Logger {
	Initialize()
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// SetOutput redirects the logger to w, keeping the current level.
// format is "json" (default) or "text".
func SetOutput(w io.Writer, format string) {
	Initialize()

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	mu.Lock()
	defaultLogger = slog.New(handler)
	mu.Unlock()
}

// SetLevel changes the minimum level by name: debug, info, warn or error.
func SetLevel(name string) error {
	Initialize()

	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	level.Set(l)
	return nil
}

// Level returns the current minimum level.
func Level() slog.Level {
	Initialize()
	return level.Level()
}

// Info logs an info level message
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// InfoContext logs an info level message with context
func InfoContext(ctx context.Context, msg string, args ...any) {
	Get().InfoContext(ctx, msg, args...)
}

// Warn logs a warning level message
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// WarnContext logs a warning level message with context
func WarnContext(ctx context.Context, msg string, args ...any) {
	Get().WarnContext(ctx, msg, args...)
}

// Error logs an error level message
func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

// ErrorContext logs an error level message with context
func ErrorContext(ctx context.Context, msg string, args ...any) {
	Get().ErrorContext(ctx, msg, args...)
}

// Debug logs a debug level message
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

// DebugContext logs a debug level message with context
func DebugContext(ctx context.Context, msg string, args ...any) {
	Get().DebugContext(ctx, msg, args...)
}

// With returns a logger with the given attributes
func With(args ...any) *slog.Logger {
	return Get().With(args...)
}
