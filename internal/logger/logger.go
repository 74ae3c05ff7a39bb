// Package logger provides structured logging functionality.
// It wraps the standard log/slog package for consistent logging across the engine.
//
// All engine components log through this package so that convert runs emit a
// single, uniform JSON stream: convertor preprocessing, per-record skips,
// task execution and collection I/O all use the same field names (snake_case).
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the default logger instance.
var Logger *slog.Logger

func init() {
	// Initialize with JSON handler for structured logging
	Logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// SetLevel configures the logging level.
func SetLevel(level slog.Level) {
	Logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// SetOutput redirects log output to the given writer.
// Intended for tests that need to capture or silence log output.
func SetOutput(w io.Writer, level slog.Level) {
	Logger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// WithConvertor returns a logger with convertor context.
func WithConvertor(key string) *slog.Logger {
	return Logger.With("convertor", key)
}

// WithTask returns a logger with task context.
// The note is included only when the task carries one.
func WithTask(convertor string, note string) *slog.Logger {
	if note != "" {
		return Logger.With("convertor", convertor, "note", note)
	}
	return Logger.With("convertor", convertor)
}
