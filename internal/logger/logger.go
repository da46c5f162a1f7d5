package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	defaultLogger *slog.Logger
)

// Init initializes the global logger on stderr so it never mixes with the
// game's console output.
func Init(level string, json bool) {
	InitTo(os.Stderr, level, json)
}

// InitTo initializes the global logger writing to w.
func InitTo(w io.Writer, level string, json bool) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// parseLevel accepts slog's level names, with offsets such as "warn+2".
// Unknown names fall back to info.
func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Get returns the default logger
func Get() *slog.Logger {
	if defaultLogger == nil {
		Init("info", false)
	}
	return defaultLogger
}

func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

// Fatal logs at error level and exits
func Fatal(msg string, args ...any) {
	Get().Error(msg, args...)
	os.Exit(1)
}

// ForSession returns a logger that tags every record with the game session
// id, for code that logs on behalf of one session.
func ForSession(id string) *slog.Logger {
	return Get().With(slog.String("session", id))
}

// With returns a logger with the given attributes
func With(args ...any) *slog.Logger {
	return Get().With(args...)
}
