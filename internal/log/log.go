// Package log is the logging seam shared by the gazr library packages
// and commands, a thin veneer over slog.
package log

import (
	"log/slog"
	"os"
	"strings"
)

// Init installs the process logger: a text handler on stderr, so poses
// printed to stdout stay machine-readable. Level names are matched
// case-insensitively; anything unrecognized means "info". Code that
// logs before Init runs goes through slog's stock handler.
func Init(level string) {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(level)})
	slog.SetDefault(slog.New(h))
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

// Debug logs at debug level with alternating key-value attrs.
func Debug(msg string, args ...any) { slog.Debug(msg, args...) }

// Info logs at info level.
func Info(msg string, args ...any) { slog.Info(msg, args...) }

// Warn logs at warn level.
func Warn(msg string, args ...any) { slog.Warn(msg, args...) }

// Error logs at error level.
func Error(msg string, args ...any) { slog.Error(msg, args...) }
