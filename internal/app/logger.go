package app

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// newLogger creates a slog.Logger writing to w. It does not set the global
// logger, allowing for isolated logger instances. The text format is
// rendered by charmbracelet/log acting as the slog handler.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:  log.Level(level),
		Prefix: "minipack",
	})
	return slog.New(handler)
}
