package logger

import (
	"log/slog"
	"os"
	"strings"
)

var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Init replaces the global logger with a JSON handler at the given level.
// Unknown levels fall back to info.
func Init(level string) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	Log = slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
