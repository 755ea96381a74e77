// Package logging wires the process's slog pipeline: JSON to stdout from
// boot, joined after the database connects by a Postgres sink for WARN+
// records (see PGHandler).
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the stdout JSON logger. Called before config or database
// are available, so the level comes straight from LOG_LEVEL (default info).
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
	slog.SetDefault(slog.New(handler))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
