// Package logger configures the process-wide structured logger.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// New creates a JSON slog logger at the given level, tagged with a fresh
// run identifier so one run's log lines can be pulled out of an aggregated
// stream.
func New(levelStr string) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	log := slog.New(handler).With("run_id", uuid.NewString())
	slog.SetDefault(log)
	return log
}
