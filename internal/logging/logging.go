package logging

import (
	"log/slog"
	"os"
)

// New builds the process logger: JSON for log aggregation in production,
// human-readable text with debug level everywhere else.
func New(appEnv string) *slog.Logger {
	var h slog.Handler
	switch appEnv {
	case "prod", "production":
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(h)
}
