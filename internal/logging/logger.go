package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Level resolves the minimum log level from LOG_LEVEL (debug, info, warn,
// error). Unknown values fall back to info.
func Level() slog.Level {
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

// Setup installs the bootstrap logger: JSON to stdout, tagged with the
// service name. main swaps in the Postgres-backed multi handler once the
// database is up.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: Level(),
	})
	slog.SetDefault(slog.New(handler).With("service", "safezone"))
}
