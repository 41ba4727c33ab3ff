package logger

import (
	"log/slog"
	"os"
)

// Log is the process-wide structured logger. Nil until Init runs.
var Log *slog.Logger

// Init sets up JSON logging to stdout and makes it the slog default, so
// package-level slog calls land in the same stream.
func Init() {
	Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(Log)
}
