package scalarsdr

import (
	"io"
	"log/slog"
	"os"
)

// NewTextLogger returns a logger writing human-readable lines to stderr at
// the given level. Pass it to WithLogger to see theta diagnostics,
// per-setting summaries, and sweep progress.
func NewTextLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger returns a logger that discards all output.
func NoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
