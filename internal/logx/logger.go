package logx

import (
	"log/slog"
	"os"
)

// New returns the process logger: JSON in production, text otherwise.
func New(service string, development bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if development {
		opts.Level = slog.LevelDebug
		return slog.New(slog.NewTextHandler(os.Stdout, opts)).With("service", service)
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts)).With("service", service)
}
