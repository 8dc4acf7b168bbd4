package internal

import (
	"io"
	"log/slog"
)

// NewLogger returns a text logger; verbose enables per-period debug output
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).
		With("component", "debt-simulator")
}
