package main

import (
	"io"
	"log/slog"

	"github.com/alexanderramin/itemtracker/internal/config"
)

// newLogger builds the process logger. "auto" picks text for a terminal and
// JSON otherwise.
func newLogger(cfg config.LogConfig, w io.Writer, isTTY bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	useJSON := cfg.Format == "json" || (cfg.Format == "auto" && !isTTY)
	if useJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
