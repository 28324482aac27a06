// Package logging provides component-scoped structured loggers.
package logging

import (
	"log/slog"
	"os"
)

// Config holds logger configuration.
type Config struct {
	Level   slog.Level
	Handler slog.Handler // optional; defaults to text on stdout
}

// New builds a component-scoped slog.Logger. Every log line carries the
// component attribute so the server and CLI surfaces can share one stream.
func New(component string, cfg Config) *slog.Logger {
	handler := cfg.Handler
	if handler == nil {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level})
	}
	return slog.New(handler).With("component", component)
}

// Default returns an info-level logger for the given component.
func Default(component string) *slog.Logger {
	return New(component, Config{Level: slog.LevelInfo})
}
