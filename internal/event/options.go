package event

import (
	"log/slog"

	"github.com/dshills/mediator/internal/event/dispatch"
)

// Option configures a Mediator.
type Option func(*config)

// config contains configuration for a mediator.
type config struct {
	// logger receives registry and observer diagnostics.
	logger *slog.Logger

	// observers are registered before the mediator is returned.
	observers []Observer

	// panicHandler is called when an observer panics, after recovery.
	panicHandler dispatch.PanicHandler
}

// defaultConfig returns the default configuration.
func defaultConfig() config {
	return config{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger used by the mediator.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver registers an observer at construction.
func WithObserver(o Observer) Option {
	return func(c *config) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// WithObserverPanicHandler sets a hook called when an observer panics.
// The panic is recovered either way.
func WithObserverPanicHandler(h dispatch.PanicHandler) Option {
	return func(c *config) {
		c.panicHandler = h
	}
}
