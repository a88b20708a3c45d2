package bucket

import (
	"github.com/rs/zerolog"
)

// WorldOption is a type that can be passed to NewWorld to augment world
// creation. Options override values loaded from the environment config.
type WorldOption func(*World)

// WithLogger replaces the world's default logger.
func WithLogger(logger zerolog.Logger) WorldOption {
	return func(w *World) {
		w.logger = logger
	}
}

// WithNamespace overrides the namespace attached to log events and metrics.
func WithNamespace(namespace string) WorldOption {
	return func(w *World) {
		w.namespace = namespace
	}
}
