package flatpack

import "log/slog"

// Option configures an Archive.
type Option func(*Archive)

// WithOrder sets the order in which Pack writes entries.
// The default is OrderSorted.
func WithOrder(o Order) Option {
	return func(a *Archive) {
		a.order = o
	}
}

// WithCollisionPolicy sets how Pack treats paths that share a base name.
// The default, CollisionOverwrite, packs them all.
func WithCollisionPolicy(p CollisionPolicy) Option {
	return func(a *Archive) {
		a.collisions = p
	}
}

// WithLogger sets a logger for pack operations.
// If nil, a discard logger is used (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(a *Archive) {
		a.logger = logger
	}
}

// WithProgress sets a callback invoked after each packed entry.
func WithProgress(fn ProgressFunc) Option {
	return func(a *Archive) {
		a.progress = fn
	}
}
