package flatpack

import "log/slog"

// DefaultMaxNameLength is the default limit on entry name length when reading
// a container. It bounds the memory a corrupt container can make the reader
// allocate while searching for a NUL terminator.
const DefaultMaxNameLength = 4096

// UnpackOption configures Unpack and List.
type UnpackOption func(*unpackConfig)

type unpackConfig struct {
	collisions    CollisionPolicy
	maxNameLength int
	logger        *slog.Logger
	progress      ProgressFunc
}

func newUnpackConfig(opts []UnpackOption) *unpackConfig {
	cfg := &unpackConfig{maxNameLength: DefaultMaxNameLength}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *unpackConfig) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// UnpackWithCollisionPolicy sets how Unpack treats entries that share a name.
// The default, CollisionOverwrite, lets the last entry win.
func UnpackWithCollisionPolicy(p CollisionPolicy) UnpackOption {
	return func(c *unpackConfig) {
		c.collisions = p
	}
}

// UnpackWithMaxNameLength limits entry name length in bytes.
// Zero uses DefaultMaxNameLength. Negative means no limit.
func UnpackWithMaxNameLength(n int) UnpackOption {
	return func(c *unpackConfig) {
		if n == 0 {
			n = DefaultMaxNameLength
		}
		c.maxNameLength = n
	}
}

// UnpackWithLogger sets a logger for unpack operations.
// If nil, a discard logger is used (default behavior).
func UnpackWithLogger(logger *slog.Logger) UnpackOption {
	return func(c *unpackConfig) {
		c.logger = logger
	}
}

// UnpackWithProgress sets a callback invoked after each extracted entry.
func UnpackWithProgress(fn ProgressFunc) UnpackOption {
	return func(c *unpackConfig) {
		c.progress = fn
	}
}
