package flatpack

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for archive operations. Returned errors wrap these and can
// be matched with errors.Is.
var (
	// ErrNotFound is returned by Put when a path does not identify an
	// existing regular file.
	ErrNotFound = errors.New("flatpack: file not found")

	// ErrIO is returned when an underlying read, write, create, seek, or
	// rename fails. The originating error is wrapped as well.
	ErrIO = errors.New("flatpack: i/o failure")

	// ErrMalformedArchive is returned when a container does not follow the
	// framing rules or carries an unsafe entry name.
	ErrMalformedArchive = errors.New("flatpack: malformed archive")

	// ErrInvalidName is returned when an entry name cannot be stored or
	// extracted safely.
	ErrInvalidName = errors.New("flatpack: invalid entry name")

	// ErrNameCollision is returned when two entries share a base name and
	// the collision policy is CollisionReject.
	ErrNameCollision = errors.New("flatpack: entry name collision")
)

// ioError tags err as an I/O failure. Context errors pass through untouched.
func ioError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}

// malformed reports a framing violation at the given container offset.
func malformed(offset int64, format string, args ...any) error {
	return fmt.Errorf("%w: offset %d: %s", ErrMalformedArchive, offset, fmt.Sprintf(format, args...))
}
