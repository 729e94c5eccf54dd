// Package atomicfile writes files through a temporary file that is renamed
// into place on Commit, so a partially written file is never visible at the
// target path.
package atomicfile

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
)

// tempPrefix starts the name of every staging file.
const tempPrefix = ".flatpack-"

// maxAttempts bounds the search for an unused staging name.
const maxAttempts = 10000

// File is a staging file for target. It embeds *os.File so callers can
// Write and Seek directly.
type File struct {
	*os.File
	target string
	done   bool
}

// Create stages a new file for target in target's directory.
// The directory must already exist. The file is created with mode 0666
// less the process umask, as os.Create would.
func Create(target string) (*File, error) {
	dir := filepath.Dir(target)
	for range maxAttempts {
		name := filepath.Join(dir, tempPrefix+strconv.FormatUint(rand.Uint64(), 36))
		tmp, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o666)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create temp file: %w", err)
		}
		return &File{File: tmp, target: target}, nil
	}
	return nil, fmt.Errorf("create temp file in %s: %w", dir, fs.ErrExist)
}

// Target returns the final path of the file.
func (f *File) Target() string {
	return f.target
}

// Commit flushes and closes the staging file and renames it onto the target,
// replacing any existing file.
func (f *File) Commit() error {
	if f.done {
		return os.ErrClosed
	}
	f.done = true
	tmpPath := f.Name()

	if err := f.Sync(); err != nil {
		_ = f.Close()          //nolint:errcheck // cleaning up
		_ = os.Remove(tmpPath) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.target); err != nil {
		_ = os.Remove(tmpPath) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("rename to %s: %w", f.target, err)
	}
	return nil
}

// Discard closes and removes the staging file. It is a no-op after Commit,
// so it can be deferred unconditionally.
func (f *File) Discard() error {
	if f.done {
		return nil
	}
	f.done = true
	_ = f.Close() //nolint:errcheck // we're cleaning up
	return os.Remove(f.Name())
}
