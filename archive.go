package flatpack

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"github.com/meigma/flatpack/internal/atomicfile"
	"github.com/meigma/flatpack/internal/format"
	"github.com/meigma/flatpack/internal/ioutil"
)

// Archive collects the files to pack. Paths are kept as a set: putting the
// same path twice has no effect.
//
// An Archive is not safe for concurrent use.
type Archive struct {
	paths map[string]struct{}
	added []string

	order      Order
	collisions CollisionPolicy
	logger     *slog.Logger
	progress   ProgressFunc

	// open opens a source file for Pack.
	open func(path string) (fs.File, error)
}

// NewArchive creates an empty Archive with the given options.
func NewArchive(opts ...Option) *Archive {
	a := &Archive{
		paths: make(map[string]struct{}),
		open:  openSource,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// log returns the logger, falling back to a discard logger if nil.
func (a *Archive) log() *slog.Logger {
	if a.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.logger
}

// Put adds the file at path to the archive.
//
// path must name an existing regular file; otherwise the returned error
// matches ErrNotFound. Symbolic links are followed. The file is not read
// until Pack, so a file removed in between surfaces as ErrIO from Pack.
func (a *Archive) Put(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrNotFound, path)
	}
	if err := ValidateName(baseName(path)); err != nil {
		return fmt.Errorf("put %s: %w", path, err)
	}

	if _, ok := a.paths[path]; ok {
		return nil
	}
	a.paths[path] = struct{}{}
	a.added = append(a.added, path)
	return nil
}

// Len returns the number of distinct paths in the archive.
func (a *Archive) Len() int {
	return len(a.added)
}

// Paths returns the archive's paths in the order Pack will write them.
func (a *Archive) Paths() []string {
	paths := slices.Clone(a.added)
	if a.order == OrderSorted {
		slices.Sort(paths)
	}
	return paths
}

// Pack writes the archive to dest and returns the container size in bytes.
//
// The container is staged in a temporary file next to dest and renamed over
// dest once complete, so dest is either replaced whole or left untouched.
// File content is streamed in fixed-size chunks. Each file must still hold
// exactly as many bytes as its size when written; a file that shrinks, grows,
// or is removed after Put fails the pack with ErrIO.
func (a *Archive) Pack(ctx context.Context, dest string) (int64, error) {
	paths := a.Paths()
	if a.collisions == CollisionReject {
		if err := checkCollisions(paths); err != nil {
			return 0, err
		}
	}

	out, err := atomicfile.Create(dest)
	if err != nil {
		return 0, ioError("create "+dest, err)
	}
	defer out.Discard() //nolint:errcheck // no-op after a successful commit

	bw := bufio.NewWriterSize(out, ioutil.DefaultBufferSize)
	cw := &ioutil.CountingWriter{W: bw}

	// Reserve the header; the total size is only known at the end.
	if err := format.WriteSize(cw, 0); err != nil {
		return 0, ioError("write header", err)
	}

	buf := make([]byte, ioutil.DefaultBufferSize)
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		size, err := a.writeEntry(ctx, cw, buf, path)
		if err != nil {
			return 0, err
		}
		a.log().Debug("packed entry", "path", path, "name", baseName(path), "size", size)
		if a.progress != nil {
			a.progress(ProgressEvent{
				Stage:        StagePacking,
				Name:         baseName(path),
				BytesDone:    cw.N,
				EntriesDone:  i + 1,
				EntriesTotal: len(paths),
			})
		}
	}

	if err := bw.Flush(); err != nil {
		return 0, ioError("write "+dest, err)
	}
	total, err := out.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, ioError("seek "+dest, err)
	}
	if _, err := out.Seek(0, io.SeekStart); err != nil {
		return 0, ioError("seek "+dest, err)
	}
	if err := format.WriteSize(out, uint64(total)); err != nil { //nolint:gosec // offsets are never negative
		return 0, ioError("write header", err)
	}
	if err := out.Commit(); err != nil {
		return 0, ioError("commit "+dest, err)
	}

	a.log().Info("packed archive", "dest", dest, "entries", len(paths), "size", total)
	return total, nil
}

func openSource(path string) (fs.File, error) {
	return os.Open(path)
}

// writeEntry appends one entry for the file at path and returns its data size.
func (a *Archive) writeEntry(ctx context.Context, w io.Writer, buf []byte, path string) (int64, error) {
	f, err := a.open(path)
	if err != nil {
		return 0, ioError("open", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, ioError("stat", err)
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%w: %s is no longer a regular file", ErrIO, path)
	}
	size := info.Size()

	name := baseName(path)
	if err := format.WriteName(w, name); err != nil {
		if errors.Is(err, format.ErrNameContainsNUL) {
			return 0, fmt.Errorf("%w: %w", ErrInvalidName, err)
		}
		return 0, ioError("write name", err)
	}
	if err := format.WriteSize(w, uint64(size)); err != nil { //nolint:gosec // regular file sizes are never negative
		return 0, ioError("write size", err)
	}

	cr := &ioutil.CountingReader{R: io.LimitReader(f, size)}
	if _, err := ioutil.CopyWithContext(ctx, w, cr, buf); err != nil {
		return 0, ioError("copy "+path, err)
	}
	if cr.N != uint64(size) { //nolint:gosec // regular file sizes are never negative
		return 0, fmt.Errorf("%w: %s: file size changed during pack: expected %d, got %d", ErrIO, path, size, cr.N)
	}
	// Bytes past the stat size mean the file grew after it was sized.
	var extra [1]byte
	n, err := io.ReadFull(f, extra[:])
	if n > 0 {
		return 0, fmt.Errorf("%w: %s: file size changed during pack: more than %d bytes", ErrIO, path, size)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, ioError("read "+path, err)
	}
	return size, nil
}

// checkCollisions fails if two paths share a base name.
func checkCollisions(paths []string) error {
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		name := baseName(path)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s and %s are both stored as %q", ErrNameCollision, prev, path, name)
		}
		seen[name] = path
	}
	return nil
}
