package flatpack

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/meigma/flatpack/internal/atomicfile"
	"github.com/meigma/flatpack/internal/ioutil"
)

// Unpack extracts every entry of the container at src into destDir.
//
// An empty destDir means the current directory. destDir and any missing
// parents are created. Existing files with an entry's name are replaced.
//
// Reading stops once the offset declared in the container header is reached.
// A container that ends early, or that names an entry with a path separator,
// fails with ErrMalformedArchive. Entries extracted before the failure stay
// on disk; the failing entry itself is never left half-written.
func Unpack(ctx context.Context, src, destDir string, opts ...UnpackOption) error {
	cfg := newUnpackConfig(opts)
	if destDir == "" {
		destDir = "."
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return ioError("create "+destDir, err)
	}

	f, err := os.Open(src)
	if err != nil {
		return ioError("open", err)
	}
	defer f.Close()

	r, err := newReader(bufio.NewReaderSize(f, ioutil.DefaultBufferSize), cfg.maxNameLength)
	if err != nil {
		return fmt.Errorf("unpack %s: %w", src, err)
	}

	var seen map[string]struct{}
	if cfg.collisions == CollisionReject {
		seen = make(map[string]struct{})
	}

	buf := make([]byte, ioutil.DefaultBufferSize)
	count := 0
	for r.more() {
		if err := ctx.Err(); err != nil {
			return err
		}
		e, err := r.next()
		if err != nil {
			return fmt.Errorf("unpack %s: %w", src, err)
		}
		if seen != nil {
			if _, dup := seen[e.Name]; dup {
				return fmt.Errorf("unpack %s: %w: %q appears more than once", src, ErrNameCollision, e.Name)
			}
			seen[e.Name] = struct{}{}
		}
		if err := extractEntry(ctx, r, destDir, e, buf); err != nil {
			return fmt.Errorf("unpack %s: %w", src, err)
		}

		count++
		cfg.log().Debug("unpacked entry", "name", e.Name, "size", e.Size)
		if cfg.progress != nil {
			cfg.progress(ProgressEvent{
				Stage:       StageUnpacking,
				Name:        e.Name,
				BytesDone:   uint64(r.offset()), //nolint:gosec // offsets are never negative
				EntriesDone: count,
			})
		}
	}

	cfg.log().Info("unpacked archive", "src", src, "dest", destDir, "entries", count)
	return nil
}

// extractEntry writes the data of e to destDir/e.Name through a staging file.
func extractEntry(ctx context.Context, r *reader, destDir string, e Entry, buf []byte) error {
	out, err := atomicfile.Create(filepath.Join(destDir, e.Name))
	if err != nil {
		return ioError("create "+e.Name, err)
	}
	defer out.Discard() //nolint:errcheck // no-op after a successful commit

	if err := r.copyData(ctx, out, e, buf); err != nil {
		return err
	}
	if err := out.Commit(); err != nil {
		return ioError("commit "+e.Name, err)
	}
	return nil
}
