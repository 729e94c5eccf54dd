package flatpack

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/meigma/flatpack/internal/ioutil"
)

// List returns the entries of the container at src in container order,
// without extracting anything. It applies the same framing, name, and
// collision checks as Unpack given the same options, so a container that
// lists cleanly also unpacks cleanly.
func List(ctx context.Context, src string, opts ...UnpackOption) ([]Entry, error) {
	cfg := newUnpackConfig(opts)

	f, err := os.Open(src)
	if err != nil {
		return nil, ioError("open", err)
	}
	defer f.Close()

	r, err := newReader(bufio.NewReaderSize(f, ioutil.DefaultBufferSize), cfg.maxNameLength)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", src, err)
	}

	var seen map[string]struct{}
	if cfg.collisions == CollisionReject {
		seen = make(map[string]struct{})
	}

	var entries []Entry //nolint:prealloc // count unknown until scanned
	buf := make([]byte, ioutil.DefaultBufferSize)
	for r.more() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e, err := r.next()
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", src, err)
		}
		if seen != nil {
			if _, dup := seen[e.Name]; dup {
				return nil, fmt.Errorf("list %s: %w: %q appears more than once", src, ErrNameCollision, e.Name)
			}
			seen[e.Name] = struct{}{}
		}
		if err := r.copyData(ctx, io.Discard, e, buf); err != nil {
			return nil, fmt.Errorf("list %s: %w", src, err)
		}
		entries = append(entries, e)
	}

	cfg.log().Debug("listed archive", "src", src, "entries", len(entries), "size", r.TotalSize())
	return entries, nil
}
