package flatpack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/meigma/flatpack/internal/format"
	"github.com/meigma/flatpack/internal/ioutil"
)

// reader walks the entries of a container sequentially.
type reader struct {
	r       *ioutil.CountingReader
	total   uint64
	maxName int
}

// newReader reads the container header from r. r should be buffered; names
// are read a byte at a time.
func newReader(r io.Reader, maxName int) (*reader, error) {
	cr := &ioutil.CountingReader{R: r}
	total, err := format.ReadSize(cr)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, malformed(0, "container shorter than its %d-byte header", format.HeaderSize)
		}
		return nil, ioError("read header", err)
	}
	if total < format.HeaderSize {
		return nil, malformed(0, "declared size %d is smaller than the header", total)
	}
	return &reader{r: cr, total: total, maxName: maxName}, nil
}

// TotalSize returns the container size declared in the header.
func (r *reader) TotalSize() uint64 {
	return r.total
}

// offset returns the number of container bytes consumed so far.
func (r *reader) offset() int64 {
	return int64(r.r.N) //nolint:gosec // bounded by the file size
}

// more reports whether the declared size has not been reached yet.
func (r *reader) more() bool {
	return r.r.N < r.total
}

// next reads the framing of the next entry, leaving the reader positioned at
// the start of its data.
func (r *reader) next() (Entry, error) {
	start := r.offset()

	name, _, err := format.ReadName(r.r, r.maxName)
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF):
		return Entry{}, malformed(start, "container ends before name terminator")
	case errors.Is(err, format.ErrNameTooLong):
		return Entry{}, malformed(start, "entry name longer than %d bytes", r.maxName)
	case err != nil:
		return Entry{}, ioError("read name", err)
	}
	if verr := ValidateName(name); verr != nil {
		return Entry{}, fmt.Errorf("%w: offset %d: %w", ErrMalformedArchive, start, verr)
	}

	sizeOffset := r.offset()
	size, err := format.ReadSize(r.r)
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF):
		return Entry{}, malformed(sizeOffset, "container ends inside size field of %q", name)
	case err != nil:
		return Entry{}, ioError("read size", err)
	}
	if size > math.MaxInt64 {
		return Entry{}, malformed(sizeOffset, "entry %q declares size %d", name, size)
	}

	return Entry{Name: name, Size: size, Offset: r.offset()}, nil
}

// copyData streams the data of e, as returned by next, to w.
func (r *reader) copyData(ctx context.Context, w io.Writer, e Entry, buf []byte) error {
	n, err := ioutil.CopyWithContext(ctx, w, io.LimitReader(r.r, int64(e.Size)), buf) //nolint:gosec // checked in next
	if err != nil {
		return ioError("copy "+e.Name, err)
	}
	if uint64(n) != e.Size { //nolint:gosec // n is never negative
		return malformed(e.Offset, "entry %q truncated: expected %d bytes, got %d", e.Name, e.Size, n)
	}
	return nil
}
