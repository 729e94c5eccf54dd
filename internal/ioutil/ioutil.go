// Package ioutil provides small I/O helpers shared by pack and unpack.
package ioutil

import (
	"context"
	"io"
)

// DefaultBufferSize is the chunk size used when streaming file content.
const DefaultBufferSize = 32 * 1024

// CountingWriter counts the bytes successfully written to W.
type CountingWriter struct {
	W io.Writer
	N uint64
}

func (w *CountingWriter) Write(p []byte) (int, error) {
	n, err := w.W.Write(p)
	w.N += uint64(n) //nolint:gosec // n is never negative
	return n, err
}

// CountingReader counts the bytes read from R.
type CountingReader struct {
	R io.Reader
	N uint64
}

func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.R.Read(p)
	r.N += uint64(n) //nolint:gosec // n is never negative
	return n, err
}

// ReadByte implements io.ByteReader when R does.
func (r *CountingReader) ReadByte() (byte, error) {
	if br, ok := r.R.(io.ByteReader); ok {
		b, err := br.ReadByte()
		if err == nil {
			r.N++
		}
		return b, err
	}
	var one [1]byte
	if _, err := io.ReadFull(r, one[:]); err != nil {
		return 0, err
	}
	return one[0], nil
}

// CopyWithContext copies src to dst using buf, checking ctx between chunks.
// If buf is nil a buffer of DefaultBufferSize is allocated.
func CopyWithContext(ctx context.Context, dst io.Writer, src io.Reader, buf []byte) (int64, error) {
	if buf == nil {
		buf = make([]byte, DefaultBufferSize)
	}
	var written int64
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		nr, rerr := src.Read(buf)
		if nr > 0 {
			nw, werr := dst.Write(buf[:nr])
			written += int64(nw)
			if werr != nil {
				return written, werr
			}
			if nw != nr {
				return written, io.ErrShortWrite
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}
