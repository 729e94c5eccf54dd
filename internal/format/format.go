// Package format implements the framing primitives of the flatpack container.
//
// A container is a big-endian uint64 total size followed by entries. Each
// entry is a NUL-terminated name, a big-endian uint64 data size, and the raw
// data bytes.
package format

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// HeaderSize is the width of every size field in the container.
const HeaderSize = 8

var (
	// ErrNameContainsNUL is returned when a name cannot be NUL-terminated.
	ErrNameContainsNUL = errors.New("format: name contains NUL byte")

	// ErrNameTooLong is returned when a name exceeds the reader's limit.
	ErrNameTooLong = errors.New("format: name too long")
)

// WriteSize writes v as a big-endian 8-byte unsigned integer.
func WriteSize(w io.Writer, v uint64) error {
	var buf [HeaderSize]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// ReadSize reads a big-endian 8-byte unsigned integer.
// A stream that ends before all 8 bytes are read yields io.ErrUnexpectedEOF.
func ReadSize(r io.Reader) (uint64, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.EOF {
			return 0, io.ErrUnexpectedEOF
		}
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// WriteName writes name followed by a single NUL byte.
func WriteName(w io.Writer, name string) error {
	if bytes.IndexByte([]byte(name), 0) >= 0 {
		return fmt.Errorf("%w: %q", ErrNameContainsNUL, name)
	}
	buf := make([]byte, 0, len(name)+1)
	buf = append(buf, name...)
	buf = append(buf, 0)
	_, err := w.Write(buf)
	return err
}

// ReadName reads bytes up to and including the next NUL byte and returns
// the bytes before it. n is the number of bytes consumed, terminator
// included. maxLen bounds the name length; zero or negative means no limit.
func ReadName(r io.ByteReader, maxLen int) (name string, n int, err error) {
	var buf []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return "", n, io.ErrUnexpectedEOF
			}
			return "", n, err
		}
		n++
		if b == 0 {
			return string(buf), n, nil
		}
		if maxLen > 0 && len(buf) >= maxLen {
			return "", n, ErrNameTooLong
		}
		buf = append(buf, b)
	}
}
