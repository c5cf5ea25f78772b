// Package binary provides bounds-checked reads over an io.ReaderAt, used to
// sniff container signatures before handing a file to a tag library.
package binary

import (
	"encoding/binary"
	"fmt"
	"io"
)

// SafeReader wraps io.ReaderAt with bounds checking and helpful error messages.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the size the reader was created with.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadAt reads bytes at the given offset with context for error messages.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off >= sr.size {
		return fmt.Errorf("%s: offset %d out of bounds (file size: %d) while reading %s",
			sr.path, off, sr.size, what)
	}

	if off+int64(len(b)) > sr.size {
		return fmt.Errorf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s",
			sr.path, len(b), off, sr.size, what)
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}

	if n < len(b) {
		return fmt.Errorf("%s: short read for %s at offset %d: got %d bytes, expected %d",
			sr.path, what, off, n, len(b))
	}

	return nil
}

// Bytes reads n bytes at off into a fresh slice.
func (sr *SafeReader) Bytes(off int64, n int, what string) ([]byte, error) {
	buf := make([]byte, n)
	if err := sr.ReadAt(buf, off, what); err != nil {
		return nil, err
	}
	return buf, nil
}

// Has reports whether n bytes starting at off lie inside the reader.
func (sr *SafeReader) Has(off int64, n int) bool {
	return off >= 0 && off+int64(n) <= sr.size
}

// Read reads a big-endian value of type T from the given offset.
// T must be uint8, uint16, uint32, or uint64.
func Read[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	var zero T
	var size int

	switch any(zero).(type) {
	case uint8:
		size = 1
	case uint16:
		size = 2
	case uint32:
		size = 4
	case uint64:
		size = 8
	}

	buf := make([]byte, size)
	if err := sr.ReadAt(buf, off, what); err != nil {
		return zero, err
	}

	var val T
	switch any(zero).(type) {
	case uint8:
		val = T(buf[0])
	case uint16:
		val = T(binary.BigEndian.Uint16(buf))
	case uint32:
		val = T(binary.BigEndian.Uint32(buf))
	case uint64:
		val = T(binary.BigEndian.Uint64(buf))
	}

	return val, nil
}

// Synchsafe decodes a 4-byte ID3v2 synchsafe integer (7 bits per byte).
func Synchsafe(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

// ID3v2Size returns the total size of an ID3v2 tag at the start of sr,
// footer included, and whether one was found.
func ID3v2Size(sr *SafeReader) (int64, bool) {
	if !sr.Has(0, 10) {
		return 0, false
	}
	header, err := sr.Bytes(0, 10, "ID3v2 header")
	if err != nil || string(header[:3]) != "ID3" {
		return 0, false
	}
	size := int64(10) + int64(Synchsafe(header[6:10]))
	if header[5]&0x10 != 0 {
		size += 10 // footer
	}
	return size, true
}
