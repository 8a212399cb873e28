package model

import (
	"errors"
	"fmt"
)

// ErrWindowOutOfRange is returned when a window starts beyond the end of the
// buffer or has a negative offset.
var ErrWindowOutOfRange = errors.New("window out of range")

// ByteBuffer holds an immutable view of input bytes.
// The zero value is an empty buffer.
type ByteBuffer struct {
	b []byte

	// base is the offset of b[0] within the original input.
	base int64
}

// NewByteBuffer creates a ByteBuffer holding a copy of data.
func NewByteBuffer(data []byte) ByteBuffer {
	return ByteBuffer{b: cloneBytes(data)}
}

// Len returns the number of bytes in the buffer.
func (bb ByteBuffer) Len() int {
	return len(bb.b)
}

// BaseOffset returns the position of the first byte within the original input.
// It is non-zero only for buffers produced by Window.
func (bb ByteBuffer) BaseOffset() int64 {
	return bb.base
}

// Bytes returns a copy of the buffer contents.
func (bb ByteBuffer) Bytes() []byte {
	return cloneBytes(bb.b)
}

// At returns the byte at index i. It panics if i is out of range,
// like a slice index.
func (bb ByteBuffer) At(i int) byte {
	return bb.b[i]
}

// Window returns the sub-buffer starting at offset and spanning length bytes.
// A negative length, or one reaching past the end, selects everything up to
// the end of the buffer. An offset equal to Len yields an empty buffer.
func (bb ByteBuffer) Window(offset, length int64) (ByteBuffer, error) {
	if offset < 0 || offset > int64(len(bb.b)) {
		return ByteBuffer{}, fmt.Errorf("%w: offset %d, buffer size %d", ErrWindowOutOfRange, offset, len(bb.b))
	}

	end := int64(len(bb.b))
	if length >= 0 && length < end-offset {
		end = offset + length
	}

	// The view shares memory with bb. That is safe because neither
	// buffer ever exposes or writes its backing array.
	return ByteBuffer{b: bb.b[offset:end], base: bb.base + offset}, nil
}

// Stats counts the bytes of the buffer by class.
func (bb ByteBuffer) Stats() ByteStats {
	var s ByteStats
	for _, c := range bb.b {
		switch {
		case c == 0x00:
			s.Null++
		case c >= 0x20 && c <= 0x7e:
			s.Printable++
		case c < 0x80:
			s.Control++
		default:
			s.High++
		}
	}
	return s
}

// ByteStats holds per-class byte counts of a buffer.
type ByteStats struct {
	// Null counts 0x00 bytes.
	Null int `json:"null"`

	// Printable counts printable ASCII bytes (0x20-0x7E).
	Printable int `json:"printable"`

	// Control counts the remaining ASCII bytes (0x01-0x1F and 0x7F).
	Control int `json:"control"`

	// High counts bytes with the high bit set (0x80-0xFF).
	High int `json:"high"`
}

// Total returns the number of bytes counted.
func (s ByteStats) Total() int {
	return s.Null + s.Printable + s.Control + s.High
}

// cloneBytes returns a copy of b that never aliases it.
func cloneBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
