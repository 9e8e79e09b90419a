// Package binio provides forward-only, endian-aware decoding over a fully
// buffered file image.
package binio

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Cursor reads fixed-width values from an in-memory image. The read position
// only moves forward; there is no seek or rewind.
type Cursor struct {
	buf     []byte
	off     int
	order   binary.ByteOrder
	charset Charset
}

// CursorOption configures a Cursor.
type CursorOption func(*Cursor)

// WithCharset sets the charset used to decode string fields.
func WithCharset(cs Charset) CursorOption {
	return func(c *Cursor) {
		c.charset = cs
	}
}

// NewCursor creates a Cursor over buf. The cursor does not copy buf; callers
// must not modify it while decoding.
func NewCursor(buf []byte, endian Endian, opts ...CursorOption) *Cursor {
	c := &Cursor{
		buf:     buf,
		order:   endian.ByteOrder(),
		charset: UTF8,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int {
	return c.off
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.off
}

// ByteOrder returns the byte order fields are decoded with.
func (c *Cursor) ByteOrder() binary.ByteOrder {
	return c.order
}

// next consumes n bytes and returns them without copying.
func (c *Cursor) next(n int) ([]byte, error) {
	if n < 0 {
		return nil, &LengthError{Offset: c.off, Length: int64(n)}
	}
	if n > c.Remaining() {
		return nil, &TruncatedError{Offset: c.off, Need: n, Remaining: c.Remaining()}
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

// ReadBytes consumes n bytes and returns a copy of them.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	b, err := c.next(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadUint16 reads a 16-bit unsigned integer.
func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.next(2)
	if err != nil {
		return 0, err
	}
	return c.order.Uint16(b), nil
}

// ReadInt16 reads a 16-bit signed integer.
func (c *Cursor) ReadInt16() (int16, error) {
	v, err := c.ReadUint16()
	return int16(v), err
}

// ReadUint32 reads a 32-bit unsigned integer.
func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.next(4)
	if err != nil {
		return 0, err
	}
	return c.order.Uint32(b), nil
}

// ReadInt32 reads a 32-bit signed integer.
func (c *Cursor) ReadInt32() (int32, error) {
	v, err := c.ReadUint32()
	return int32(v), err
}

// ReadUint64 reads a 64-bit unsigned integer.
func (c *Cursor) ReadUint64() (uint64, error) {
	b, err := c.next(8)
	if err != nil {
		return 0, err
	}
	return c.order.Uint64(b), nil
}

// ReadInt64 reads a 64-bit signed integer.
func (c *Cursor) ReadInt64() (int64, error) {
	v, err := c.ReadUint64()
	return int64(v), err
}

// ReadFloat32 reads an IEEE 754 single-precision value.
func (c *Cursor) ReadFloat32() (float32, error) {
	v, err := c.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFloat64 reads an IEEE 754 double-precision value.
func (c *Cursor) ReadFloat64() (float64, error) {
	v, err := c.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadFixedString consumes exactly n bytes and decodes them with the cursor's
// charset. Trailing NUL and blank padding is removed.
func (c *Cursor) ReadFixedString(n int) (string, error) {
	b, err := c.next(n)
	if err != nil {
		return "", err
	}
	return c.charset.Decode(bytes.TrimRight(b, "\x00 "))
}

// ReadPrefixedString reads a 32-bit length followed by that many bytes of text.
func (c *Cursor) ReadPrefixedString() (string, error) {
	start := c.off
	n, err := c.ReadInt32()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", &LengthError{Offset: start, Length: int64(n)}
	}
	return c.ReadFixedString(int(n))
}
