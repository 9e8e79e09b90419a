package testutil

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Option bits written by the fixtures. They mirror the wire values so that
// tests can build files without importing the decoder.
const (
	OptMPI       uint32 = 0x1
	OptPA        uint32 = 0x2
	OptSampling  uint32 = 0x4
	OptCallGraph uint32 = 0x40
	OptMPIElaps  uint32 = 0x80
)

// Encoder writes profile fields in a fixed byte order.
type Encoder struct {
	buf   bytes.Buffer
	order binary.ByteOrder
}

// NewEncoder creates an Encoder for order.
func NewEncoder(order binary.ByteOrder) *Encoder {
	return &Encoder{order: order}
}

// Bytes returns the encoded image.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Raw appends b unchanged.
func (e *Encoder) Raw(b []byte) *Encoder {
	e.buf.Write(b)
	return e
}

// I16 appends a 16-bit signed value.
func (e *Encoder) I16(v int16) *Encoder {
	return e.U16(uint16(v))
}

// U16 appends a 16-bit unsigned value.
func (e *Encoder) U16(v uint16) *Encoder {
	var b [2]byte
	e.order.PutUint16(b[:], v)
	e.buf.Write(b[:])
	return e
}

// I32 appends a 32-bit signed value.
func (e *Encoder) I32(v int32) *Encoder {
	return e.U32(uint32(v))
}

// U32 appends a 32-bit unsigned value.
func (e *Encoder) U32(v uint32) *Encoder {
	var b [4]byte
	e.order.PutUint32(b[:], v)
	e.buf.Write(b[:])
	return e
}

// U64 appends a 64-bit unsigned value.
func (e *Encoder) U64(v uint64) *Encoder {
	var b [8]byte
	e.order.PutUint64(b[:], v)
	e.buf.Write(b[:])
	return e
}

// F32 appends a single-precision value.
func (e *Encoder) F32(v float32) *Encoder {
	return e.U32(math.Float32bits(v))
}

// F64 appends a double-precision value.
func (e *Encoder) F64(v float64) *Encoder {
	return e.U64(math.Float64bits(v))
}

// Fixed appends s NUL-padded (or cut) to n bytes.
func (e *Encoder) Fixed(s string, n int) *Encoder {
	b := make([]byte, n)
	copy(b, s)
	e.buf.Write(b)
	return e
}

// Prefixed appends a 32-bit length followed by s.
func (e *Encoder) Prefixed(s string) *Encoder {
	e.I32(int32(len(s)))
	e.buf.WriteString(s)
	return e
}

// Header appends the tag, add_mode and version.
func (e *Encoder) Header(tag string, addMode, version int16) *Encoder {
	return e.Fixed(tag, 4).I16(addMode).I16(version)
}
