package binio

import "fmt"

// FieldReader wraps a Cursor for decoding records field by field. The first
// failure is kept, wrapped with the field name, and every later read returns a
// zero value, so a record decoder checks Err once at the end.
type FieldReader struct {
	c   *Cursor
	err error
}

// NewFieldReader creates a FieldReader over c.
func NewFieldReader(c *Cursor) *FieldReader {
	return &FieldReader{c: c}
}

// Cursor returns the underlying cursor.
func (r *FieldReader) Cursor() *Cursor {
	return r.c
}

// Err returns the first error encountered, if any.
func (r *FieldReader) Err() error {
	return r.err
}

// Fail records err unless an earlier error is already recorded.
func (r *FieldReader) Fail(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func (r *FieldReader) fail(field string, err error) {
	r.Fail(fmt.Errorf("failed to read %s: %w", field, err))
}

// Int16 reads a 16-bit signed field.
func (r *FieldReader) Int16(field string) int16 {
	if r.err != nil {
		return 0
	}
	v, err := r.c.ReadInt16()
	if err != nil {
		r.fail(field, err)
	}
	return v
}

// Uint16 reads a 16-bit unsigned field.
func (r *FieldReader) Uint16(field string) uint16 {
	if r.err != nil {
		return 0
	}
	v, err := r.c.ReadUint16()
	if err != nil {
		r.fail(field, err)
	}
	return v
}

// Int32 reads a 32-bit signed field.
func (r *FieldReader) Int32(field string) int32 {
	if r.err != nil {
		return 0
	}
	v, err := r.c.ReadInt32()
	if err != nil {
		r.fail(field, err)
	}
	return v
}

// Uint32 reads a 32-bit unsigned field.
func (r *FieldReader) Uint32(field string) uint32 {
	if r.err != nil {
		return 0
	}
	v, err := r.c.ReadUint32()
	if err != nil {
		r.fail(field, err)
	}
	return v
}

// Uint64 reads a 64-bit unsigned field.
func (r *FieldReader) Uint64(field string) uint64 {
	if r.err != nil {
		return 0
	}
	v, err := r.c.ReadUint64()
	if err != nil {
		r.fail(field, err)
	}
	return v
}

// Float32 reads a single-precision field.
func (r *FieldReader) Float32(field string) float32 {
	if r.err != nil {
		return 0
	}
	v, err := r.c.ReadFloat32()
	if err != nil {
		r.fail(field, err)
	}
	return v
}

// Float64 reads a double-precision field.
func (r *FieldReader) Float64(field string) float64 {
	if r.err != nil {
		return 0
	}
	v, err := r.c.ReadFloat64()
	if err != nil {
		r.fail(field, err)
	}
	return v
}

// Float64s reads n consecutive double-precision values.
func (r *FieldReader) Float64s(field string, n int) []float64 {
	if r.err != nil {
		return nil
	}
	if need := n * 8; need > r.c.Remaining() {
		r.fail(field, &TruncatedError{Offset: r.c.Offset(), Need: need, Remaining: r.c.Remaining()})
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = r.Float64(field)
	}
	return out
}

// FixedString reads an n-byte padded string field.
func (r *FieldReader) FixedString(field string, n int) string {
	if r.err != nil {
		return ""
	}
	v, err := r.c.ReadFixedString(n)
	if err != nil {
		r.fail(field, err)
	}
	return v
}

// PrefixedString reads a length-prefixed string field.
func (r *FieldReader) PrefixedString(field string) string {
	if r.err != nil {
		return ""
	}
	v, err := r.c.ReadPrefixedString()
	if err != nil {
		r.fail(field, err)
	}
	return v
}

// Count reads a 32-bit element count. Each element occupies at least
// minSize bytes; a count the remaining input cannot hold fails as truncated
// before anything is allocated for it.
func (r *FieldReader) Count(field string, minSize int) int {
	if r.err != nil {
		return 0
	}
	start := r.c.Offset()
	n, err := r.c.ReadInt32()
	if err != nil {
		r.fail(field, err)
		return 0
	}
	if n < 0 {
		r.fail(field, &LengthError{Offset: start, Length: int64(n)})
		return 0
	}
	if minSize > 0 {
		if need := int64(n) * int64(minSize); need > int64(r.c.Remaining()) {
			r.fail(field, &TruncatedError{Offset: r.c.Offset(), Need: int(need), Remaining: r.c.Remaining()})
			return 0
		}
	}
	return int(n)
}
