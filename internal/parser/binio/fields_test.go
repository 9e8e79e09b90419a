package binio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldReader_StickyError(t *testing.T) {
	c := NewCursor([]byte{1, 0, 0, 0, 2, 0}, LittleEndian)
	r := NewFieldReader(c)

	assert.Equal(t, int32(1), r.Int32("first"))
	assert.Equal(t, int32(0), r.Int32("second"))
	assert.Equal(t, int16(0), r.Int16("third"))

	err := r.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTruncated)
	assert.Contains(t, err.Error(), "failed to read second")
	assert.NotContains(t, err.Error(), "third")
}

func TestFieldReader_Fail(t *testing.T) {
	r := NewFieldReader(NewCursor(nil, LittleEndian))
	first := errors.New("first")
	r.Fail(first)
	r.Fail(errors.New("second"))
	assert.Same(t, first, r.Err())
	assert.Empty(t, r.PrefixedString("name"))
}

func TestFieldReader_Count(t *testing.T) {
	t.Run("fits", func(t *testing.T) {
		r := NewFieldReader(NewCursor([]byte{2, 0, 0, 0, 1, 2, 3, 4, 5, 6, 7, 8}, LittleEndian))
		assert.Equal(t, 2, r.Count("items", 4))
		assert.NoError(t, r.Err())
	})

	t.Run("too large for input", func(t *testing.T) {
		r := NewFieldReader(NewCursor([]byte{0xFF, 0xFF, 0xFF, 0x7F}, LittleEndian))
		assert.Equal(t, 0, r.Count("items", 40))
		assert.ErrorIs(t, r.Err(), ErrTruncated)
	})

	t.Run("negative", func(t *testing.T) {
		r := NewFieldReader(NewCursor([]byte{0xFE, 0xFF, 0xFF, 0xFF}, LittleEndian))
		assert.Equal(t, 0, r.Count("items", 4))
		assert.ErrorIs(t, r.Err(), ErrInvalidLength)
	})
}

func TestFieldReader_Float64s(t *testing.T) {
	c := NewCursor(make([]byte, 16), LittleEndian)
	r := NewFieldReader(c)
	assert.Nil(t, r.Float64s("samples", 3))
	assert.ErrorIs(t, r.Err(), ErrTruncated)
	assert.Equal(t, 0, c.Offset())
}
