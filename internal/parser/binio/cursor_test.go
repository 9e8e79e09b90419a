package binio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_ReadIntegers(t *testing.T) {
	tests := []struct {
		name   string
		endian Endian
		order  binary.ByteOrder
	}{
		{"little", LittleEndian, binary.LittleEndian},
		{"big", BigEndian, binary.BigEndian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			require.NoError(t, binary.Write(buf, tt.order, int16(-2)))
			require.NoError(t, binary.Write(buf, tt.order, uint16(0xBEEF)))
			require.NoError(t, binary.Write(buf, tt.order, int32(-70000)))
			require.NoError(t, binary.Write(buf, tt.order, uint32(0xDEADBEEF)))
			require.NoError(t, binary.Write(buf, tt.order, int64(-1<<40)))
			require.NoError(t, binary.Write(buf, tt.order, uint64(1<<63)))
			require.NoError(t, binary.Write(buf, tt.order, float32(1.5)))
			require.NoError(t, binary.Write(buf, tt.order, math.Pi))

			c := NewCursor(buf.Bytes(), tt.endian)

			i16, err := c.ReadInt16()
			require.NoError(t, err)
			assert.Equal(t, int16(-2), i16)

			u16, err := c.ReadUint16()
			require.NoError(t, err)
			assert.Equal(t, uint16(0xBEEF), u16)

			i32, err := c.ReadInt32()
			require.NoError(t, err)
			assert.Equal(t, int32(-70000), i32)

			u32, err := c.ReadUint32()
			require.NoError(t, err)
			assert.Equal(t, uint32(0xDEADBEEF), u32)

			i64, err := c.ReadInt64()
			require.NoError(t, err)
			assert.Equal(t, int64(-1<<40), i64)

			u64, err := c.ReadUint64()
			require.NoError(t, err)
			assert.Equal(t, uint64(1<<63), u64)

			f32, err := c.ReadFloat32()
			require.NoError(t, err)
			assert.Equal(t, float32(1.5), f32)

			f64, err := c.ReadFloat64()
			require.NoError(t, err)
			assert.Equal(t, math.Pi, f64)

			assert.Equal(t, 0, c.Remaining())
			assert.Equal(t, buf.Len(), c.Offset())
		})
	}
}

func TestCursor_Truncated(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02, 0x03}, LittleEndian)

	_, err := c.ReadInt32()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncated))

	var te *TruncatedError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 0, te.Offset)
	assert.Equal(t, 4, te.Need)
	assert.Equal(t, 3, te.Remaining)

	// A failed read does not move the cursor.
	assert.Equal(t, 0, c.Offset())
	v, err := c.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0201), v)
}

func TestCursor_ReadFixedString(t *testing.T) {
	t.Run("trims padding", func(t *testing.T) {
		c := NewCursor([]byte("abc \x00\x00\x00\x00rest"), LittleEndian)
		s, err := c.ReadFixedString(8)
		require.NoError(t, err)
		assert.Equal(t, "abc", s)
		assert.Equal(t, 8, c.Offset())
	})

	t.Run("keeps inner blanks", func(t *testing.T) {
		c := NewCursor([]byte("a b\x00"), LittleEndian)
		s, err := c.ReadFixedString(4)
		require.NoError(t, err)
		assert.Equal(t, "a b", s)
	})

	t.Run("truncated", func(t *testing.T) {
		c := NewCursor([]byte("ab"), LittleEndian)
		_, err := c.ReadFixedString(3)
		assert.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("negative length", func(t *testing.T) {
		c := NewCursor([]byte("ab"), LittleEndian)
		_, err := c.ReadFixedString(-1)
		assert.ErrorIs(t, err, ErrInvalidLength)
	})
}

func TestCursor_ReadPrefixedString(t *testing.T) {
	t.Run("big endian length", func(t *testing.T) {
		c := NewCursor([]byte{0, 0, 0, 4, 'm', 'a', 'i', 'n'}, BigEndian)
		s, err := c.ReadPrefixedString()
		require.NoError(t, err)
		assert.Equal(t, "main", s)
	})

	t.Run("length beyond input", func(t *testing.T) {
		c := NewCursor([]byte{9, 0, 0, 0, 'x'}, LittleEndian)
		_, err := c.ReadPrefixedString()
		assert.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("negative length", func(t *testing.T) {
		c := NewCursor([]byte{0xFF, 0xFF, 0xFF, 0xFF}, LittleEndian)
		_, err := c.ReadPrefixedString()
		assert.ErrorIs(t, err, ErrInvalidLength)

		var le *LengthError
		require.True(t, errors.As(err, &le))
		assert.Equal(t, int64(-1), le.Length)
	})
}

func TestCursor_ReadBytesCopies(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	c := NewCursor(buf, LittleEndian)
	b, err := c.ReadBytes(2)
	require.NoError(t, err)
	b[0] = 9
	assert.Equal(t, byte(1), buf[0])
}

func TestCursor_Charset(t *testing.T) {
	cs, err := LookupCharset("shift_jis")
	require.NoError(t, err)
	assert.Equal(t, "shift_jis", cs.Name())

	// "テスト" in Shift_JIS, NUL padded.
	raw := []byte{0x83, 0x65, 0x83, 0x58, 0x83, 0x67, 0x00, 0x00}
	c := NewCursor(raw, LittleEndian, WithCharset(cs))
	s, err := c.ReadFixedString(len(raw))
	require.NoError(t, err)
	assert.Equal(t, "テスト", s)
}
