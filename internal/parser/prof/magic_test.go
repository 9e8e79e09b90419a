package prof

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcprof/internal/parser/binio"
	"github.com/hpcprof/internal/testutil"
)

func TestReadMagicKey(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		data := testutil.NewEncoder(binary.BigEndian).Header("EPRF", 3, 0x0402).Bytes()
		c := binio.NewCursor(data, binio.BigEndian)

		key, err := ReadMagicKey(c, EProf)
		require.NoError(t, err)
		assert.Equal(t, MagicKey{Tag: "EPRF", AddMode: 3, Version: 0x0402}, key)
		assert.Equal(t, 8, c.Offset())
	})

	t.Run("invalid tag stops before version", func(t *testing.T) {
		data := testutil.NewEncoder(binary.LittleEndian).Header("DPRF", 0, 0x0412).Bytes()
		c := binio.NewCursor(data, binio.LittleEndian)

		_, err := ReadMagicKey(c, EProf)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidMagic)

		var me *MagicError
		require.True(t, errors.As(err, &me))
		assert.Equal(t, []byte("DPRF"), me.Got)
		assert.Equal(t, TagLength, c.Offset())
	})

	t.Run("tag only", func(t *testing.T) {
		c := binio.NewCursor([]byte("XY"), binio.LittleEndian)
		_, err := ReadMagicKey(c, EProf)
		assert.ErrorIs(t, err, binio.ErrTruncated)
	})

	t.Run("unsupported version", func(t *testing.T) {
		data := testutil.NewEncoder(binary.LittleEndian).Header("DPRF", 0, 0x0411).Bytes()
		_, err := ReadMagicKey(binio.NewCursor(data, binio.LittleEndian), DProf)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedVersion)

		var ve *VersionError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, int16(0x0411), ve.Found)
		assert.Equal(t, int16(0x0412), ve.Supported)
		assert.Contains(t, err.Error(), "file=0x0411")
		assert.Contains(t, err.Error(), "supported=0x0412")
	})

	t.Run("wrong byte order reads as other version", func(t *testing.T) {
		data := testutil.NewEncoder(binary.BigEndian).Header("EPRF", 0, 0x0402).Bytes()
		_, err := ReadMagicKey(binio.NewCursor(data, binio.LittleEndian), EProf)
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})
}

func TestProbeEndian(t *testing.T) {
	little := testutil.NewEncoder(binary.LittleEndian).Header("EPRF", 0, 0x0402).Bytes()
	big := testutil.NewEncoder(binary.BigEndian).Header("EPRF", 0, 0x0402).Bytes()
	other := testutil.NewEncoder(binary.BigEndian).Header("EPRF", 0, 0x0100).Bytes()

	assert.Equal(t, binio.LittleEndian, ProbeEndian(little, EProf))
	assert.Equal(t, binio.BigEndian, ProbeEndian(big, EProf))
	assert.Equal(t, binio.LittleEndian, ProbeEndian(other, EProf))
	assert.Equal(t, binio.LittleEndian, ProbeEndian(big, DProf))
	assert.Equal(t, binio.LittleEndian, ProbeEndian([]byte("EP"), EProf))
}
