package eprof

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcprof/internal/parser/binio"
	"github.com/hpcprof/internal/parser/prof"
	"github.com/hpcprof/internal/testutil"
)

func TestDecode_MainGroupWithMPI(t *testing.T) {
	fx := testutil.NewEProfFixture()

	for _, endian := range []binio.Endian{binio.LittleEndian, binio.BigEndian} {
		t.Run(endian.String(), func(t *testing.T) {
			p, err := Decode(fx.Encode(endian.ByteOrder()), Options{Endian: endian})
			require.NoError(t, err)

			assert.Equal(t, prof.MagicKey{Tag: "EPRF", AddMode: 0, Version: 0x0402}, p.Magic)
			assert.Equal(t, endian, p.Endian)
			assert.Equal(t, int32(4), p.Common.ProcessCount)
			assert.Equal(t, int16(1), p.Common.ThreadCount)
			assert.Equal(t, int32(2000), p.Common.CPUClock)
			assert.Nil(t, p.Common.PerfCounter)
			assert.Nil(t, p.Common.Memory)

			require.Equal(t, int32(1), p.Events.DeclaredCount)
			require.Len(t, p.Events.Groups, 1)

			g := p.Events.Groups[0]
			assert.Equal(t, "main", g.Name)
			assert.Equal(t, int32(0), g.DetailNumber)
			assert.Equal(t, BaseInfo{CallCount: 10, ElapsedTime: 1.5, UserTime: 1.2, SystemTime: 0.3}, g.Base)

			require.NotNil(t, g.Mpi)
			require.Len(t, g.Mpi.Functions, 1)
			assert.Equal(t, int32(1), g.Mpi.Count)
			assert.Equal(t, prof.MpiFunction{
				Index:        3,
				CallCount:    7,
				ElapsedTime:  0.25,
				WaitTime:     0.125,
				MessageBytes: 1 << 20,
				Buckets:      [4]int32{1, 2, 3, 1},
			}, g.Mpi.Functions[0])
			assert.Nil(t, g.Hardware)
		})
	}
}

func TestDecode_HardwareWidths(t *testing.T) {
	tests := []struct {
		category string
		width    int
	}{
		{prof.CategoryCache, 10},
		{prof.CategoryInstructions, 9},
		{prof.CategoryMemAccess, 10},
		{prof.CategoryPerformance, 10},
		{prof.CategoryStatistics, 10},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			fx := testutil.NewEProfFixture()
			fx.Common.OptionMask = testutil.OptMPI | testutil.OptPA
			fx.Common.PaCategory = tt.category
			fx.Common.PaEventCount = 8
			fx.Groups[0].Pa = []testutil.PaFixture{
				{ThreadNo: 0, Samples: testutil.Samples(tt.width, 1)},
				{ThreadNo: 1, Samples: testutil.Samples(tt.width, 2)},
			}
			fx.Groups = append(fx.Groups, testutil.GroupFixture{
				Name:     "solver",
				DetailNo: 2,
				Pa:       []testutil.PaFixture{{ThreadNo: 0, Samples: testutil.Samples(tt.width, 3)}},
			})

			p, err := Decode(fx.Encode(binary.BigEndian), Options{Endian: binio.BigEndian})
			require.NoError(t, err)

			require.Len(t, p.Events.Groups, 2)
			for _, g := range p.Events.Groups {
				require.NotNil(t, g.Hardware)
				require.NotNil(t, g.Mpi)
				assert.Equal(t, int(g.Hardware.ThreadCount), len(g.Hardware.PerThread))
				for _, table := range g.Hardware.PerThread {
					assert.Len(t, table.Samples, tt.width)
				}
			}
			assert.Empty(t, p.Events.Groups[1].Mpi.Functions)
			assert.Equal(t, testutil.Samples(tt.width, 2), p.Events.Groups[0].Hardware.PerThread[1].Samples)
		})
	}
}

func TestDecode_UnknownCategory(t *testing.T) {
	fx := testutil.NewEProfFixture()
	fx.Common.OptionMask = testutil.OptPA
	fx.Common.PaCategory = "cache"
	fx.Groups[0].Pa = []testutil.PaFixture{{ThreadNo: 0, Samples: testutil.Samples(10, 0)}}

	p, err := Decode(fx.Encode(binary.LittleEndian), Options{})
	require.Error(t, err)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, prof.ErrUnknownCategory)

	var ce *prof.CategoryError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "cache", ce.Name)
}

func TestDecode_InvalidMagic(t *testing.T) {
	fx := testutil.NewEProfFixture()
	fx.Tag = "DPRF"

	p, err := Decode(fx.Encode(binary.LittleEndian), Options{})
	assert.Nil(t, p)
	assert.ErrorIs(t, err, prof.ErrInvalidMagic)
}

func TestDecode_UnsupportedVersion(t *testing.T) {
	fx := testutil.NewEProfFixture()
	fx.Version = 0x0401

	_, err := Decode(fx.Encode(binary.LittleEndian), Options{})
	require.Error(t, err)
	var ve *prof.VersionError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, int16(0x0401), ve.Found)
	assert.Equal(t, int16(0x0402), ve.Supported)
}

func TestDecode_Truncated(t *testing.T) {
	fx := testutil.NewEProfFixture()
	fx.Common.OptionMask = testutil.OptMPI | testutil.OptPA
	fx.Common.PaCategory = prof.CategoryInstructions
	fx.Groups[0].Pa = []testutil.PaFixture{{ThreadNo: 0, Samples: testutil.Samples(9, 0)}}
	data := fx.Encode(binary.LittleEndian)

	_, err := Decode(data, Options{})
	require.NoError(t, err)

	for n := 1; n <= len(data); n++ {
		p, err := Decode(data[:len(data)-n], Options{})
		require.Error(t, err, "dropped %d bytes", n)
		assert.ErrorIs(t, err, binio.ErrTruncated, "dropped %d bytes", n)
		assert.Nil(t, p)
	}
}

func TestDecode_NegativeGroupCount(t *testing.T) {
	fx := testutil.NewEProfFixture()
	fx.Groups = nil
	data := fx.Encode(binary.LittleEndian)
	// Overwrite the trailing zero group count with -1.
	copy(data[len(data)-4:], []byte{0xFF, 0xFF, 0xFF, 0xFF})

	_, err := Decode(data, Options{})
	assert.ErrorIs(t, err, binio.ErrInvalidLength)
}

func TestDecode_AutoEndian(t *testing.T) {
	fx := testutil.NewEProfFixture()

	p, err := Decode(fx.Encode(binary.BigEndian), Options{Endian: binio.EndianAuto})
	require.NoError(t, err)
	assert.Equal(t, binio.BigEndian, p.Endian)
	assert.Equal(t, int32(4), p.Common.ProcessCount)

	p, err = Decode(fx.Encode(binary.LittleEndian), Options{Endian: binio.EndianAuto})
	require.NoError(t, err)
	assert.Equal(t, binio.LittleEndian, p.Endian)
}

func TestDecode_Charset(t *testing.T) {
	cs, err := binio.LookupCharset("shift_jis")
	require.NoError(t, err)

	fx := testutil.NewEProfFixture()
	// "計測" in Shift_JIS.
	fx.Groups[0].Name = string([]byte{0x8c, 0x76, 0x91, 0xaa})

	p, err := Decode(fx.Encode(binary.LittleEndian), Options{Charset: cs})
	require.NoError(t, err)
	assert.Equal(t, "計測", p.Events.Groups[0].Name)
}

func TestDecode_DoesNotAliasInput(t *testing.T) {
	fx := testutil.NewEProfFixture()
	data := fx.Encode(binary.LittleEndian)

	p, err := Decode(data, Options{})
	require.NoError(t, err)
	for i := range data {
		data[i] = 0
	}
	assert.Equal(t, "main", p.Events.Groups[0].Name)
	assert.Equal(t, "EPRF", p.Magic.Tag)
}
