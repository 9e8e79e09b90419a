package prof

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcprof/internal/parser/binio"
	"github.com/hpcprof/internal/testutil"
)

func TestReadMpiInfo(t *testing.T) {
	e := testutil.NewEncoder(binary.BigEndian).I32(2)
	for i := int32(0); i < 2; i++ {
		e.I32(i).I32(10 + i).F32(1.25).F32(0.5).U64(4096).I32(1).I32(2).I32(3).I32(4)
	}
	r := binio.NewFieldReader(binio.NewCursor(e.Bytes(), binio.BigEndian))

	info, err := ReadMpiInfo(r)
	require.NoError(t, err)
	assert.Equal(t, int32(2), info.Count)
	require.Len(t, info.Functions, 2)
	assert.NoError(t, info.Validate())
	assert.Equal(t, MpiFunction{
		Index:        1,
		CallCount:    11,
		ElapsedTime:  1.25,
		WaitTime:     0.5,
		MessageBytes: 4096,
		Buckets:      [4]int32{1, 2, 3, 4},
	}, info.Functions[1])
	assert.Equal(t, int32(4), info.Functions[0].Buckets[BucketGE1024K])
	assert.Equal(t, 0, r.Cursor().Remaining())
}

func TestReadMpiInfo_Truncated(t *testing.T) {
	e := testutil.NewEncoder(binary.LittleEndian).I32(1).I32(0).I32(1).F32(1).F32(1).U64(1).I32(0).I32(0).I32(0)
	_, err := ReadMpiInfo(binio.NewFieldReader(binio.NewCursor(e.Bytes(), binio.LittleEndian)))
	assert.ErrorIs(t, err, binio.ErrTruncated)
}

func TestReadHardwareMonitorInfo(t *testing.T) {
	tests := []struct {
		category string
		width    int
	}{
		{CategoryCache, 10},
		{CategoryInstructions, 9},
		{CategoryMemAccess, 10},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			e := testutil.NewEncoder(binary.LittleEndian).I32(2)
			for thread := int32(0); thread < 2; thread++ {
				e.I32(thread)
				for _, s := range testutil.Samples(tt.width, float64(thread)) {
					e.F64(s)
				}
			}
			r := binio.NewFieldReader(binio.NewCursor(e.Bytes(), binio.LittleEndian))

			info, err := ReadHardwareMonitorInfo(r, tt.category)
			require.NoError(t, err)
			assert.NoError(t, info.Validate())
			require.Len(t, info.PerThread, 2)
			for i, table := range info.PerThread {
				assert.Equal(t, int32(i), table.ThreadNumber)
				assert.Len(t, table.Samples, tt.width)
				assert.Equal(t, testutil.Samples(tt.width, float64(i)), table.Samples)
			}
			assert.Equal(t, 0, r.Cursor().Remaining())
		})
	}
}

func TestReadHardwareMonitorInfo_UnknownCategory(t *testing.T) {
	e := testutil.NewEncoder(binary.LittleEndian).I32(0)
	_, err := ReadHardwareMonitorInfo(binio.NewFieldReader(binio.NewCursor(e.Bytes(), binio.LittleEndian)), "Branch")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestValidate_CountMismatch(t *testing.T) {
	m := &MpiInfo{Count: 2, Functions: make([]MpiFunction, 1)}
	assert.ErrorIs(t, m.Validate(), ErrCountMismatch)

	h := &HardwareMonitorInfo{ThreadCount: 0, PerThread: make([]HardwarePaTable, 1)}
	assert.ErrorIs(t, h.Validate(), ErrCountMismatch)
}

func TestRecords_Clone(t *testing.T) {
	mpi := &MpiInfo{Count: 1, Functions: []MpiFunction{{Index: 1, CallCount: 2, Buckets: [4]int32{1, 2, 3, 4}}}}
	mcp := mpi.Clone()
	assert.Equal(t, mpi, mcp)
	mcp.Functions[0].Buckets[0] = 0
	assert.Equal(t, int32(1), mpi.Functions[0].Buckets[0])

	hw := &HardwareMonitorInfo{ThreadCount: 1, PerThread: []HardwarePaTable{{ThreadNumber: 3, Samples: []float64{1, 2}}}}
	hcp := hw.Clone()
	assert.Equal(t, hw, hcp)
	hcp.PerThread[0].Samples[1] = 9
	assert.Equal(t, []float64{1, 2}, hw.PerThread[0].Samples)

	empty := &HardwareMonitorInfo{PerThread: []HardwarePaTable{}}
	assert.Equal(t, empty, empty.Clone())

	var nilMpi *MpiInfo
	var nilHw *HardwareMonitorInfo
	assert.Nil(t, nilMpi.Clone())
	assert.Nil(t, nilHw.Clone())
}
