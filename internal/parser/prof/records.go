package prof

import (
	"slices"

	"github.com/hpcprof/internal/parser/binio"
)

// mpiFunctionSize is the encoded size of one MpiFunction.
const mpiFunctionSize = 4 + 4 + 4 + 4 + 8 + 4*4

// Message size buckets of MpiFunction.Buckets.
const (
	BucketLT4K = iota
	Bucket4KTo64K
	Bucket64KTo1024K
	BucketGE1024K
)

// MpiFunction is the statistics of one MPI routine.
type MpiFunction struct {
	Index        int32    `json:"index"`
	CallCount    int32    `json:"call_count"`
	ElapsedTime  float32  `json:"elapsed_time"`
	WaitTime     float32  `json:"wait_time"`
	MessageBytes uint64   `json:"message_bytes"`
	Buckets      [4]int32 `json:"buckets"`
}

// MpiInfo is a count-prefixed list of MpiFunction.
type MpiInfo struct {
	Count     int32         `json:"count"`
	Functions []MpiFunction `json:"functions"`
}

// Validate checks that Count matches the decoded functions.
func (m *MpiInfo) Validate() error {
	if int(m.Count) != len(m.Functions) {
		return CountMismatch("mpi functions", int(m.Count), len(m.Functions))
	}
	return nil
}

// Clone returns a deep copy of m.
func (m *MpiInfo) Clone() *MpiInfo {
	if m == nil {
		return nil
	}
	cp := *m
	cp.Functions = slices.Clone(m.Functions)
	return &cp
}

// ReadMpiInfo decodes an MpiInfo sub-record.
func ReadMpiInfo(r *binio.FieldReader) (*MpiInfo, error) {
	n := r.Count("mpi function count", mpiFunctionSize)
	if err := r.Err(); err != nil {
		return nil, err
	}
	info := &MpiInfo{Count: int32(n), Functions: make([]MpiFunction, n)}
	for i := range info.Functions {
		f := &info.Functions[i]
		f.Index = r.Int32("mpi index")
		f.CallCount = r.Int32("mpi call_count")
		f.ElapsedTime = r.Float32("mpi elapsed_time")
		f.WaitTime = r.Float32("mpi wait_time")
		f.MessageBytes = r.Uint64("mpi message_length")
		for b := range f.Buckets {
			f.Buckets[b] = r.Int32("mpi message bucket")
		}
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return info, nil
}

// HardwarePaTable is the PA samples of one thread.
type HardwarePaTable struct {
	ThreadNumber int32     `json:"thread_number"`
	Samples      []float64 `json:"samples"`
}

// Clone returns a copy of t with its own samples.
func (t HardwarePaTable) Clone() HardwarePaTable {
	t.Samples = slices.Clone(t.Samples)
	return t
}

// ReadHardwarePaTable decodes one table of width samples.
func ReadHardwarePaTable(r *binio.FieldReader, width int) HardwarePaTable {
	return HardwarePaTable{
		ThreadNumber: r.Int32("pa thread number"),
		Samples:      r.Float64s("pa samples", width),
	}
}

// HardwareMonitorInfo is a count-prefixed list of HardwarePaTable.
type HardwareMonitorInfo struct {
	ThreadCount int32             `json:"thread_count"`
	PerThread   []HardwarePaTable `json:"per_thread"`
}

// Validate checks that ThreadCount matches the decoded tables.
func (h *HardwareMonitorInfo) Validate() error {
	if int(h.ThreadCount) != len(h.PerThread) {
		return CountMismatch("pa tables", int(h.ThreadCount), len(h.PerThread))
	}
	return nil
}

// Clone returns a deep copy of h.
func (h *HardwareMonitorInfo) Clone() *HardwareMonitorInfo {
	if h == nil {
		return nil
	}
	cp := *h
	if h.PerThread != nil {
		cp.PerThread = make([]HardwarePaTable, len(h.PerThread))
		for i, t := range h.PerThread {
			cp.PerThread[i] = t.Clone()
		}
	}
	return &cp
}

// ReadHardwareMonitorInfo decodes a HardwareMonitorInfo sub-record whose
// tables are sized by category.
func ReadHardwareMonitorInfo(r *binio.FieldReader, category string) (*HardwareMonitorInfo, error) {
	width, err := SampleWidth(category)
	if err != nil {
		return nil, err
	}
	n := r.Count("pa thread count", 4+width*8)
	if err := r.Err(); err != nil {
		return nil, err
	}
	info := &HardwareMonitorInfo{ThreadCount: int32(n), PerThread: make([]HardwarePaTable, n)}
	for i := range info.PerThread {
		info.PerThread[i] = ReadHardwarePaTable(r, width)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return info, nil
}
