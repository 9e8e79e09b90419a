package prof

import "github.com/hpcprof/internal/parser/binio"

// MeasureTimeLength is the size of the measurement time text field.
const MeasureTimeLength = 32

// Coord3 is a point or extent on the logical X/Y/Z axes.
type Coord3 struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
	Z int32 `json:"z"`
}

// Coord6 is a point or extent on the physical X/Y/Z/A/B/C axes.
type Coord6 struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
	Z int32 `json:"z"`
	A int32 `json:"a"`
	B int32 `json:"b"`
	C int32 `json:"c"`
}

// LogicalTopology is the process grid the run was launched with.
type LogicalTopology struct {
	Dimension  int32  `json:"dimension"`
	Shape      Coord3 `json:"shape"`
	Coordinate Coord3 `json:"coordinate"`
}

// PhysicalTopology is the machine placement of the run.
type PhysicalTopology struct {
	Shape      Coord6 `json:"shape"`
	Coordinate Coord6 `json:"coordinate"`
}

// PaDiscriminator identifies the hardware counter set that was measured.
type PaDiscriminator struct {
	CPUID      int16 `json:"cpu_id"`
	EventCount int16 `json:"event_count"`
	PaVersion  int16 `json:"pa_version"`
	Reserved   int16 `json:"reserved"`
}

// PerfCounterConfig is the PA sub-block of the common block.
type PerfCounterConfig struct {
	Discriminator PaDiscriminator `json:"discriminator"`
	Category      string          `json:"category"`
}

// MemoryHints holds the fields only DProf files carry.
type MemoryHints struct {
	RecommendedMemory int32   `json:"recommended_memory"`
	SamplingInterval  float32 `json:"sampling_interval"`
}

// CommonInfo is the run configuration block shared by both formats.
type CommonInfo struct {
	ProcessCount  int32            `json:"process_count"`
	MeasureOption uint32           `json:"measure_option"`
	ExecKindMask  uint16           `json:"exec_kind_mask"`
	ThreadCount   int16            `json:"thread_count"`
	CPUClock      int32            `json:"cpu_clock"`
	MeasureTime   string           `json:"measure_time"`
	Memory        *MemoryHints     `json:"memory,omitempty"`
	Logical       LogicalTopology  `json:"logical"`
	Physical      PhysicalTopology `json:"physical"`

	// PerfCounter is non-nil iff the PA option bit is set.
	PerfCounter *PerfCounterConfig `json:"perf_counter,omitempty"`

	Options  Options  `json:"options"`
	ExecKind ExecKind `json:"exec_kind"`
}

// PaEventCategory returns the PA category name and whether the file has one.
func (ci *CommonInfo) PaEventCategory() (string, bool) {
	if ci.PerfCounter == nil {
		return "", false
	}
	return ci.PerfCounter.Category, true
}

// Clone returns a deep copy of ci.
func (ci *CommonInfo) Clone() *CommonInfo {
	if ci == nil {
		return nil
	}
	cp := *ci
	if ci.Memory != nil {
		m := *ci.Memory
		cp.Memory = &m
	}
	if ci.PerfCounter != nil {
		pc := *ci.PerfCounter
		cp.PerfCounter = &pc
	}
	return &cp
}

// ReadCommonInfo decodes the common block. The PA sub-block is read only when
// the option mask just decoded has the PA bit.
func ReadCommonInfo(r *binio.FieldReader, layout CommonLayout) (*CommonInfo, error) {
	ci := &CommonInfo{}
	ci.ProcessCount = r.Int32("process_count")
	ci.MeasureOption = r.Uint32("measure_option")
	ci.ExecKindMask = r.Uint16("exec_kind")
	ci.ThreadCount = r.Int16("thread_count")
	ci.CPUClock = r.Int32("cpu_clock")
	ci.MeasureTime = r.FixedString("measure_time", MeasureTimeLength)

	if layout.MemoryHints {
		ci.Memory = &MemoryHints{
			RecommendedMemory: r.Int32("recommended_memory"),
			SamplingInterval:  r.Float32("sampling_interval"),
		}
	}

	ci.Logical.Dimension = r.Int32("logical dimension")
	ci.Logical.Shape = readCoord3(r, "logical shape")
	ci.Logical.Coordinate = readCoord3(r, "logical coordinate")
	ci.Physical.Shape = readCoord6(r, "physical shape")
	ci.Physical.Coordinate = readCoord6(r, "physical coordinate")

	if err := r.Err(); err != nil {
		return nil, err
	}

	ci.Options = DecodeOptions(ci.MeasureOption)
	ci.ExecKind = DecodeExecKind(ci.ExecKindMask)

	if ci.Options.PA {
		pc := &PerfCounterConfig{}
		pc.Discriminator.CPUID = r.Int16("pa cpu_id")
		pc.Discriminator.EventCount = r.Int16("pa event_count")
		pc.Discriminator.PaVersion = r.Int16("pa version")
		pc.Discriminator.Reserved = r.Int16("pa reserved")
		pc.Category = r.PrefixedString("pa event category")
		if err := r.Err(); err != nil {
			return nil, err
		}
		ci.PerfCounter = pc
	}
	return ci, nil
}

func readCoord3(r *binio.FieldReader, field string) Coord3 {
	return Coord3{
		X: r.Int32(field + " x"),
		Y: r.Int32(field + " y"),
		Z: r.Int32(field + " z"),
	}
}

func readCoord6(r *binio.FieldReader, field string) Coord6 {
	return Coord6{
		X: r.Int32(field + " x"),
		Y: r.Int32(field + " y"),
		Z: r.Int32(field + " z"),
		A: r.Int32(field + " a"),
		B: r.Int32(field + " b"),
		C: r.Int32(field + " c"),
	}
}
