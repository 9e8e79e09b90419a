package testutil

import "encoding/binary"

// CommonFixture describes the common block of a synthetic file.
type CommonFixture struct {
	ProcessCount int32
	OptionMask   uint32
	ExecKind     uint16
	ThreadCount  int16
	CPUClock     int32
	MeasureTime  string

	// Written only by DProfFixture.
	RecommendedMemory int32
	SamplingInterval  float32

	LogicalDimension int32
	LogicalShape     [3]int32
	LogicalCoord     [3]int32
	PhysicalShape    [6]int32
	PhysicalCoord    [6]int32

	// Written only when OptionMask has OptPA.
	PaCPU        int16
	PaEventCount int16
	PaVersion    int16
	PaReserved   int16
	PaCategory   string
}

func (c CommonFixture) encode(e *Encoder, memoryHints bool) {
	e.I32(c.ProcessCount).U32(c.OptionMask).U16(c.ExecKind).I16(c.ThreadCount).I32(c.CPUClock)
	e.Fixed(c.MeasureTime, 32)
	if memoryHints {
		e.I32(c.RecommendedMemory).F32(c.SamplingInterval)
	}
	e.I32(c.LogicalDimension)
	for _, v := range c.LogicalShape {
		e.I32(v)
	}
	for _, v := range c.LogicalCoord {
		e.I32(v)
	}
	for _, v := range c.PhysicalShape {
		e.I32(v)
	}
	for _, v := range c.PhysicalCoord {
		e.I32(v)
	}
	if c.OptionMask&OptPA != 0 {
		e.I16(c.PaCPU).I16(c.PaEventCount).I16(c.PaVersion).I16(c.PaReserved)
		e.Prefixed(c.PaCategory)
	}
}

// MpiFixture is one MPI function record.
type MpiFixture struct {
	Index        int32
	CallCount    int32
	Elapsed      float32
	Wait         float32
	MessageBytes uint64
	Buckets      [4]int32
}

func encodeMpi(e *Encoder, fns []MpiFixture) {
	e.I32(int32(len(fns)))
	for _, f := range fns {
		e.I32(f.Index).I32(f.CallCount).F32(f.Elapsed).F32(f.Wait).U64(f.MessageBytes)
		for _, b := range f.Buckets {
			e.I32(b)
		}
	}
}

// PaFixture is one per-thread hardware table.
type PaFixture struct {
	ThreadNo int32
	Samples  []float64
}

func (p PaFixture) encode(e *Encoder) {
	e.I32(p.ThreadNo)
	for _, s := range p.Samples {
		e.F64(s)
	}
}

// GroupFixture is one EProf event counter group.
type GroupFixture struct {
	Name      string
	DetailNo  int32
	CallCount int32
	Elapsed   float32
	User      float32
	System    float32
	Mpi       []MpiFixture
	Pa        []PaFixture
}

// EProfFixture describes a whole EProf file.
type EProfFixture struct {
	Tag     string
	AddMode int16
	Version int16
	Common  CommonFixture
	Groups  []GroupFixture
}

// NewEProfFixture returns a valid EProf file with one MPI-only group named
// "main".
func NewEProfFixture() EProfFixture {
	return EProfFixture{
		Tag:     "EPRF",
		Version: 0x0402,
		Common: CommonFixture{
			ProcessCount: 4,
			OptionMask:   OptMPI,
			ThreadCount:  1,
			CPUClock:     2000,
			MeasureTime:  "2024/01/02 03:04:05",
		},
		Groups: []GroupFixture{{
			Name:      "main",
			CallCount: 10,
			Elapsed:   1.5,
			User:      1.2,
			System:    0.3,
			Mpi: []MpiFixture{{
				Index:        3,
				CallCount:    7,
				Elapsed:      0.25,
				Wait:         0.125,
				MessageBytes: 1 << 20,
				Buckets:      [4]int32{1, 2, 3, 1},
			}},
		}},
	}
}

// Encode serializes f in order. Optional sections follow OptionMask.
func (f EProfFixture) Encode(order binary.ByteOrder) []byte {
	e := NewEncoder(order)
	e.Header(f.Tag, f.AddMode, f.Version)
	f.Common.encode(e, false)
	e.I32(int32(len(f.Groups)))
	for _, g := range f.Groups {
		e.Prefixed(g.Name).I32(g.DetailNo)
		e.I32(g.CallCount).F32(g.Elapsed).F32(g.User).F32(g.System)
		if f.Common.OptionMask&OptMPI != 0 {
			encodeMpi(e, g.Mpi)
		}
		if f.Common.OptionMask&OptPA != 0 {
			e.I32(int32(len(g.Pa)))
			for _, p := range g.Pa {
				p.encode(e)
			}
		}
	}
	return e.Bytes()
}

// SymbolFixture is one DProf symbol.
type SymbolFixture struct {
	Name      string
	File      int32
	StartLine int32
	EndLine   int32
	Parent    int32
}

// ProcFixture is one procedure cost.
type ProcFixture struct {
	Symbol  int32
	Samples int32
}

// LoopFixture is one loop cost.
type LoopFixture struct {
	Symbol    int32
	StartLine int32
	EndLine   int32
	Nest      int32
	Samples   int32
}

// LineFixture is one line cost.
type LineFixture struct {
	Symbol  int32
	Line    int32
	Samples int32
}

// ThreadFixture is the costs of one thread.
type ThreadFixture struct {
	ThreadNo int32
	Procs    []ProcFixture
	Loops    []LoopFixture
	Lines    []LineFixture
	Pa       PaFixture
}

// EdgeFixture is one call-graph edge.
type EdgeFixture struct {
	Caller       int32
	Callee       int32
	CallCount    int32
	SelfSamples  int32
	TotalSamples int32
}

// DProfFixture describes a whole DProf file.
type DProfFixture struct {
	Tag     string
	AddMode int16
	Version int16
	Common  CommonFixture
	Files   []string
	Symbols []SymbolFixture
	Threads []ThreadFixture
	Mpi     []MpiFixture
	Edges   []EdgeFixture
}

// NewDProfFixture returns a valid DProf file with call-graph data: one
// source file, a procedure "main" containing a loop, and a callee "solve".
func NewDProfFixture() DProfFixture {
	return DProfFixture{
		Tag:     "DPRF",
		Version: 0x0412,
		Common: CommonFixture{
			ProcessCount:      1,
			OptionMask:        OptSampling | OptCallGraph,
			ExecKind:          0x1,
			ThreadCount:       1,
			CPUClock:          2200,
			MeasureTime:       "2024/05/06 07:08:09",
			RecommendedMemory: 512,
			SamplingInterval:  0.01,
		},
		Files: []string{"src/main.f90"},
		Symbols: []SymbolFixture{
			{Name: "main", File: 0, StartLine: 1, EndLine: 40, Parent: -1},
			{Name: "main_loop_1", File: 0, StartLine: 10, EndLine: 20, Parent: 0},
			{Name: "solve", File: 0, StartLine: 42, EndLine: 80, Parent: -1},
		},
		Threads: []ThreadFixture{{
			ThreadNo: 0,
			Procs:    []ProcFixture{{Symbol: 0, Samples: 30}, {Symbol: 2, Samples: 70}},
			Loops:    []LoopFixture{{Symbol: 1, StartLine: 10, EndLine: 20, Nest: 1, Samples: 25}},
			Lines:    []LineFixture{{Symbol: 0, Line: 12, Samples: 20}, {Symbol: 2, Line: 50, Samples: 60}},
		}},
		Edges: []EdgeFixture{
			{Caller: -1, Callee: 0, CallCount: 1, SelfSamples: 30, TotalSamples: 100},
			{Caller: 0, Callee: 2, CallCount: 5, SelfSamples: 70, TotalSamples: 70},
		},
	}
}

// Encode serializes f in order. Optional sections follow OptionMask.
func (f DProfFixture) Encode(order binary.ByteOrder) []byte {
	e := NewEncoder(order)
	e.Header(f.Tag, f.AddMode, f.Version)
	f.Common.encode(e, true)

	e.I32(int32(len(f.Files)))
	for _, p := range f.Files {
		e.Prefixed(p)
	}
	e.I32(int32(len(f.Symbols)))
	for _, s := range f.Symbols {
		e.Prefixed(s.Name).I32(s.File).I32(s.StartLine).I32(s.EndLine).I32(s.Parent)
	}
	e.I32(int32(len(f.Threads)))
	for _, t := range f.Threads {
		e.I32(t.ThreadNo)
		e.I32(int32(len(t.Procs)))
		for _, p := range t.Procs {
			e.I32(p.Symbol).I32(p.Samples)
		}
		e.I32(int32(len(t.Loops)))
		for _, l := range t.Loops {
			e.I32(l.Symbol).I32(l.StartLine).I32(l.EndLine).I32(l.Nest).I32(l.Samples)
		}
		e.I32(int32(len(t.Lines)))
		for _, l := range t.Lines {
			e.I32(l.Symbol).I32(l.Line).I32(l.Samples)
		}
		if f.Common.OptionMask&OptPA != 0 {
			t.Pa.encode(e)
		}
	}
	if f.Common.OptionMask&OptMPIElaps != 0 {
		encodeMpi(e, f.Mpi)
	}
	if f.Common.OptionMask&OptCallGraph != 0 {
		e.I32(int32(len(f.Edges)))
		for _, g := range f.Edges {
			e.I32(g.Caller).I32(g.Callee).I32(g.CallCount).I32(g.SelfSamples).I32(g.TotalSamples)
		}
	}
	return e.Bytes()
}
