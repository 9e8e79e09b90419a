// Package dprof decodes DProf sampling cost profiles.
//
// After the common header and configuration block a DProf file carries:
//
//	files     int32 count, count × (int32 len + path)
//	symbols   int32 count, count × {name, file, start line, end line, parent}
//	threads   int32 count, count × ThreadInfo
//	mpi       MpiInfo                      iff the MPIELAPS option bit is set
//	callgraph int32 count, count × CallEdge iff the CALLGRAPH option bit is set
//
// Each ThreadInfo holds procedure, loop and line cost lists and, iff the PA
// option bit is set, one HardwarePaTable.
package dprof

import (
	"slices"

	"github.com/hpcprof/internal/parser/binio"
	"github.com/hpcprof/internal/parser/prof"
)

// NoIndex marks an absent parent symbol or the root caller.
const NoIndex int32 = -1

// Symbol is a procedure or loop of the measured program.
type Symbol struct {
	Name      string `json:"name"`
	File      int32  `json:"file"`
	StartLine int32  `json:"start_line"`
	EndLine   int32  `json:"end_line"`
	Parent    int32  `json:"parent"`
}

// ProcedureCost is the samples attributed to a procedure.
type ProcedureCost struct {
	Symbol  int32 `json:"symbol"`
	Samples int32 `json:"samples"`
}

// LoopCost is the samples attributed to a loop.
type LoopCost struct {
	Symbol    int32 `json:"symbol"`
	StartLine int32 `json:"start_line"`
	EndLine   int32 `json:"end_line"`
	NestLevel int32 `json:"nest_level"`
	Samples   int32 `json:"samples"`
}

// LineCost is the samples attributed to a source line.
type LineCost struct {
	Symbol  int32 `json:"symbol"`
	Line    int32 `json:"line"`
	Samples int32 `json:"samples"`
}

// ThreadInfo is the cost breakdown of one thread.
type ThreadInfo struct {
	ThreadNumber int32           `json:"thread_number"`
	Procedures   []ProcedureCost `json:"procedures"`
	Loops        []LoopCost      `json:"loops"`
	Lines        []LineCost      `json:"lines"`

	// Hardware is non-nil iff the file has the PA option bit.
	Hardware *prof.HardwarePaTable `json:"hardware,omitempty"`
}

// Clone returns a deep copy of t.
func (t ThreadInfo) Clone() ThreadInfo {
	t.Procedures = slices.Clone(t.Procedures)
	t.Loops = slices.Clone(t.Loops)
	t.Lines = slices.Clone(t.Lines)
	if t.Hardware != nil {
		h := t.Hardware.Clone()
		t.Hardware = &h
	}
	return t
}

// TotalSamples sums the procedure samples of the thread.
func (t *ThreadInfo) TotalSamples() int64 {
	var total int64
	for _, p := range t.Procedures {
		total += int64(p.Samples)
	}
	return total
}

// CallEdge is one caller to callee arc of the call graph.
type CallEdge struct {
	Caller       int32 `json:"caller"`
	Callee       int32 `json:"callee"`
	CallCount    int32 `json:"call_count"`
	SelfSamples  int32 `json:"self_samples"`
	TotalSamples int32 `json:"total_samples"`
}

// Payload is the body of a DProf file.
type Payload struct {
	Files   []string     `json:"files"`
	Symbols []Symbol     `json:"symbols"`
	Threads []ThreadInfo `json:"threads"`

	// Mpi is non-nil iff the file has the MPIELAPS option bit.
	Mpi *prof.MpiInfo `json:"mpi,omitempty"`
	// CallGraph is non-nil iff the file has the CALLGRAPH option bit.
	CallGraph []CallEdge `json:"callgraph,omitempty"`
}

// Clone returns a deep copy of p.
func (p *Payload) Clone() *Payload {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Files = slices.Clone(p.Files)
	cp.Symbols = slices.Clone(p.Symbols)
	cp.CallGraph = slices.Clone(p.CallGraph)
	cp.Mpi = p.Mpi.Clone()
	if p.Threads != nil {
		cp.Threads = make([]ThreadInfo, len(p.Threads))
		for i, t := range p.Threads {
			cp.Threads[i] = t.Clone()
		}
	}
	return &cp
}

// TotalSamples sums the procedure samples of every thread.
func (p *Payload) TotalSamples() int64 {
	var total int64
	for i := range p.Threads {
		total += p.Threads[i].TotalSamples()
	}
	return total
}

// Profile is a fully decoded DProf file.
type Profile struct {
	Endian  binio.Endian     `json:"endian"`
	Magic   prof.MagicKey    `json:"magic"`
	Common  *prof.CommonInfo `json:"common"`
	Payload *Payload         `json:"payload"`
}

// Clone returns a deep copy of p.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Common = p.Common.Clone()
	cp.Payload = p.Payload.Clone()
	return &cp
}
