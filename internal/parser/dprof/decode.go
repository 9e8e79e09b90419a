package dprof

import (
	"fmt"

	"github.com/hpcprof/internal/parser/binio"
	"github.com/hpcprof/internal/parser/prof"
)

// Minimum encoded sizes, used to reject counts the input cannot hold.
const (
	minFileSize   = 4
	minSymbolSize = 4 + 4*4
	minThreadSize = 4 + 3*4
	procSize      = 2 * 4
	loopSize      = 5 * 4
	lineSize      = 3 * 4
	edgeSize      = 5 * 4
)

// Options configures Decode.
type Options struct {
	// Endian is the byte order of the file. EndianAuto probes the version
	// field, little endian first.
	Endian binio.Endian
	// Charset decodes string fields. The zero value passes bytes through.
	Charset binio.Charset
}

// Decode decodes a complete DProf image. The returned Profile shares no
// memory with data. On failure no partial profile is returned.
func Decode(data []byte, opts Options) (*Profile, error) {
	endian := opts.Endian
	if endian == binio.EndianAuto {
		endian = prof.ProbeEndian(data, prof.DProf)
	}
	c := binio.NewCursor(data, endian, binio.WithCharset(opts.Charset))

	magic, err := prof.ReadMagicKey(c, prof.DProf)
	if err != nil {
		return nil, err
	}

	r := binio.NewFieldReader(c)
	common, err := prof.ReadCommonInfo(r, prof.DProf.Layout)
	if err != nil {
		return nil, err
	}

	payload, err := ReadPayload(r, common)
	if err != nil {
		return nil, err
	}

	return &Profile{
		Endian:  endian,
		Magic:   magic,
		Common:  common,
		Payload: payload,
	}, nil
}

// ReadPayload decodes the DProf body. Optional sections are decided from
// common.
func ReadPayload(r *binio.FieldReader, common *prof.CommonInfo) (*Payload, error) {
	p := &Payload{}

	p.Files = readFiles(r)
	p.Symbols = readSymbols(r)
	if err := r.Err(); err != nil {
		return nil, err
	}
	if err := p.checkSymbols(); err != nil {
		return nil, err
	}

	threads, err := readThreads(r, common)
	if err != nil {
		return nil, err
	}
	p.Threads = threads
	if err := p.checkThreads(); err != nil {
		return nil, err
	}

	if common.Options.MPIElaps {
		mpi, err := prof.ReadMpiInfo(r)
		if err != nil {
			return nil, err
		}
		p.Mpi = mpi
	}

	if common.Options.CallGraph {
		p.CallGraph = readCallGraph(r)
		if err := r.Err(); err != nil {
			return nil, err
		}
		if err := p.checkCallGraph(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func readFiles(r *binio.FieldReader) []string {
	n := r.Count("file count", minFileSize)
	files := make([]string, n)
	for i := range files {
		files[i] = r.PrefixedString("file path")
	}
	return files
}

func readSymbols(r *binio.FieldReader) []Symbol {
	n := r.Count("symbol count", minSymbolSize)
	symbols := make([]Symbol, n)
	for i := range symbols {
		s := &symbols[i]
		s.Name = r.PrefixedString("symbol name")
		s.File = r.Int32("symbol file")
		s.StartLine = r.Int32("symbol start line")
		s.EndLine = r.Int32("symbol end line")
		s.Parent = r.Int32("symbol parent")
	}
	return symbols
}

func readThreads(r *binio.FieldReader, common *prof.CommonInfo) ([]ThreadInfo, error) {
	width := 0
	category, hasPA := common.PaEventCategory()
	if hasPA {
		w, err := prof.SampleWidth(category)
		if err != nil {
			return nil, err
		}
		width = w
	}

	minSize := minThreadSize
	if hasPA {
		minSize += 4 + width*8
	}
	n := r.Count("thread count", minSize)
	threads := make([]ThreadInfo, n)
	for i := range threads {
		t := &threads[i]
		t.ThreadNumber = r.Int32("thread number")

		t.Procedures = make([]ProcedureCost, r.Count("procedure count", procSize))
		for j := range t.Procedures {
			t.Procedures[j] = ProcedureCost{
				Symbol:  r.Int32("procedure symbol"),
				Samples: r.Int32("procedure samples"),
			}
		}

		t.Loops = make([]LoopCost, r.Count("loop count", loopSize))
		for j := range t.Loops {
			t.Loops[j] = LoopCost{
				Symbol:    r.Int32("loop symbol"),
				StartLine: r.Int32("loop start line"),
				EndLine:   r.Int32("loop end line"),
				NestLevel: r.Int32("loop nest level"),
				Samples:   r.Int32("loop samples"),
			}
		}

		t.Lines = make([]LineCost, r.Count("line count", lineSize))
		for j := range t.Lines {
			t.Lines[j] = LineCost{
				Symbol:  r.Int32("line symbol"),
				Line:    r.Int32("line number"),
				Samples: r.Int32("line samples"),
			}
		}

		if hasPA {
			table := prof.ReadHardwarePaTable(r, width)
			t.Hardware = &table
		}
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("thread %d: %w", i, err)
		}
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return threads, nil
}

func readCallGraph(r *binio.FieldReader) []CallEdge {
	edges := make([]CallEdge, r.Count("callgraph edge count", edgeSize))
	for i := range edges {
		edges[i] = CallEdge{
			Caller:       r.Int32("edge caller"),
			Callee:       r.Int32("edge callee"),
			CallCount:    r.Int32("edge call count"),
			SelfSamples:  r.Int32("edge self samples"),
			TotalSamples: r.Int32("edge total samples"),
		}
	}
	return edges
}

func (p *Payload) checkSymbols() error {
	for i, s := range p.Symbols {
		if err := prof.CheckIndex("file", s.File, len(p.Files), false); err != nil {
			return fmt.Errorf("symbol %d %q: %w", i, s.Name, err)
		}
		if err := prof.CheckIndex("parent symbol", s.Parent, len(p.Symbols), true); err != nil {
			return fmt.Errorf("symbol %d %q: %w", i, s.Name, err)
		}
	}
	return nil
}

func (p *Payload) checkThreads() error {
	n := len(p.Symbols)
	for _, t := range p.Threads {
		for _, c := range t.Procedures {
			if err := prof.CheckIndex("procedure symbol", c.Symbol, n, false); err != nil {
				return fmt.Errorf("thread %d: %w", t.ThreadNumber, err)
			}
		}
		for _, c := range t.Loops {
			if err := prof.CheckIndex("loop symbol", c.Symbol, n, false); err != nil {
				return fmt.Errorf("thread %d: %w", t.ThreadNumber, err)
			}
		}
		for _, c := range t.Lines {
			if err := prof.CheckIndex("line symbol", c.Symbol, n, false); err != nil {
				return fmt.Errorf("thread %d: %w", t.ThreadNumber, err)
			}
		}
	}
	return nil
}

func (p *Payload) checkCallGraph() error {
	n := len(p.Symbols)
	for i, e := range p.CallGraph {
		if err := prof.CheckIndex("caller", e.Caller, n, true); err != nil {
			return fmt.Errorf("callgraph edge %d: %w", i, err)
		}
		if err := prof.CheckIndex("callee", e.Callee, n, false); err != nil {
			return fmt.Errorf("callgraph edge %d: %w", i, err)
		}
	}
	return nil
}
