package dprof

import "github.com/hpcprof/pkg/model"

func ratio(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total)
}

func (p *Payload) symbolRow(infoType model.InfoType, idx int32) model.ProfilerDprofData {
	s := p.Symbols[idx]
	return model.ProfilerDprofData{
		InfoType:  infoType,
		Symbol:    s.Name,
		File:      p.Files[s.File],
		StartLine: s.StartLine,
		EndLine:   s.EndLine,
	}
}

// ProcedureRows returns one row per procedure cost of every thread.
func (p *Payload) ProcedureRows() []model.ProfilerDprofData {
	rows := []model.ProfilerDprofData{}
	for _, t := range p.Threads {
		total := t.TotalSamples()
		for _, c := range t.Procedures {
			row := p.symbolRow(model.InfoTypeCostProcedure, c.Symbol)
			row.ThreadNo = t.ThreadNumber
			row.Samples = int64(c.Samples)
			row.Ratio = ratio(row.Samples, total)
			rows = append(rows, row)
		}
	}
	return rows
}

// LoopRows returns one row per loop cost of every thread.
func (p *Payload) LoopRows() []model.ProfilerDprofData {
	rows := []model.ProfilerDprofData{}
	for _, t := range p.Threads {
		total := t.TotalSamples()
		for _, c := range t.Loops {
			row := p.symbolRow(model.InfoTypeCostLoop, c.Symbol)
			row.StartLine = c.StartLine
			row.EndLine = c.EndLine
			row.NestLevel = c.NestLevel
			row.ThreadNo = t.ThreadNumber
			row.Samples = int64(c.Samples)
			row.Ratio = ratio(row.Samples, total)
			rows = append(rows, row)
		}
	}
	return rows
}

// LineRows returns one row per line cost of every thread.
func (p *Payload) LineRows() []model.ProfilerDprofData {
	rows := []model.ProfilerDprofData{}
	for _, t := range p.Threads {
		total := t.TotalSamples()
		for _, c := range t.Lines {
			row := p.symbolRow(model.InfoTypeCostLine, c.Symbol)
			row.StartLine = c.Line
			row.EndLine = c.Line
			row.ThreadNo = t.ThreadNumber
			row.Samples = int64(c.Samples)
			row.Ratio = ratio(row.Samples, total)
			rows = append(rows, row)
		}
	}
	return rows
}

// CallGraphRows returns one row per edge. The ratio is the callee's total
// samples over the samples of the whole file; a root edge has no Caller.
func (p *Payload) CallGraphRows() []model.ProfilerDprofData {
	rows := []model.ProfilerDprofData{}
	total := p.TotalSamples()
	for _, e := range p.CallGraph {
		row := p.symbolRow(model.InfoTypeCallGraph, e.Callee)
		if e.Caller != NoIndex {
			row.Caller = p.Symbols[e.Caller].Name
		}
		row.CallCount = e.CallCount
		row.Samples = int64(e.TotalSamples)
		row.Ratio = ratio(row.Samples, total)
		rows = append(rows, row)
	}
	return rows
}

// Summary condenses the profile for listing and persistence.
func (p *Profile) Summary() *model.ProfileSummary {
	s := &model.ProfileSummary{
		FileType:     p.Magic.Tag,
		Version:      p.Magic.Version,
		AddMode:      p.Magic.AddMode,
		Endian:       p.Endian.String(),
		ProcessCount: p.Common.ProcessCount,
		ThreadCount:  p.Common.ThreadCount,
		CPUClock:     p.Common.CPUClock,
		MeasureTime:  p.Common.MeasureTime,
		OptionMask:   p.Common.MeasureOption,
		ExecKindMask: p.Common.ExecKindMask,
		ExecKind:     p.Common.ExecKind.String(),
		SymbolCount:  len(p.Payload.Symbols),
		TotalSamples: p.Payload.TotalSamples(),
	}
	if category, ok := p.Common.PaEventCategory(); ok {
		s.PaEventCategory = category
	}
	return s
}
