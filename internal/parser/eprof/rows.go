package eprof

import (
	"github.com/hpcprof/internal/parser/prof"
	"github.com/hpcprof/pkg/model"
)

// InfoType returns the presentation table selected by the PA category, or
// model.InfoTypeNone when the file has no PA samples.
func (p *Profile) InfoType() model.InfoType {
	category, ok := p.Common.PaEventCategory()
	if !ok {
		return model.InfoTypeNone
	}
	it, err := prof.CategoryInfoType(category)
	if err != nil {
		return model.InfoTypeNone
	}
	return it
}

// EventCounterRows maps every group to a presentation row.
func (p *Profile) EventCounterRows() []model.ProfilerEprofData {
	infoType := p.InfoType()
	rows := make([]model.ProfilerEprofData, 0, len(p.Events.Groups))
	for _, g := range p.Events.Groups {
		row := model.ProfilerEprofData{
			InfoType:    infoType,
			Symbol:      g.Name,
			CallCount:   g.Base.CallCount,
			ElapsedTime: g.Base.ElapsedTime,
			UserTime:    g.Base.UserTime,
			SystemTime:  g.Base.SystemTime,
		}
		if g.Hardware != nil {
			row.Hardware = make([]model.ThreadSamples, len(g.Hardware.PerThread))
			for i, table := range g.Hardware.PerThread {
				row.Hardware[i] = model.ThreadSamples{
					ThreadNo: table.ThreadNumber,
					Samples:  append([]float64(nil), table.Samples...),
				}
			}
		}
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
		GroupCount:   len(p.Events.Groups),
	}
	if category, ok := p.Common.PaEventCategory(); ok {
		s.PaEventCategory = category
	}
	return s
}
