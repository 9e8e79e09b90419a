package eprof

import (
	"github.com/hpcprof/internal/parser/binio"
	"github.com/hpcprof/internal/parser/prof"
	"github.com/hpcprof/pkg/model"
)

// Reader loads EProf files.
type Reader struct {
	*prof.Reader[Profile]
}

// NewReader creates a Reader. A nil opts uses prof.DefaultReaderOptions.
func NewReader(opts *prof.ReaderOptions) *Reader {
	decode := func(data []byte, endian binio.Endian, charset binio.Charset) (*Profile, error) {
		return Decode(data, Options{Endian: endian, Charset: charset})
	}
	return &Reader{Reader: prof.NewReader[Profile](prof.EProf, decode, (*Profile).Clone, opts)}
}

// Profile returns a copy of the decoded profile. The caller owns it.
func (r *Reader) Profile() (*Profile, error) {
	return r.Result()
}

// MagicKey returns the decoded header.
func (r *Reader) MagicKey() (prof.MagicKey, error) {
	p, err := r.Loaded()
	if err != nil {
		return prof.MagicKey{}, err
	}
	return p.Magic, nil
}

// CommonInfo returns a copy of the decoded configuration block.
func (r *Reader) CommonInfo() (*prof.CommonInfo, error) {
	p, err := r.Loaded()
	if err != nil {
		return nil, err
	}
	return p.Common.Clone(), nil
}

// EventCounters returns a copy of the decoded payload.
func (r *Reader) EventCounters() (*EventCounterInfo, error) {
	p, err := r.Loaded()
	if err != nil {
		return nil, err
	}
	return p.Events.Clone(), nil
}

// PaEventName returns the PA event category, or "" when the file has none.
func (r *Reader) PaEventName() (string, error) {
	p, err := r.Loaded()
	if err != nil {
		return "", err
	}
	category, _ := p.Common.PaEventCategory()
	return category, nil
}

// EventCounterInfo returns one presentation row per group.
func (r *Reader) EventCounterInfo() ([]model.ProfilerEprofData, error) {
	p, err := r.Loaded()
	if err != nil {
		return nil, err
	}
	return p.EventCounterRows(), nil
}

// CostInfoLine is not carried by EProf files and is always empty.
func (r *Reader) CostInfoLine() ([]model.ProfilerDprofData, error) {
	return []model.ProfilerDprofData{}, nil
}

// CostInfoLoop is not carried by EProf files and is always empty.
func (r *Reader) CostInfoLoop() ([]model.ProfilerDprofData, error) {
	return []model.ProfilerDprofData{}, nil
}

// CostInfoProcedure is not carried by EProf files and is always empty.
func (r *Reader) CostInfoProcedure() ([]model.ProfilerDprofData, error) {
	return []model.ProfilerDprofData{}, nil
}

// CallGraphInfo is not carried by EProf files and is always empty.
func (r *Reader) CallGraphInfo() ([]model.ProfilerDprofData, error) {
	return []model.ProfilerDprofData{}, nil
}

// Summary condenses the loaded profile.
func (r *Reader) Summary() (*model.ProfileSummary, error) {
	p, err := r.Loaded()
	if err != nil {
		return nil, err
	}
	s := p.Summary()
	s.ProfFile = r.ProfFile()
	return s, nil
}
