package dprof

import (
	"github.com/hpcprof/internal/parser/binio"
	"github.com/hpcprof/internal/parser/prof"
	"github.com/hpcprof/pkg/model"
)

// Reader loads DProf files.
type Reader struct {
	*prof.Reader[Profile]
}

// NewReader creates a Reader. A nil opts uses prof.DefaultReaderOptions.
func NewReader(opts *prof.ReaderOptions) *Reader {
	decode := func(data []byte, endian binio.Endian, charset binio.Charset) (*Profile, error) {
		return Decode(data, Options{Endian: endian, Charset: charset})
	}
	return &Reader{Reader: prof.NewReader[Profile](prof.DProf, decode, (*Profile).Clone, opts)}
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

// Payload returns a copy of the decoded body.
func (r *Reader) Payload() (*Payload, error) {
	p, err := r.Loaded()
	if err != nil {
		return nil, err
	}
	return p.Payload.Clone(), nil
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

// EventCounterInfo is not carried by DProf files and is always empty.
func (r *Reader) EventCounterInfo() ([]model.ProfilerEprofData, error) {
	return []model.ProfilerEprofData{}, nil
}

// CostInfoLine returns the line costs of every thread.
func (r *Reader) CostInfoLine() ([]model.ProfilerDprofData, error) {
	p, err := r.Loaded()
	if err != nil {
		return nil, err
	}
	return p.Payload.LineRows(), nil
}

// CostInfoLoop returns the loop costs of every thread.
func (r *Reader) CostInfoLoop() ([]model.ProfilerDprofData, error) {
	p, err := r.Loaded()
	if err != nil {
		return nil, err
	}
	return p.Payload.LoopRows(), nil
}

// CostInfoProcedure returns the procedure costs of every thread.
func (r *Reader) CostInfoProcedure() ([]model.ProfilerDprofData, error) {
	p, err := r.Loaded()
	if err != nil {
		return nil, err
	}
	return p.Payload.ProcedureRows(), nil
}

// CallGraphInfo returns the call-graph edges. Files measured without the
// call-graph option yield an empty list.
func (r *Reader) CallGraphInfo() ([]model.ProfilerDprofData, error) {
	p, err := r.Loaded()
	if err != nil {
		return nil, err
	}
	return p.Payload.CallGraphRows(), nil
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
