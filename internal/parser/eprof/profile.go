// Package eprof decodes EProf event counter profiles.
//
// An EProf file is the common header and configuration block followed by a
// count-prefixed list of event counter groups:
//
//	int32 group count
//	group: int32 len + name, int32 detail number, BaseInfo,
//	       MpiInfo             iff the MPI option bit is set
//	       HardwareMonitorInfo iff the PA option bit is set
package eprof

import (
	"github.com/hpcprof/internal/parser/binio"
	"github.com/hpcprof/internal/parser/prof"
)

// BaseInfo is the timing record of a group.
type BaseInfo struct {
	CallCount   int32   `json:"call_count"`
	ElapsedTime float32 `json:"elapsed_time"`
	UserTime    float32 `json:"user_time"`
	SystemTime  float32 `json:"system_time"`
}

// EventCounterGroup is one named measurement range.
type EventCounterGroup struct {
	Name         string   `json:"name"`
	DetailNumber int32    `json:"detail_number"`
	Base         BaseInfo `json:"base"`

	// Mpi is non-nil iff the file has the MPI option bit.
	Mpi *prof.MpiInfo `json:"mpi,omitempty"`
	// Hardware is non-nil iff the file has the PA option bit.
	Hardware *prof.HardwareMonitorInfo `json:"hardware,omitempty"`
}

// EventCounterInfo is the payload of an EProf file.
type EventCounterInfo struct {
	DeclaredCount int32               `json:"declared_count"`
	Groups        []EventCounterGroup `json:"groups"`
}

// Clone returns a deep copy of e.
func (e *EventCounterInfo) Clone() *EventCounterInfo {
	if e == nil {
		return nil
	}
	cp := *e
	if e.Groups != nil {
		cp.Groups = make([]EventCounterGroup, len(e.Groups))
		for i, g := range e.Groups {
			g.Mpi = g.Mpi.Clone()
			g.Hardware = g.Hardware.Clone()
			cp.Groups[i] = g
		}
	}
	return &cp
}

// Validate checks every declared count against the decoded records.
func (e *EventCounterInfo) Validate() error {
	if int(e.DeclaredCount) != len(e.Groups) {
		return prof.CountMismatch("event groups", int(e.DeclaredCount), len(e.Groups))
	}
	for i := range e.Groups {
		g := &e.Groups[i]
		if g.Mpi != nil {
			if err := g.Mpi.Validate(); err != nil {
				return err
			}
		}
		if g.Hardware != nil {
			if err := g.Hardware.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Profile is a fully decoded EProf file.
type Profile struct {
	Endian binio.Endian      `json:"endian"`
	Magic  prof.MagicKey     `json:"magic"`
	Common *prof.CommonInfo  `json:"common"`
	Events *EventCounterInfo `json:"events"`
}

// Clone returns a deep copy of p.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Common = p.Common.Clone()
	cp.Events = p.Events.Clone()
	return &cp
}
