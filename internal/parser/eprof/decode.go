package eprof

import (
	"fmt"

	"github.com/hpcprof/internal/parser/binio"
	"github.com/hpcprof/internal/parser/prof"
)

// minGroupSize is the encoded size of a group with an empty name and no
// optional records.
const minGroupSize = 4 + 4 + 4 + 3*4

// Options configures Decode.
type Options struct {
	// Endian is the byte order of the file. EndianAuto probes the version
	// field, little endian first.
	Endian binio.Endian
	// Charset decodes string fields. The zero value passes bytes through.
	Charset binio.Charset
}

// Decode decodes a complete EProf image. The returned Profile shares no
// memory with data. On failure no partial profile is returned.
func Decode(data []byte, opts Options) (*Profile, error) {
	endian := opts.Endian
	if endian == binio.EndianAuto {
		endian = prof.ProbeEndian(data, prof.EProf)
	}
	c := binio.NewCursor(data, endian, binio.WithCharset(opts.Charset))

	magic, err := prof.ReadMagicKey(c, prof.EProf)
	if err != nil {
		return nil, err
	}

	r := binio.NewFieldReader(c)
	common, err := prof.ReadCommonInfo(r, prof.EProf.Layout)
	if err != nil {
		return nil, err
	}

	events, err := ReadEventCounterInfo(r, common)
	if err != nil {
		return nil, err
	}
	if err := events.Validate(); err != nil {
		return nil, err
	}

	return &Profile{
		Endian: endian,
		Magic:  magic,
		Common: common,
		Events: events,
	}, nil
}

// ReadEventCounterInfo decodes the group list. Which optional records each
// group carries is decided once from common.
func ReadEventCounterInfo(r *binio.FieldReader, common *prof.CommonInfo) (*EventCounterInfo, error) {
	category, hasPA := common.PaEventCategory()
	hasMPI := common.Options.MPI()

	n := r.Count("event count", minGroupSize)
	if err := r.Err(); err != nil {
		return nil, err
	}

	info := &EventCounterInfo{DeclaredCount: int32(n), Groups: make([]EventCounterGroup, n)}
	for i := range info.Groups {
		g := &info.Groups[i]
		g.Name = r.PrefixedString("group name")
		g.DetailNumber = r.Int32("detail number")
		g.Base = readBaseInfo(r)
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("group %d: %w", i, err)
		}

		if hasMPI {
			mpi, err := prof.ReadMpiInfo(r)
			if err != nil {
				return nil, fmt.Errorf("group %d %q: %w", i, g.Name, err)
			}
			g.Mpi = mpi
		}
		if hasPA {
			hw, err := prof.ReadHardwareMonitorInfo(r, category)
			if err != nil {
				return nil, fmt.Errorf("group %d %q: %w", i, g.Name, err)
			}
			g.Hardware = hw
		}
	}
	return info, nil
}

func readBaseInfo(r *binio.FieldReader) BaseInfo {
	return BaseInfo{
		CallCount:   r.Int32("call count"),
		ElapsedTime: r.Float32("elapsed time"),
		UserTime:    r.Float32("user time"),
		SystemTime:  r.Float32("system time"),
	}
}
