package prof

// Measurement option bits of CommonInfo.MeasureOption.
const (
	OptCom           uint32 = 0x00000001
	OptPA            uint32 = 0x00000002
	OptSampling      uint32 = 0x00000004
	OptRealTime      uint32 = 0x00000008
	OptPARange       uint32 = 0x00000010
	OptPAEvent       uint32 = 0x00000020
	OptCallGraph     uint32 = 0x00000040
	OptMPIElaps      uint32 = 0x00000080
	OptSampRange     uint32 = 0x00000100
	OptUserFunc      uint32 = 0x00000200
	OptSampRangeCost uint32 = 0x00000400
	OptStCom         uint32 = 0x00000800
	OptSleep         uint32 = 0x00001000

	// OptMPI is the name EProf files use for the communication bit.
	OptMPI = OptCom
)

// Execution kind bits of CommonInfo.ExecKindMask. A zero mask means unknown.
const (
	ExecSerial  uint16 = 0x0001
	ExecMPI     uint16 = 0x0002
	ExecXPF     uint16 = 0x0004
	ExecFull    uint16 = 0x0008
	ExecLimited uint16 = 0x0010
	ExecAuto    uint16 = 0x0020
	ExecOMP     uint16 = 0x0040
)

// Options is the measurement option mask decoded into named flags.
type Options struct {
	Com           bool `json:"com"`
	PA            bool `json:"pa"`
	Sampling      bool `json:"sampling"`
	RealTime      bool `json:"realtime"`
	PARange       bool `json:"pa_range"`
	PAEvent       bool `json:"pa_event"`
	CallGraph     bool `json:"callgraph"`
	MPIElaps      bool `json:"mpi_elaps"`
	SampRange     bool `json:"samp_range"`
	UserFunc      bool `json:"userfunc"`
	SampRangeCost bool `json:"samp_range_cost"`
	StCom         bool `json:"st_com"`
	Sleep         bool `json:"sleep"`
}

// DecodeOptions splits mask into Options.
func DecodeOptions(mask uint32) Options {
	return Options{
		Com:           mask&OptCom != 0,
		PA:            mask&OptPA != 0,
		Sampling:      mask&OptSampling != 0,
		RealTime:      mask&OptRealTime != 0,
		PARange:       mask&OptPARange != 0,
		PAEvent:       mask&OptPAEvent != 0,
		CallGraph:     mask&OptCallGraph != 0,
		MPIElaps:      mask&OptMPIElaps != 0,
		SampRange:     mask&OptSampRange != 0,
		UserFunc:      mask&OptUserFunc != 0,
		SampRangeCost: mask&OptSampRangeCost != 0,
		StCom:         mask&OptStCom != 0,
		Sleep:         mask&OptSleep != 0,
	}
}

// MPI reports whether MPI statistics were collected.
func (o Options) MPI() bool {
	return o.Com
}

// ExecKind is the execution kind mask decoded into named flags.
type ExecKind struct {
	Serial  bool `json:"serial"`
	MPI     bool `json:"mpi"`
	XPF     bool `json:"xpf"`
	Full    bool `json:"full"`
	Limited bool `json:"limited"`
	Auto    bool `json:"auto"`
	OMP     bool `json:"omp"`
	Unknown bool `json:"unknown"`
}

// DecodeExecKind splits mask into ExecKind.
func DecodeExecKind(mask uint16) ExecKind {
	return ExecKind{
		Serial:  mask&ExecSerial != 0,
		MPI:     mask&ExecMPI != 0,
		XPF:     mask&ExecXPF != 0,
		Full:    mask&ExecFull != 0,
		Limited: mask&ExecLimited != 0,
		Auto:    mask&ExecAuto != 0,
		OMP:     mask&ExecOMP != 0,
		Unknown: mask == 0,
	}
}

// Hybrid reports an MPI run whose processes are also thread-parallel.
func (e ExecKind) Hybrid() bool {
	return e.MPI && (e.OMP || e.Auto)
}

// String names the execution style.
func (e ExecKind) String() string {
	switch {
	case e.Unknown:
		return "unknown"
	case e.Hybrid():
		return "hybrid"
	case e.MPI:
		return "mpi"
	case e.XPF:
		return "xpf"
	case e.OMP, e.Auto:
		return "thread-parallel"
	case e.Serial:
		return "serial"
	default:
		return "other"
	}
}
