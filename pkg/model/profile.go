// Package model defines the core data structures used throughout the application.
package model

import "time"

// InfoType identifies which presentation table a profiler data row belongs to.
type InfoType int

const (
	InfoTypeNone                     InfoType = 0 // EProf file without PA samples
	InfoTypeCostProcedure            InfoType = 1 // DProf cost per procedure
	InfoTypeCostLoop                 InfoType = 2 // DProf cost per loop
	InfoTypeCostLine                 InfoType = 3 // DProf cost per line
	InfoTypeCallGraph                InfoType = 4 // DProf call-graph edge
	InfoTypeEventCounterCache        InfoType = 5 // EProf PA category Cache
	InfoTypeEventCounterInstructions InfoType = 6 // EProf PA category Instructions
	InfoTypeEventCounterMemAccess    InfoType = 7 // EProf PA category MEM_access
	InfoTypeEventCounterPerformance  InfoType = 8 // EProf PA category Performance
	InfoTypeEventCounterStatistics   InfoType = 9 // EProf PA category Statistics
)

// String returns the string representation of InfoType.
func (t InfoType) String() string {
	switch t {
	case InfoTypeNone:
		return "none"
	case InfoTypeCostProcedure:
		return "cost_procedure"
	case InfoTypeCostLoop:
		return "cost_loop"
	case InfoTypeCostLine:
		return "cost_line"
	case InfoTypeCallGraph:
		return "callgraph"
	case InfoTypeEventCounterCache:
		return "eventcounter_cache"
	case InfoTypeEventCounterInstructions:
		return "eventcounter_instructions"
	case InfoTypeEventCounterMemAccess:
		return "eventcounter_mem_access"
	case InfoTypeEventCounterPerformance:
		return "eventcounter_performance"
	case InfoTypeEventCounterStatistics:
		return "eventcounter_statistics"
	default:
		return "unknown"
	}
}

// IsEventCounter reports whether t is one of the EProf hardware tables.
func (t InfoType) IsEventCounter() bool {
	return t >= InfoTypeEventCounterCache && t <= InfoTypeEventCounterStatistics
}

// ThreadSamples holds the hardware counter samples of one thread.
type ThreadSamples struct {
	ThreadNo int32     `json:"thread_no"`
	Samples  []float64 `json:"samples"`
}

// ProfilerEprofData is one event counter group as shown to the user.
type ProfilerEprofData struct {
	InfoType    InfoType        `json:"info_type"`
	Symbol      string          `json:"symbol"`
	CallCount   int32           `json:"call_count"`
	ElapsedTime float32         `json:"elapsed_time"`
	UserTime    float32         `json:"user_time"`
	SystemTime  float32         `json:"system_time"`
	Hardware    []ThreadSamples `json:"hardware,omitempty"`
}

// ProfilerDprofData is one cost or call-graph row as shown to the user.
type ProfilerDprofData struct {
	InfoType  InfoType `json:"info_type"`
	Symbol    string   `json:"symbol"`
	Caller    string   `json:"caller,omitempty"`
	File      string   `json:"file,omitempty"`
	StartLine int32    `json:"start_line,omitempty"`
	EndLine   int32    `json:"end_line,omitempty"`
	NestLevel int32    `json:"nest_level,omitempty"`
	ThreadNo  int32    `json:"thread_no"`
	CallCount int32    `json:"call_count,omitempty"`
	Samples   int64    `json:"samples"`
	Ratio     float64  `json:"ratio"`
}

// ProfileSummary is the decoded header of a profile file, kept after import.
type ProfileSummary struct {
	ID              int64     `json:"id,omitempty"`
	SourceKey       string    `json:"source_key,omitempty"`
	ProfFile        string    `json:"prof_file"`
	FileType        string    `json:"file_type"`
	Version         int16     `json:"version"`
	AddMode         int16     `json:"add_mode"`
	Endian          string    `json:"endian"`
	ProcessCount    int32     `json:"process_count"`
	ThreadCount     int16     `json:"thread_count"`
	CPUClock        int32     `json:"cpu_clock"`
	MeasureTime     string    `json:"measure_time"`
	OptionMask      uint32    `json:"option_mask"`
	ExecKindMask    uint16    `json:"exec_kind_mask"`
	ExecKind        string    `json:"exec_kind"`
	PaEventCategory string    `json:"pa_event_category,omitempty"`
	GroupCount      int       `json:"group_count"`
	SymbolCount     int       `json:"symbol_count"`
	TotalSamples    int64     `json:"total_samples"`
	ImportedAt      time.Time `json:"imported_at,omitempty"`
}

// HasPA reports whether the profile carries hardware counter samples.
func (s *ProfileSummary) HasPA() bool {
	return s.PaEventCategory != ""
}
