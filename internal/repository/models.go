package repository

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hpcprof/pkg/model"
)

// ProfileRecord represents the hpcprof_profiles table.
type ProfileRecord struct {
	ID              int64     `gorm:"column:id;primaryKey;autoIncrement"`
	SourceKey       string    `gorm:"column:source_key;type:varchar(512);index"`
	ProfFile        string    `gorm:"column:prof_file;type:varchar(512)"`
	FileType        string    `gorm:"column:file_type;type:varchar(8);index"`
	Version         int16     `gorm:"column:version"`
	AddMode         int16     `gorm:"column:add_mode"`
	Endian          string    `gorm:"column:endian;type:varchar(8)"`
	ProcessCount    int32     `gorm:"column:process_count"`
	ThreadCount     int16     `gorm:"column:thread_count"`
	CPUClock        int32     `gorm:"column:cpu_clock"`
	MeasureTime     string    `gorm:"column:measure_time;type:varchar(64)"`
	OptionMask      int64     `gorm:"column:option_mask"`
	ExecKindMask    int32     `gorm:"column:exec_kind_mask"`
	ExecKind        string    `gorm:"column:exec_kind;type:varchar(32)"`
	PaEventCategory string    `gorm:"column:pa_event_category;type:varchar(64)"`
	GroupCount      int       `gorm:"column:group_count"`
	SymbolCount     int       `gorm:"column:symbol_count"`
	TotalSamples    int64     `gorm:"column:total_samples"`
	ImportedAt      time.Time `gorm:"column:imported_at;autoCreateTime"`
}

// TableName returns the table name for ProfileRecord.
func (ProfileRecord) TableName() string {
	return "hpcprof_profiles"
}

// ToModel converts ProfileRecord to model.ProfileSummary.
func (r *ProfileRecord) ToModel() *model.ProfileSummary {
	return &model.ProfileSummary{
		ID:              r.ID,
		SourceKey:       r.SourceKey,
		ProfFile:        r.ProfFile,
		FileType:        r.FileType,
		Version:         r.Version,
		AddMode:         r.AddMode,
		Endian:          r.Endian,
		ProcessCount:    r.ProcessCount,
		ThreadCount:     r.ThreadCount,
		CPUClock:        r.CPUClock,
		MeasureTime:     r.MeasureTime,
		OptionMask:      uint32(r.OptionMask),
		ExecKindMask:    uint16(r.ExecKindMask),
		ExecKind:        r.ExecKind,
		PaEventCategory: r.PaEventCategory,
		GroupCount:      r.GroupCount,
		SymbolCount:     r.SymbolCount,
		TotalSamples:    r.TotalSamples,
		ImportedAt:      r.ImportedAt,
	}
}

// newProfileRecord converts a summary for insertion. The masks are widened
// so every dialect stores them in a signed column without overflow.
func newProfileRecord(s *model.ProfileSummary) *ProfileRecord {
	return &ProfileRecord{
		SourceKey:       s.SourceKey,
		ProfFile:        s.ProfFile,
		FileType:        s.FileType,
		Version:         s.Version,
		AddMode:         s.AddMode,
		Endian:          s.Endian,
		ProcessCount:    s.ProcessCount,
		ThreadCount:     s.ThreadCount,
		CPUClock:        s.CPUClock,
		MeasureTime:     s.MeasureTime,
		OptionMask:      int64(s.OptionMask),
		ExecKindMask:    int32(s.ExecKindMask),
		ExecKind:        s.ExecKind,
		PaEventCategory: s.PaEventCategory,
		GroupCount:      s.GroupCount,
		SymbolCount:     s.SymbolCount,
		TotalSamples:    s.TotalSamples,
	}
}

// EventCounterRecord represents the hpcprof_event_counters table, one row
// per EProf event counter group.
type EventCounterRecord struct {
	ID          int64          `gorm:"column:id;primaryKey;autoIncrement"`
	ProfileID   int64          `gorm:"column:profile_id;index"`
	Seq         int            `gorm:"column:seq"`
	InfoType    model.InfoType `gorm:"column:info_type"`
	Symbol      string         `gorm:"column:symbol;type:varchar(512)"`
	CallCount   int32          `gorm:"column:call_count"`
	ElapsedTime float32        `gorm:"column:elapsed_time"`
	UserTime    float32        `gorm:"column:user_time"`
	SystemTime  float32        `gorm:"column:system_time"`
	Hardware    JSONField      `gorm:"column:hardware;type:text"`
}

// TableName returns the table name for EventCounterRecord.
func (EventCounterRecord) TableName() string {
	return "hpcprof_event_counters"
}

// ToModel converts EventCounterRecord to model.ProfilerEprofData.
func (r *EventCounterRecord) ToModel() (model.ProfilerEprofData, error) {
	row := model.ProfilerEprofData{
		InfoType:    r.InfoType,
		Symbol:      r.Symbol,
		CallCount:   r.CallCount,
		ElapsedTime: r.ElapsedTime,
		UserTime:    r.UserTime,
		SystemTime:  r.SystemTime,
	}
	if r.Hardware != nil {
		if err := json.Unmarshal(r.Hardware, &row.Hardware); err != nil {
			return row, fmt.Errorf("failed to unmarshal hardware samples: %w", err)
		}
	}
	return row, nil
}

func newEventCounterRecord(profileID int64, seq int, row model.ProfilerEprofData) (*EventCounterRecord, error) {
	rec := &EventCounterRecord{
		ProfileID:   profileID,
		Seq:         seq,
		InfoType:    row.InfoType,
		Symbol:      row.Symbol,
		CallCount:   row.CallCount,
		ElapsedTime: row.ElapsedTime,
		UserTime:    row.UserTime,
		SystemTime:  row.SystemTime,
	}
	if len(row.Hardware) > 0 {
		data, err := json.Marshal(row.Hardware)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal hardware samples: %w", err)
		}
		rec.Hardware = data
	}
	return rec, nil
}

// CostRecord represents the hpcprof_costs table: DProf procedure, loop and
// line costs plus call-graph edges, told apart by InfoType.
type CostRecord struct {
	ID        int64          `gorm:"column:id;primaryKey;autoIncrement"`
	ProfileID int64          `gorm:"column:profile_id;index:idx_cost_profile_type"`
	InfoType  model.InfoType `gorm:"column:info_type;index:idx_cost_profile_type"`
	Seq       int            `gorm:"column:seq"`
	Symbol    string         `gorm:"column:symbol;type:varchar(512)"`
	Caller    string         `gorm:"column:caller;type:varchar(512)"`
	File      string         `gorm:"column:file;type:varchar(1024)"`
	StartLine int32          `gorm:"column:start_line"`
	EndLine   int32          `gorm:"column:end_line"`
	NestLevel int32          `gorm:"column:nest_level"`
	ThreadNo  int32          `gorm:"column:thread_no"`
	CallCount int32          `gorm:"column:call_count"`
	Samples   int64          `gorm:"column:samples"`
	Ratio     float64        `gorm:"column:ratio"`
}

// TableName returns the table name for CostRecord.
func (CostRecord) TableName() string {
	return "hpcprof_costs"
}

// ToModel converts CostRecord to model.ProfilerDprofData.
func (r *CostRecord) ToModel() model.ProfilerDprofData {
	return model.ProfilerDprofData{
		InfoType:  r.InfoType,
		Symbol:    r.Symbol,
		Caller:    r.Caller,
		File:      r.File,
		StartLine: r.StartLine,
		EndLine:   r.EndLine,
		NestLevel: r.NestLevel,
		ThreadNo:  r.ThreadNo,
		CallCount: r.CallCount,
		Samples:   r.Samples,
		Ratio:     r.Ratio,
	}
}

func newCostRecord(profileID int64, seq int, row model.ProfilerDprofData) *CostRecord {
	return &CostRecord{
		ProfileID: profileID,
		InfoType:  row.InfoType,
		Seq:       seq,
		Symbol:    row.Symbol,
		Caller:    row.Caller,
		File:      row.File,
		StartLine: row.StartLine,
		EndLine:   row.EndLine,
		NestLevel: row.NestLevel,
		ThreadNo:  row.ThreadNo,
		CallCount: row.CallCount,
		Samples:   row.Samples,
		Ratio:     row.Ratio,
	}
}

// JSONField is a raw JSON column.
type JSONField []byte

// Value implements driver.Valuer interface.
func (j JSONField) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return string(j), nil
}

// Scan implements sql.Scanner interface.
func (j *JSONField) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = []byte(v)
	default:
		return errors.New("unsupported type for JSONField")
	}
	return nil
}
