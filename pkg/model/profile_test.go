package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoType_String(t *testing.T) {
	tests := []struct {
		infoType InfoType
		expected string
	}{
		{InfoTypeNone, "none"},
		{InfoTypeCostProcedure, "cost_procedure"},
		{InfoTypeCostLoop, "cost_loop"},
		{InfoTypeCostLine, "cost_line"},
		{InfoTypeCallGraph, "callgraph"},
		{InfoTypeEventCounterCache, "eventcounter_cache"},
		{InfoTypeEventCounterStatistics, "eventcounter_statistics"},
		{InfoType(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.infoType.String())
		})
	}
}

func TestInfoType_IsEventCounter(t *testing.T) {
	assert.False(t, InfoTypeNone.IsEventCounter())
	assert.False(t, InfoTypeCallGraph.IsEventCounter())
	for it := InfoTypeEventCounterCache; it <= InfoTypeEventCounterStatistics; it++ {
		assert.True(t, it.IsEventCounter(), it.String())
	}
	assert.False(t, InfoType(10).IsEventCounter())
}

func TestProfileSummary_HasPA(t *testing.T) {
	s := &ProfileSummary{}
	assert.False(t, s.HasPA())
	s.PaEventCategory = "Cache"
	assert.True(t, s.HasPA())
}

func TestProfilerDprofData_JSON(t *testing.T) {
	row := ProfilerDprofData{InfoType: InfoTypeCostProcedure, Symbol: "main", Samples: 30, Ratio: 0.3}

	data, err := json.Marshal(row)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "main", fields["symbol"])
	assert.NotContains(t, fields, "caller")
	assert.NotContains(t, fields, "file")
	assert.Contains(t, fields, "thread_no")
}
