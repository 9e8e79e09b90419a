package service

import (
	"github.com/hpcprof/internal/parser"
	"github.com/hpcprof/internal/repository"
	"github.com/hpcprof/pkg/model"
)

// Report is a decoded profile with every presentation table.
type Report struct {
	Summary    *model.ProfileSummary     `json:"summary"`
	Events     []model.ProfilerEprofData `json:"event_counters"`
	Procedures []model.ProfilerDprofData `json:"procedures"`
	Loops      []model.ProfilerDprofData `json:"loops"`
	Lines      []model.ProfilerDprofData `json:"lines"`
	CallGraph  []model.ProfilerDprofData `json:"callgraph"`
}

// Costs returns the cost and call-graph rows in table order.
func (r *Report) Costs() []model.ProfilerDprofData {
	n := len(r.Procedures) + len(r.Loops) + len(r.Lines) + len(r.CallGraph)
	costs := make([]model.ProfilerDprofData, 0, n)
	costs = append(costs, r.Procedures...)
	costs = append(costs, r.Loops...)
	costs = append(costs, r.Lines...)
	costs = append(costs, r.CallGraph...)
	return costs
}

// recordSet converts the report into what the repository stores.
func (r *Report) recordSet() *repository.ProfileRecordSet {
	return &repository.ProfileRecordSet{
		Summary: r.Summary,
		Events:  r.Events,
		Costs:   r.Costs(),
	}
}

// buildReport collects every table of a loaded reader.
func buildReport(reader parser.ProfilerReader) (*Report, error) {
	summary, err := reader.Summary()
	if err != nil {
		return nil, err
	}
	report := &Report{Summary: summary}

	if report.Events, err = reader.EventCounterInfo(); err != nil {
		return nil, err
	}
	if report.Procedures, err = reader.CostInfoProcedure(); err != nil {
		return nil, err
	}
	if report.Loops, err = reader.CostInfoLoop(); err != nil {
		return nil, err
	}
	if report.Lines, err = reader.CostInfoLine(); err != nil {
		return nil, err
	}
	if report.CallGraph, err = reader.CallGraphInfo(); err != nil {
		return nil, err
	}
	return report, nil
}
