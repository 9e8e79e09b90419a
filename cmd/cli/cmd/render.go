package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hpcprof/internal/service"
	"github.com/hpcprof/pkg/model"
	"github.com/hpcprof/pkg/writer"
)

const (
	outputText = "text"
	outputJSON = "json"
)

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON:
		return nil
	default:
		return fmt.Errorf("invalid output format: %q (valid: text, json)", format)
	}
}

// writeJSON prints v as indented JSON.
func writeJSON[T any](w io.Writer, v T) error {
	return writer.NewPrettyJSONWriter[T]().Write(v, w)
}

func printSummary(w io.Writer, s *model.ProfileSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if s.ID != 0 {
		fmt.Fprintf(tw, "ID:\t%d\n", s.ID)
		fmt.Fprintf(tw, "Source:\t%s\n", s.SourceKey)
	}
	fmt.Fprintf(tw, "File:\t%s\n", s.ProfFile)
	fmt.Fprintf(tw, "Type:\t%s\n", s.FileType)
	fmt.Fprintf(tw, "Version:\t0x%04x\n", uint16(s.Version))
	fmt.Fprintf(tw, "Endian:\t%s\n", s.Endian)
	fmt.Fprintf(tw, "Measured:\t%s\n", s.MeasureTime)
	fmt.Fprintf(tw, "Processes:\t%d\n", s.ProcessCount)
	fmt.Fprintf(tw, "Threads:\t%d\n", s.ThreadCount)
	fmt.Fprintf(tw, "CPU clock:\t%d MHz\n", s.CPUClock)
	fmt.Fprintf(tw, "Options:\t0x%08x\n", s.OptionMask)
	fmt.Fprintf(tw, "Exec kind:\t%s\n", s.ExecKind)
	if s.HasPA() {
		fmt.Fprintf(tw, "PA category:\t%s\n", s.PaEventCategory)
	}
	if s.GroupCount > 0 {
		fmt.Fprintf(tw, "Groups:\t%d\n", s.GroupCount)
	}
	if s.SymbolCount > 0 {
		fmt.Fprintf(tw, "Symbols:\t%d\n", s.SymbolCount)
		fmt.Fprintf(tw, "Samples:\t%d\n", s.TotalSamples)
	}
	return tw.Flush()
}

func printReport(w io.Writer, r *service.Report) error {
	if err := printSummary(w, r.Summary); err != nil {
		return err
	}

	if len(r.Events) > 0 {
		fmt.Fprintln(w, "\nEvent counters")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "SYMBOL\tCALLS\tELAPSED\tUSER\tSYSTEM\tTHREADS")
		for _, e := range r.Events {
			fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.4f\t%d\n",
				e.Symbol, e.CallCount, e.ElapsedTime, e.UserTime, e.SystemTime, len(e.Hardware))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	tables := []struct {
		title string
		rows  []model.ProfilerDprofData
	}{
		{"Procedures", r.Procedures},
		{"Loops", r.Loops},
		{"Lines", r.Lines},
	}
	for _, table := range tables {
		if len(table.rows) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", table.title)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "THREAD\tSYMBOL\tFILE\tLINES\tSAMPLES\tRATIO")
		for _, c := range table.rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d-%d\t%d\t%.2f%%\n",
				c.ThreadNo, c.Symbol, c.File, c.StartLine, c.EndLine, c.Samples, c.Ratio*100)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(r.CallGraph) > 0 {
		fmt.Fprintln(w, "\nCall graph")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "CALLER\tCALLEE\tCALLS\tSAMPLES\tRATIO")
		for _, c := range r.CallGraph {
			caller := c.Caller
			if caller == "" {
				caller = "<root>"
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.2f%%\n",
				caller, c.Symbol, c.CallCount, c.Samples, c.Ratio*100)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func printSummaries(w io.Writer, summaries []*model.ProfileSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tVERSION\tMEASURED\tPROCS\tSOURCE\tIMPORTED")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%d\t%s\t0x%04x\t%s\t%d\t%s\t%s\n",
			s.ID, s.FileType, uint16(s.Version), s.MeasureTime, s.ProcessCount,
			s.SourceKey, s.ImportedAt.Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}
