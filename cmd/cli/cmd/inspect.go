package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hpcprof/internal/service"
	"github.com/hpcprof/pkg/writer"
)

var (
	// Inspect command flags
	inspectEndian  string
	inspectCharset string
	inspectOutput  string
	inspectRows    bool
	inspectOutFile string
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Decode a local profile file",
	Long: `Decode a local EProf or DProf file and print its header.

The format is chosen from the magic tag at the start of the file. With --rows
every presentation table is printed as well. With --out the JSON report is
written to a file instead, compressed when the name ends in .gz or .zst.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectEndian, "endian", "e", "", "Byte order: little, big or auto (default from config)")
	inspectCmd.Flags().StringVar(&inspectCharset, "charset", "", "Charset of string fields, e.g. shift_jis (default from config)")
	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", outputText, "Output format: text or json")
	inspectCmd.Flags().BoolVar(&inspectRows, "rows", false, "Print every presentation table")
	inspectCmd.Flags().StringVar(&inspectOutFile, "out", "", "Write the JSON report to this file")
}

func runInspect(cmd *cobra.Command, args []string) error {
	if err := validateOutput(inspectOutput); err != nil {
		return err
	}
	if inspectCharset != "" {
		cfg.Decode.Charset = inspectCharset
	}

	svc, err := newService()
	if err != nil {
		return err
	}
	endian, err := endianFlag(inspectEndian, svc)
	if err != nil {
		return err
	}

	path := args[0]
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if !inspectRows && inspectOutFile == "" {
		summary, err := svc.Inspect(ctx, path, endian)
		if err != nil {
			return err
		}
		if inspectOutput == outputJSON {
			return writeJSON(out, summary)
		}
		return printSummary(out, summary)
	}

	report, err := svc.Report(ctx, path, endian)
	if err != nil {
		return err
	}

	if inspectOutFile != "" {
		result, err := writer.NewJSONWriter[*service.Report]().WriteToFile(report, inspectOutFile)
		if err != nil {
			return err
		}
		logger.Info("Wrote %s (%s, %d bytes)", inspectOutFile, result.Compression, result.CompressedSize)
		return nil
	}

	if inspectOutput == outputJSON {
		return writeJSON(out, report)
	}
	if err := printReport(out, report); err != nil {
		return fmt.Errorf("failed to print report: %w", err)
	}
	return nil
}
