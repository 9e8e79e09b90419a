package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	showOutput string
	showDelete bool
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print an imported profile with its tables",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateOutput(showOutput); err != nil {
			return err
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid profile id %q: %w", args[0], err)
		}

		svc, err := newService()
		if err != nil {
			return err
		}
		if err := svc.Initialize(cmd.Context()); err != nil {
			return fmt.Errorf("failed to initialize service: %w", err)
		}
		defer svc.Stop()

		if showDelete {
			if err := svc.Delete(cmd.Context(), id); err != nil {
				return err
			}
			logger.Info("Deleted profile %d", id)
			return nil
		}

		report, err := svc.Show(cmd.Context(), id)
		if err != nil {
			return err
		}
		if showOutput == outputJSON {
			return writeJSON(cmd.OutOrStdout(), report)
		}
		return printReport(cmd.OutOrStdout(), report)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showOutput, "output", "o", outputText, "Output format: text or json")
	showCmd.Flags().BoolVar(&showDelete, "delete", false, "Delete the profile instead of printing it")
}
