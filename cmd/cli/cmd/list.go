package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listLimit  int
	listOutput string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported profiles, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateOutput(listOutput); err != nil {
			return err
		}

		svc, err := newService()
		if err != nil {
			return err
		}
		if err := svc.Initialize(cmd.Context()); err != nil {
			return fmt.Errorf("failed to initialize service: %w", err)
		}
		defer svc.Stop()

		summaries, err := svc.List(cmd.Context(), listLimit)
		if err != nil {
			return err
		}
		if listOutput == outputJSON {
			return writeJSON(cmd.OutOrStdout(), summaries)
		}
		return printSummaries(cmd.OutOrStdout(), summaries)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 50, "Maximum number of profiles (0 for all)")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", outputText, "Output format: text or json")
}
