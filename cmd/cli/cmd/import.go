package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/hpcprof/internal/parser/binio"
	"github.com/hpcprof/internal/service"
	apperrors "github.com/hpcprof/pkg/errors"
)

var (
	// Import command flags
	importEndian  string
	importPrefix  string
	importWorkers int
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import [KEY...]",
	Short: "Import profile files from storage into the database",
	Long: `Fetch profile files from the configured storage, decode them and store
the summary with every presentation table.

Keys are object keys for COS storage or paths relative to local_path for
local storage. Failed files are reported and the remaining ones are still
imported.`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importEndian, "endian", "e", "", "Byte order: little, big or auto (default from config)")
	importCmd.Flags().StringVar(&importPrefix, "prefix", "", "Import every object under this prefix")
	importCmd.Flags().IntVarP(&importWorkers, "workers", "w", 4, "Number of concurrent imports")
}

func runImport(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && importPrefix == "" {
		return fmt.Errorf("no keys given (pass KEY arguments or --prefix)")
	}

	// Stop starting new imports on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := newService(service.WithWorkers(importWorkers))
	if err != nil {
		return err
	}
	if err := svc.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer func() {
		if err := svc.Stop(); err != nil {
			logger.Warn("Failed to close service: %v", err)
		}
	}()

	endian, err := endianFlag(importEndian, svc)
	if err != nil {
		return err
	}

	results, err := collectImports(ctx, svc, args, endian)

	out := cmd.OutOrStdout()
	imported := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(out, "FAIL\t%s\t%s\t%s\n", r.Key, apperrors.GetErrorCode(r.Err), apperrors.GetErrorMessage(r.Err))
			continue
		}
		imported++
		fmt.Fprintf(out, "OK\t%s\tid=%d\n", r.Key, r.ID)
	}
	logger.Info("Imported %d of %d files", imported, len(results))

	if err != nil {
		failed := len(results) - imported
		if failed == 0 {
			return err
		}
		return fmt.Errorf("%d of %d imports failed", failed, len(results))
	}
	return nil
}

// collectImports imports the explicit keys and, with --prefix, every
// object under the prefix.
func collectImports(ctx context.Context, svc *service.Service, keys []string, endian binio.Endian) ([]service.ImportResult, error) {
	var results []service.ImportResult
	var errs error

	if len(keys) > 0 {
		r, err := svc.ImportBatch(ctx, keys, endian)
		results = append(results, r...)
		errs = multierr.Append(errs, err)
	}
	if importPrefix != "" {
		r, err := svc.ImportPrefix(ctx, importPrefix, endian)
		results = append(results, r...)
		errs = multierr.Append(errs, err)
	}
	return results, errs
}
