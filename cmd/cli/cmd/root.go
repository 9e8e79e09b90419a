// Package cmd implements the hpcprof command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hpcprof/internal/parser/binio"
	"github.com/hpcprof/internal/service"
	"github.com/hpcprof/pkg/config"
	"github.com/hpcprof/pkg/telemetry"
	"github.com/hpcprof/pkg/utils"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg               *config.Config
	logger            utils.Logger = &utils.NullLogger{}
	telemetryShutdown telemetry.ShutdownFunc
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hpcprof",
	Short: "Decode and import HPC profiler EProf/DProf files",
	Long: `hpcprof reads the binary output of the HPC profiler.

EProf files carry event counter groups (elapsed, user and system time, MPI
statistics and hardware counter samples). DProf files carry sampled costs per
procedure, loop and line, plus call-graph edges. Files may be gzip or zstd
compressed.

Decoded profiles can be imported from local storage or Tencent COS into a
sqlite, postgres or mysql database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		logger, err = utils.NewLogger(level, cfg.Log.File)
		if err != nil {
			return err
		}
		utils.SetGlobalLogger(logger)

		telemetryShutdown, err = telemetry.Init(cmd.Context())
		if err != nil {
			logger.Warn("Failed to initialize telemetry: %v", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if telemetryShutdown != nil {
			if err := telemetryShutdown(context.Background()); err != nil {
				logger.Warn("Failed to flush traces: %v", err)
			}
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	// Set dynamic example using actual binary name
	binName := BinName()
	rootCmd.Example = `  # Print the header of a profile
  ` + binName + ` inspect ./pa1.eprf

  # Decode a big-endian file and dump every table as JSON
  ` + binName + ` inspect ./run.dprf --endian big --rows --output json

  # Import profiles from the configured storage
  ` + binName + ` import -c ./config.yaml runs/job42/pa1.eprf runs/job42/run.dprf

  # List recent imports
  ` + binName + ` list --limit 20`
}

// GetLogger returns the configured logger
func GetLogger() utils.Logger {
	return logger
}

// BinName returns the base name of the current executable
func BinName() string {
	return filepath.Base(os.Args[0])
}

// newService builds the application service from the loaded configuration.
func newService(opts ...service.Option) (*service.Service, error) {
	return service.New(cfg, logger, opts...)
}

// endianFlag resolves the --endian flag, falling back to the configured order.
func endianFlag(value string, svc *service.Service) (binio.Endian, error) {
	if value == "" {
		return svc.DefaultEndian(), nil
	}
	return binio.ParseEndian(value)
}
