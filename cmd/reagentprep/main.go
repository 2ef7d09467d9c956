package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vsinha/reagentprep/pkg/domain/services/nominals"
	"github.com/vsinha/reagentprep/pkg/interfaces/cli/commands"
)

var (
	// Global flags
	settingsFile string
	labName      string
	verbose      bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "reagentprep",
	Short: "Prepare robot input files and reagent preparation sheets for a run",
	Long: `reagentprep turns a planned reaction run into the files a lab needs:

  - the Nimbus (or ECL) robot input workbook,
  - the reagent preparation interface with nominal amounts per chemical,
  - the reagent specification table.

A run directory holds run.yaml, volumes.csv and chemicals.csv.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func newRunCommand(use, short string, nominalsOnly bool) *cobra.Command {
	cfg := commands.Config{NominalsOnly: nominalsOnly}
	cmd := &cobra.Command{
		Use:   use + " [run-dir]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.RunDir = args[0]
			}
			cfg.SettingsFile = settingsFile
			cfg.Lab = labName
			cfg.Verbose = verbose
			return commands.NewPrepareCommand(cfg, logger).Execute(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&cfg.RunFile, "run", "", "Path to run YAML file")
	cmd.Flags().StringVar(&cfg.VolumesFile, "volumes", "", "Path to reagent volumes CSV file")
	cmd.Flags().StringVar(&cfg.ChemicalsFile, "chemicals", "", "Path to chemicals CSV file")
	cmd.Flags().StringVar(&cfg.ChemicalsDB, "chemicals-db", "", "Path to chemicals SQLite database (replaces --chemicals)")
	cmd.Flags().StringVar(&cfg.Strategy, "strategy", "",
		fmt.Sprintf("Nominal strategy: %s or %s (default from settings)", nominals.StrategySimple, nominals.StrategyV1))
	if nominalsOnly {
		cmd.Flags().StringVar(&cfg.Format, "format", "text", "Output format: text, json, csv")
	} else {
		cmd.Flags().StringVar(&cfg.OutputDir, "output", "", "Output directory (default: run directory)")
		cmd.Flags().StringVar(&cfg.InterfaceFile, "interface", "", "Reagent interface workbook to fill")
		cmd.Flags().StringVar(&cfg.Format, "format", "csv", "Reagent specification format: csv, json")
	}
	return cmd
}

var chemicalsCmd = &cobra.Command{
	Use:   "chemicals",
	Short: "Manage the chemical property database",
}

func newImportCommand() *cobra.Command {
	var database string
	cmd := &cobra.Command{
		Use:   "import <chemicals.csv>",
		Short: "Import a chemicals CSV into the SQLite database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.NewImportChemicalsCommand(args[0], database, logger).Execute(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&database, "db", "chemicals.db", "Path to chemicals SQLite database")
	return cmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsFile, "config", "configs/labs.yaml", "Path to lab settings YAML")
	rootCmd.PersistentFlags().StringVar(&labName, "lab", "", "Lab name (default: lab of the run)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	chemicalsCmd.AddCommand(newImportCommand())

	rootCmd.AddCommand(newRunCommand("prepare", "Write robot files, reagent interface and reagent specification", false))
	rootCmd.AddCommand(newRunCommand("nominals", "Print the reagent specification with nominal amounts", true))
	rootCmd.AddCommand(chemicalsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
