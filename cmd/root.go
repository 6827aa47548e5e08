// =============================================================================
// Inventory Validator - Root Command
// =============================================================================
//
// This file defines the root command. Given one export file it runs the
// whole pipeline: load the configuration, reconcile the file, print the
// report.
//
// COBRA CLI STRUCTURE:
//   rootCmd (inventory-validator <file>)
//   └── versionCmd (inventory-validator version)
//
// EXIT STATUS:
//   0 when the report was printed, 1 when the input or the configuration
//   could not be loaded.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/inventory-validator/internal/config"
	"github.com/ginjaninja78/inventory-validator/internal/logging"
	"github.com/ginjaninja78/inventory-validator/internal/reconcile"
	"github.com/ginjaninja78/inventory-validator/internal/report"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to an optional configuration file.
// Empty means the compiled defaults.
var cfgFile string

// verbose enables debug logging, including every accepted product.
var verbose bool

// encodingName overrides the input encoding from the configuration.
var encodingName string

// sheetName selects the worksheet of an .xlsx export.
var sheetName string

// logLevel and logFormat override the logging settings.
var (
	logLevel  string
	logFormat string
)

// noColor forces plain console logs. Colour is also off when NO_COLOR is set
// or stderr is not a terminal.
var noColor bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "inventory-validator <file>",
	Short: "Inventory Validator - Reconcile an inventory export against dashboard figures",
	Long: `Inventory Validator reads a tab-delimited inventory export, sums the
invested capital and sale value of every active product with stock, and
compares the results with the figures shown on the dashboard.

The report has three sections:
  - Values computed from the export
  - Dashboard values (baseline)
  - Differences, with their percentage of the baseline

Rows that cannot be parsed are logged with their line number and skipped.

Example Usage:
  inventory-validator inventario.txt
  inventory-validator --encoding windows-1252 inventario.txt
  inventory-validator --config baseline.yaml inventario.xlsx`,

	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runReconcile(args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes a general error message followed by the chain of wrapped
// causes.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		fmt.Fprintf(w, "  caused by: %v\n", cause)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to a YAML configuration file (default: compiled baseline and settings)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.Flags().StringVar(&encodingName, "encoding", "", "Input encoding: latin-1, windows-1252 or utf-8 (default latin-1)")
	rootCmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet to read from an .xlsx export (default: first sheet)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "", "Log format: console or json")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored log output")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runReconcile loads the configuration, reconciles the file and writes the
// report to stdout. Logs go to stderr.
func runReconcile(path string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Verbose: verbose,
		NoColor: noColor || logging.ColorDisabled(stderr),
	}, stderr)

	result, err := reconcile.New(cfg, logger).Run(path)
	if err != nil {
		logger.Error().Err(err).Str("file", path).Msg("Reconciliation failed")
		return err
	}

	return report.Write(stdout, result, cfg.Baseline)
}

// loadConfig reads the configuration file and applies the command-line
// overrides on top of it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if encodingName != "" {
		cfg.Input.Encoding = encodingName
	}
	if sheetName != "" {
		cfg.Input.Sheet = sheetName
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
