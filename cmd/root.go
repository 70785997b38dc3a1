// =============================================================================
// Journal Order Builder - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'process', 'serve') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (journal)
//   ├── processCmd (journal process)
//   ├── serveCmd   (journal serve)
//   └── versionCmd (journal version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (e.g., --config, --verbose)
//   2. Leaving configuration loading to the individual commands
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/arenabooks/journal-order/internal/config"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "journal",

	Short: "Journal Order Builder - Turn ticketing CSV exports into accounting workbooks",

	Long: `Journal Order Builder transforms installment CSV exports from the ticketing
system into multi-sheet xlsx journal-order workbooks ready for the accounting
department.

Key Features:
  - Splits records into sales, advertisement and additional-data sheets
  - Validates debit/credit balance per transaction with a small tolerance
  - Builds a per-account revenue summary sheet with a grand total
  - Reports problematic transactions with direct lookup links
  - Runs as a one-shot CLI or as an HTTP upload service

Example Usage:
  journal process --file export.csv    # Build a workbook from a single export
  journal serve                        # Start the HTTP upload service
  journal process --config ./my.yaml   # Use a custom configuration file`,

	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print the help message.
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags shared by all subcommands.
func init() {
	// Persistent flags are available to this command and all subcommands.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadConfig loads the configuration file and applies the --verbose override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}
