// =============================================================================
// Journal Order Builder - Process Command
// =============================================================================
//
// This file defines the 'process' command, which builds a journal-order
// workbook from a single CSV export without starting the HTTP service.
//
// COMMAND USAGE:
//   journal process --file export.csv [flags]
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Parse the CSV export into typed records
//   3. Split the records into the three journal buckets
//   4. Normalize columns, sequence numbers and dates
//   5. Validate debit/credit balance per transaction
//   6. Build the revenue summary and the problem report
//   7. Write the multi-sheet xlsx workbook to the output directory
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/arenabooks/journal-order/internal/journal"
	"github.com/arenabooks/journal-order/internal/logger"
	"github.com/spf13/cobra"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// processFile is the path of the CSV export to process.
var processFile string

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Build a journal-order workbook from a CSV export",
	Long: `The process command reads one installment CSV export, splits it into the
without-advertisement, advertisement and additional-data buckets, validates
balances, builds the summary and writes the xlsx workbook to the configured
output directory.

On success the workbook path is printed together with a balance report.
Problematic transactions, if any, are listed with their lookup links so they
can be inspected in the ticketing system.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&processFile,
		"file",
		"",
		"Path to the CSV export to process (required)",
	)
	processCmd.MarkFlagRequired("file")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess builds the workbook for a single file and prints the report.
func runProcess() error {
	startTime := time.Now()

	fmt.Println("=== Journal Order Builder ===")
	fmt.Println("Loading configuration...")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)

	fmt.Printf("Processing %s...\n", filepath.Base(processFile))

	result := journal.New(processFile, cfg, log).Run()
	if !result.Success {
		return fmt.Errorf("failed to process %s: %w", filepath.Base(processFile), result.Error)
	}

	// =========================================================================
	// BUCKET REPORT
	// =========================================================================

	fmt.Println("\n=== Buckets ===")
	for _, bucket := range result.Buckets.All() {
		fmt.Printf("  %-22s %d row(s)\n", bucket.Name.DisplayName()+":", len(bucket.Records))
	}

	// =========================================================================
	// BALANCE REPORT
	// =========================================================================

	fmt.Println("\n=== Balance Validation ===")
	sheets := make([]string, 0, len(result.Balance))
	for name := range result.Balance {
		sheets = append(sheets, name)
	}
	sort.Strings(sheets)
	for _, name := range sheets {
		sb := result.Balance[name]
		status := "balanced"
		if !sb.Balanced {
			status = fmt.Sprintf("UNBALANCED (%d transaction(s))", sb.UnbalancedCount)
		}
		if sb.Degraded {
			status += " [column totals only]"
		}
		fmt.Printf("  %-22s debit %.2f  credit %.2f  %s\n",
			name+":", sb.TotalDebit, sb.TotalCredit, status)
	}

	// =========================================================================
	// PROBLEM REPORT
	// =========================================================================

	if result.Problems != nil && len(result.Problems.Rows) > 0 {
		fmt.Println("\n=== Problematic Transactions ===")
		for _, row := range result.Problems.Rows {
			fmt.Printf("  ✗ %s (%s)  debit %.2f / credit %.2f  %s\n",
				row.TransactionID, row.Sheet, row.Debit, row.Credit, row.LookupURL)
		}
	}

	// =========================================================================
	// SUMMARY
	// =========================================================================

	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Workbook:        %s\n", result.ArtifactPath)
	fmt.Printf("Download name:   %s\n", result.DownloadName)
	fmt.Printf("Rows loaded:     %d\n", result.Stats.RowsLoaded)
	fmt.Printf("Format issues:   %d\n", result.Stats.FormatIssues)
	fmt.Printf("Time elapsed:    %s\n", time.Since(startTime))

	return nil
}
