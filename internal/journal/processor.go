// =============================================================================
// Journal Order Builder - Processor
// =============================================================================
//
// This module orchestrates the pipeline for a single uploaded file:
//
//   1. Load the CSV into the typed table
//   2. Split it into the three buckets
//   3. Normalize the buckets to the accounting shape
//   4. Validate per-transaction balances
//   5. Build the revenue summary
//   6. Collect the problematic transactions
//   7. Write the workbook artifact
//
// Processing is synchronous and self-contained: each Run works on its own
// table, shares no mutable state with other runs, and either produces a
// complete Result or a failed one. There is no partial-result delivery.
//
// =============================================================================

package journal

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/arenabooks/journal-order/internal/config"
	"github.com/google/uuid"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the input file that was processed.
	FilePath string

	// ArtifactPath is the on-disk location of the generated workbook.
	// The stored name carries a uniqueness salt; DownloadName is the
	// clean name to hand to the user.
	ArtifactPath string

	// DownloadName is the user-facing workbook file name, derived from
	// the input's transaction date span.
	DownloadName string

	// Success indicates whether processing completed.
	Success bool

	// Error contains the failure when Success is false.
	Error error

	// Buckets, Balance, Summary and Problems are the derived tables.
	Buckets  *Buckets
	Balance  map[string]*SheetBalance
	Summary  *Summary
	Problems *ProblemTable

	// Stats contains processing statistics.
	Stats Stats
}

// Stats contains processing statistics for one run.
type Stats struct {
	// RowsLoaded is the number of data rows read from the input.
	RowsLoaded int

	// FormatIssues is the number of cells degraded to zero values.
	FormatIssues int

	// Elapsed is the total processing duration.
	Elapsed time.Duration
}

// =============================================================================
// PROCESSOR
// =============================================================================

// Processor runs the pipeline for one input file.
type Processor struct {
	csvPath string
	cfg     *config.Config
	log     *slog.Logger
}

// New creates a Processor for the given input file.
func New(csvPath string, cfg *config.Config, log *slog.Logger) *Processor {
	return &Processor{csvPath: csvPath, cfg: cfg, log: log}
}

// Run executes the full pipeline and returns the Result.
func (p *Processor) Run() Result {
	start := time.Now()
	result := Result{FilePath: p.csvPath}

	fail := func(err error) Result {
		result.Success = false
		result.Error = err
		result.Stats.Elapsed = time.Since(start)
		return result
	}

	table, err := Load(p.csvPath)
	if err != nil {
		return fail(err)
	}
	result.Stats.RowsLoaded = len(table.Records)
	result.Stats.FormatIssues = len(table.Issues)

	for _, issue := range table.Issues {
		p.log.Warn("cell degraded during load",
			"file", filepath.Base(p.csvPath),
			"row", issue.Row,
			"column", issue.Column,
			"value", issue.Value,
		)
	}

	buckets := Split(table, p.cfg.Journal)
	Normalize(buckets, p.cfg.Journal)

	result.Buckets = buckets
	result.Balance = ValidateBalances(buckets, table.HasTransactionID)
	result.Summary = BuildSummary(buckets.Rest, p.cfg.Journal)
	result.Problems = CollectProblems(buckets, table.HasTransactionID, p.cfg.Journal.LookupBaseURL)

	result.DownloadName = DownloadName(table.MinDate, table.MaxDate)
	result.ArtifactPath = filepath.Join(p.cfg.OutputDir, saltedName(result.DownloadName))

	if err := WriteWorkbook(buckets, result.Summary, table.MinDate, table.MaxDate, result.ArtifactPath); err != nil {
		return fail(fmt.Errorf("failed to write workbook: %w", err))
	}

	p.log.Info("journal order built",
		"file", filepath.Base(p.csvPath),
		"artifact", result.DownloadName,
		"rows", result.Stats.RowsLoaded,
		"without_ad", len(buckets.WithoutAds.Records),
		"advertisement", len(buckets.Ads.Records),
		"rest", len(buckets.Rest.Records),
		"problem_rows", len(result.Problems.Rows),
	)

	result.Success = true
	result.Stats.Elapsed = time.Since(start)
	return result
}

// saltedName prefixes a short uniqueness salt so concurrent uploads with
// identical date spans never collide in the shared output directory.
func saltedName(name string) string {
	return fmt.Sprintf("%s_%s", uuid.New().String()[:8], name)
}
