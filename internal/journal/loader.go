// =============================================================================
// Journal Order Builder - Table Loader
// =============================================================================
//
// This module turns the raw header-keyed rows from the CSV parser into the
// typed Table the pipeline consumes. Responsibilities:
//   - Require and parse the date column (day-first, e.g. 28/02/2025);
//     any unparseable value is fatal because the artifact name derives
//     from the min/max transaction date
//   - Parse the debit/credit amounts, degrading broken cells to zero
//   - Separate the interpreted columns from passthrough extras
//   - Record which optional source columns were present
//
// =============================================================================

package journal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/arenabooks/journal-order/internal/csvparser"
)

// dateLayout is the day-first source date format. time.Parse is lenient
// about missing leading zeros, so both 02/01/2025 and 2/1/2025 parse.
const dateLayout = "02/01/2006"

// Load parses a CSV file from disk into a typed Table.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//
// RETURNS:
//   - A pointer to the loaded Table.
//   - A *ParseError if the date column is missing or contains unparseable
//     values, or a wrapped error if the file itself cannot be read.
func Load(filePath string) (*Table, error) {
	data, err := csvparser.Parse(filePath, csvparser.Settings{})
	if err != nil {
		return nil, fmt.Errorf("failed to load table: %w", err)
	}
	return FromCSVData(data)
}

// FromCSVData builds a typed Table from already-parsed CSV data. Uploaded
// files come through this path without touching disk twice.
func FromCSVData(data *csvparser.CSVData) (*Table, error) {
	if !data.HasColumn(SrcDate) {
		return nil, &ParseError{
			File:    data.SourceFile,
			Column:  SrcDate,
			Message: "required date column is missing",
		}
	}

	t := &Table{
		Records:          make([]Record, 0, len(data.Rows)),
		HasTransactionID: data.HasColumn(SrcTransactionID),
		SourceFile:       data.SourceFile,
	}

	// Interpreted columns never appear among the extras.
	interpreted := map[string]bool{
		SrcTransactionID: true,
		SrcDate:          true,
		SrcProduct:       true,
		SrcDebit:         true,
		SrcCredit:        true,
		SrcDebitAccount:  true,
		SrcCreditAccount: true,
	}
	for _, h := range data.Headers {
		if !interpreted[h] {
			t.ExtraColumns = append(t.ExtraColumns, h)
		}
	}

	for i, row := range data.Rows {
		rowNum := i + 1

		date, err := time.Parse(dateLayout, strings.TrimSpace(row[SrcDate]))
		if err != nil {
			return nil, &ParseError{
				File:    data.SourceFile,
				Row:     rowNum,
				Column:  SrcDate,
				Message: fmt.Sprintf("cannot parse %q as a day-first date", row[SrcDate]),
			}
		}

		rec := Record{
			TransactionID: row[SrcTransactionID],
			Date:          date,
			Product:       row[SrcProduct],
			DebitAccount:  row[SrcDebitAccount],
			CreditAccount: row[SrcCreditAccount],
			Extra:         make(map[string]string, len(t.ExtraColumns)),
		}
		rec.Debit = t.parseAmount(row[SrcDebit], rowNum, SrcDebit)
		rec.Credit = t.parseAmount(row[SrcCredit], rowNum, SrcCredit)

		for _, h := range t.ExtraColumns {
			rec.Extra[h] = row[h]
		}

		if t.MinDate.IsZero() || date.Before(t.MinDate) {
			t.MinDate = date
		}
		if t.MaxDate.IsZero() || date.After(t.MaxDate) {
			t.MaxDate = date
		}

		t.Records = append(t.Records, rec)
	}

	return t, nil
}

// parseAmount parses a monetary cell. Empty cells are zero; cells that
// fail to parse degrade to zero and are recorded as format issues.
func (t *Table) parseAmount(raw string, row int, column string) float64 {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		t.Issues = append(t.Issues, &FormatError{Row: row, Column: column, Value: raw})
		return 0
	}
	return v
}
