// =============================================================================
// Journal Order Builder - Workbook Writer
// =============================================================================
//
// Writes the final four-sheet xlsx artifact:
//   - "without_ad" and "advertisement" bucket sheets
//   - A rest sheet named after the input's date span and year
//   - The "Summary" sheet
//
// Bucket sheets carry the normalized accounting columns (sequence number,
// the seven renamed fields, passthrough extras, order date). Amounts are
// written as numbers so the workbook stays usable for further accounting
// work; everything else is text.
//
// =============================================================================

package journal

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sheet names fixed by the accounting template.
const (
	sheetWithoutAds = "without_ad"
	sheetAds        = "advertisement"
	sheetSummary    = "Summary"
)

// DownloadName derives the artifact's user-facing file name from the
// input's transaction date span.
func DownloadName(minDate, maxDate time.Time) string {
	return fmt.Sprintf("journal_order_%s-%s.xlsx", minDate.Format("02.01"), maxDate.Format("02.01"))
}

// restSheetName derives the rest sheet's name from the date span and the
// final year. Stays under the 31-character sheet name limit.
func restSheetName(minDate, maxDate time.Time) string {
	return fmt.Sprintf("journal order %s-%s.%d", minDate.Format("02.01"), maxDate.Format("02.01"), maxDate.Year())
}

// WriteWorkbook writes the four-sheet artifact to the given path.
//
// PARAMETERS:
//   - b: The three normalized buckets.
//   - summary: The built Summary sheet.
//   - minDate, maxDate: The input's transaction date span.
//   - path: The output file path.
//
// RETURNS:
//   - An error if any sheet cannot be written or the file cannot be saved.
func WriteWorkbook(b *Buckets, summary *Summary, minDate, maxDate time.Time, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	// The workbook opens with a default sheet; rename it into the first
	// bucket sheet instead of leaving an empty tab behind.
	if err := f.SetSheetName("Sheet1", sheetWithoutAds); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetWithoutAds, err)
	}

	sheets := []struct {
		name   string
		bucket *Bucket
	}{
		{sheetWithoutAds, b.WithoutAds},
		{sheetAds, b.Ads},
		{restSheetName(minDate, maxDate), b.Rest},
	}

	for _, s := range sheets {
		if s.name != sheetWithoutAds {
			if _, err := f.NewSheet(s.name); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", s.name, err)
			}
		}
		if err := writeBucketSheet(f, s.name, s.bucket); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", s.name, err)
		}
	}

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetSummary, err)
	}
	if err := writeSummarySheet(f, summary); err != nil {
		return fmt.Errorf("failed to write sheet %s: %w", sheetSummary, err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writeBucketSheet writes one bucket's header and rows.
func writeBucketSheet(f *excelize.File, sheet string, bucket *Bucket) error {
	header := []interface{}{
		ColSeq, ColTransaction, ColDate, ColProduct,
		ColDebit, ColCredit, ColDebitAccount, ColCreditAccount,
	}
	for _, c := range bucket.ExtraColumns {
		header = append(header, c)
	}
	header = append(header, ColOrderDate)

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, rec := range bucket.Records {
		row := []interface{}{
			rec.Seq, rec.TransactionID, rec.DateText, rec.Product,
			rec.Debit, rec.Credit, rec.DebitAccount, rec.CreditAccount,
		}
		for _, c := range bucket.ExtraColumns {
			row = append(row, rec.Extra[c])
		}
		row = append(row, bucket.OrderDate)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return nil
}

// writeSummarySheet writes the Summary header and rows.
func writeSummarySheet(f *excelize.File, summary *Summary) error {
	header := []interface{}{
		SumColOrderDate, SumColDebitAccount, SumColCreditAccount,
		SumColProduct, SumColDebitTotal, SumColCreditTotal,
	}
	if err := f.SetSheetRow(sheetSummary, "A1", &header); err != nil {
		return err
	}

	for i, r := range summary.Rows {
		row := []interface{}{
			r.OrderDate, r.DebitAccount, r.CreditAccount,
			r.Product, r.DebitTotal, r.CreditTotal,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return err
		}
	}

	return nil
}
