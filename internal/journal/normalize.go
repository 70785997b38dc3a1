// =============================================================================
// Journal Order Builder - Column Normalizer
// =============================================================================
//
// This module brings the three buckets to the accounting output shape:
//   - Drop the unused source columns when present
//   - Filter "Other Payment" rows out of the rest bucket
//   - Reformat transaction dates to YYYY-MM-DD text
//   - Union the passthrough columns across buckets so all three sheets
//     carry identical columns
//   - Assign 1-based sequence numbers after filtering
//   - Derive each bucket's order date (its maximum date string)
//
// The typed Record already fixes the renamed accounting columns, so the
// rename table from the source vocabulary lives in the workbook writer's
// header row rather than in a runtime mapping.
//
// =============================================================================

package journal

import (
	"github.com/arenabooks/journal-order/internal/config"
)

// dateTextLayout is the canonical on-sheet date representation.
const dateTextLayout = "2006-01-02"

// Normalize applies the output-shape rules to all three buckets in place.
func Normalize(b *Buckets, settings config.JournalSettings) {
	dropUnusedColumns(b)

	// Only the rest bucket filters technical payment rows; the sequence
	// numbers are assigned afterwards so they stay contiguous.
	b.Rest.Records = filterOtherPayment(b.Rest.Records, settings.OtherPaymentLabel)

	unionExtraColumns(b)

	for _, bucket := range b.All() {
		normalizeBucket(bucket)
	}
}

// dropUnusedColumns removes the configured drop-list columns from every
// bucket's passthrough set. Absent columns are tolerated.
func dropUnusedColumns(b *Buckets) {
	dropped := make(map[string]bool, len(droppedColumns))
	for _, c := range droppedColumns {
		dropped[c] = true
	}

	for _, bucket := range b.All() {
		kept := bucket.ExtraColumns[:0]
		for _, c := range bucket.ExtraColumns {
			if !dropped[c] {
				kept = append(kept, c)
			}
		}
		bucket.ExtraColumns = kept

		for i := range bucket.Records {
			for c := range dropped {
				delete(bucket.Records[i].Extra, c)
			}
		}
	}
}

// filterOtherPayment drops rows whose product name equals the excluded
// literal, compacting the slice.
func filterOtherPayment(records []Record, label string) []Record {
	kept := records[:0]
	for _, rec := range records {
		if rec.Product != label {
			kept = append(kept, rec)
		}
	}
	return kept
}

// unionExtraColumns gives every bucket the identical passthrough column
// set, in first-seen order. Records missing a column get an empty cell.
func unionExtraColumns(b *Buckets) {
	var union []string
	seen := make(map[string]bool)
	for _, bucket := range b.All() {
		for _, c := range bucket.ExtraColumns {
			if !seen[c] {
				seen[c] = true
				union = append(union, c)
			}
		}
	}

	for _, bucket := range b.All() {
		bucket.ExtraColumns = append([]string(nil), union...)
		for i := range bucket.Records {
			if bucket.Records[i].Extra == nil {
				bucket.Records[i].Extra = make(map[string]string, len(union))
			}
			for _, c := range union {
				if _, ok := bucket.Records[i].Extra[c]; !ok {
					bucket.Records[i].Extra[c] = ""
				}
			}
		}
	}
}

// normalizeBucket reformats dates, assigns sequence numbers and derives
// the bucket's order date.
func normalizeBucket(bucket *Bucket) {
	maxDate := ""
	for i := range bucket.Records {
		rec := &bucket.Records[i]

		rec.Seq = i + 1

		// A lossy normalization: a missing date becomes an empty cell,
		// never an error at this stage.
		if rec.Date.IsZero() {
			rec.DateText = ""
		} else {
			rec.DateText = rec.Date.Format(dateTextLayout)
		}

		if rec.DateText > maxDate {
			maxDate = rec.DateText
		}
	}

	bucket.OrderDate = maxDate
}
