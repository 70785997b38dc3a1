// =============================================================================
// Journal Order Builder - Segmenter
// =============================================================================
//
// This module partitions the loaded table into the three buckets:
//
//   1. Forward-fill the debit-account reference: empty and textual
//      "nan"/"NaN" cells inherit the nearest preceding non-missing value
//      in row order, then the filled value is coerced to an integer-like
//      string. Rows whose coerced key equals the configured candidate
//      account are "candidates"; everything else is "rest".
//   2. Within the candidates, coerce the credit-account reference to a
//      number. Each run of rows between missing values forms a segment
//      (the missing row opens the next segment). A segment containing the
//      advertisement marker code anywhere sends ALL of its rows to the
//      advertisement bucket; unmarked segments go to without-advertisement.
//
// Both passes are explicit and order-dependent: the export interleaves
// payment rows and product rows, and a blank credit-account cell is the
// only boundary between billing segments. Row order within each bucket
// matches original file order.
//
// =============================================================================

package journal

import (
	"strconv"
	"strings"

	"github.com/arenabooks/journal-order/internal/config"
)

// Split partitions the table into the three buckets.
//
// An input with no candidate rows yields empty without-advertisement and
// advertisement buckets, not an error. Every row lands in exactly one
// bucket.
func Split(t *Table, settings config.JournalSettings) *Buckets {
	b := &Buckets{
		WithoutAds: &Bucket{Name: BucketWithoutAds, ExtraColumns: append([]string(nil), t.ExtraColumns...)},
		Ads:        &Bucket{Name: BucketAds, ExtraColumns: append([]string(nil), t.ExtraColumns...)},
		Rest:       &Bucket{Name: BucketRest, ExtraColumns: append([]string(nil), t.ExtraColumns...)},
	}

	// Pass 1: forward-fill the grouping key and split candidates vs rest.
	// A leading run of missing keys stays missing; the empty coerced key
	// never equals the candidate account, so those rows fall into rest.
	var candidates []Record
	currentRaw := ""
	for _, rec := range t.Records {
		if !isMissingKey(rec.DebitAccount) {
			currentRaw = rec.DebitAccount
		}
		if coerceKey(currentRaw) == settings.CandidateAccount {
			candidates = append(candidates, rec)
		} else {
			b.Rest.Records = append(b.Rest.Records, rec)
		}
	}

	// Pass 2: segment the candidates on missing credit-account codes and
	// mark segments containing the advertisement code. The missing row
	// itself belongs to the segment it opens.
	segmentOf := make([]int, len(candidates))
	marked := make(map[int]bool)
	segID := 0
	for i := range candidates {
		code, ok := parseCode(candidates[i].CreditAccount)
		if !ok {
			segID++
		}
		segmentOf[i] = segID
		if ok && code == float64(settings.AdMarkerCode) {
			marked[segID] = true
		}

		// The sheets show the coerced code, not the raw cell.
		candidates[i].CreditAccount = formatCode(candidates[i].CreditAccount)
	}

	for i, rec := range candidates {
		if marked[segmentOf[i]] {
			b.Ads.Records = append(b.Ads.Records, rec)
		} else {
			b.WithoutAds.Records = append(b.WithoutAds.Records, rec)
		}
	}

	return b
}

// isMissingKey reports whether a grouping-key cell counts as missing for
// forward-fill purposes.
func isMissingKey(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == "nan" || s == "NaN"
}

// coerceKey coerces a filled key to an integer-like string for the
// sentinel comparison. Non-numeric keys coerce to the empty string, which
// fails the comparison and routes the row to rest.
func coerceKey(raw string) string {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return ""
	}
	return strconv.FormatInt(int64(f), 10)
}

// parseCode coerces a credit-account cell to a number. The boolean is
// false for empty or non-numeric cells, which act as segment boundaries.
func parseCode(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// formatCode renders the coerced credit-account code for the output
// sheets: integral values lose their fraction, missing values become
// empty cells.
func formatCode(raw string) string {
	f, ok := parseCode(raw)
	if !ok {
		return ""
	}
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
