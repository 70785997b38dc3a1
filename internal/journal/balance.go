// =============================================================================
// Journal Order Builder - Balance Validator
// =============================================================================
//
// Every transaction in a journal order must balance: the sum of its debit
// rows and the sum of its credit rows may differ by at most a small
// tolerance. The tolerance absorbs floating-point noise from the export,
// it is not a business allowance.
//
// Sheet-level totals deliberately sum ALL transactions, balanced and
// unbalanced alike: the accountant needs the full sheet picture, while the
// unbalanced count points at the rows to review.
//
// When the source lacks the transaction id column the validator degrades
// to a plain column-sum comparison without per-transaction granularity.
//
// =============================================================================

package journal

import "math"

// Tolerance is the maximum absolute debit-credit difference a balanced
// transaction may carry.
const Tolerance = 0.01

// TransactionBalance is the per-transaction debit/credit aggregate within
// one bucket. Transaction ids are not assumed unique across buckets, so a
// balance never outlives the validation call that produced it.
type TransactionBalance struct {
	TransactionID string  `json:"transaction"`
	Debit         float64 `json:"debit"`
	Credit        float64 `json:"credit"`
	Difference    float64 `json:"difference"`
	Balanced      bool    `json:"balanced"`
}

// SheetBalance is the balance report for one bucket's sheet.
type SheetBalance struct {
	// Sheet is the bucket's display name.
	Sheet string `json:"sheet"`

	// TotalDebit and TotalCredit sum every transaction on the sheet.
	TotalDebit  float64 `json:"total_debit"`
	TotalCredit float64 `json:"total_credit"`

	// Difference is the signed sheet-level debit minus credit.
	Difference float64 `json:"difference"`

	// Balanced derives from the sheet-level difference.
	Balanced bool `json:"balanced"`

	// UnbalancedCount is the number of individually unbalanced
	// transactions. Meaningless in the degraded path.
	UnbalancedCount int `json:"unbalanced_transactions,omitempty"`

	// Degraded marks the column-sum fallback used when the transaction id
	// column is absent from the source.
	Degraded bool `json:"degraded,omitempty"`

	// Transactions holds the per-transaction balances in first-seen
	// order. Nil in the degraded path.
	Transactions []TransactionBalance `json:"-"`
}

// ValidateBalances produces the balance report for every non-empty
// bucket, keyed by the bucket display name.
func ValidateBalances(b *Buckets, hasTransactionID bool) map[string]*SheetBalance {
	results := make(map[string]*SheetBalance)

	for _, bucket := range b.All() {
		if len(bucket.Records) == 0 {
			continue
		}
		results[bucket.Name.DisplayName()] = validateBucket(bucket, hasTransactionID)
	}

	return results
}

// validateBucket builds the report for a single bucket.
func validateBucket(bucket *Bucket, hasTransactionID bool) *SheetBalance {
	sb := &SheetBalance{Sheet: bucket.Name.DisplayName()}

	if !hasTransactionID {
		// Legacy/degraded path: no per-transaction granularity.
		for _, rec := range bucket.Records {
			sb.TotalDebit += rec.Debit
			sb.TotalCredit += rec.Credit
		}
		sb.Difference = sb.TotalDebit - sb.TotalCredit
		sb.Balanced = math.Abs(sb.Difference) <= Tolerance
		sb.Degraded = true
		return sb
	}

	sb.Transactions = groupTransactions(bucket.Records)

	for i := range sb.Transactions {
		tb := &sb.Transactions[i]
		sb.TotalDebit += tb.Debit
		sb.TotalCredit += tb.Credit
		if !tb.Balanced {
			sb.UnbalancedCount++
		}
	}

	sb.Difference = sb.TotalDebit - sb.TotalCredit
	sb.Balanced = math.Abs(sb.Difference) <= Tolerance

	return sb
}

// groupTransactions sums debit and credit per transaction id, preserving
// first-seen order.
func groupTransactions(records []Record) []TransactionBalance {
	index := make(map[string]int)
	var balances []TransactionBalance

	for _, rec := range records {
		i, ok := index[rec.TransactionID]
		if !ok {
			i = len(balances)
			index[rec.TransactionID] = i
			balances = append(balances, TransactionBalance{TransactionID: rec.TransactionID})
		}
		balances[i].Debit += rec.Debit
		balances[i].Credit += rec.Credit
	}

	for i := range balances {
		balances[i].Difference = balances[i].Debit - balances[i].Credit
		balances[i].Balanced = math.Abs(balances[i].Difference) <= Tolerance
	}

	return balances
}

// unbalancedIDs returns the set of transaction ids whose rows fail the
// balance check, for the problematic-transactions report.
func unbalancedIDs(records []Record) map[string]bool {
	ids := make(map[string]bool)
	for _, tb := range groupTransactions(records) {
		if !tb.Balanced {
			ids[tb.TransactionID] = true
		}
	}
	return ids
}
