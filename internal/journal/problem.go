// =============================================================================
// Journal Order Builder - Problematic-Transaction Reporter
// =============================================================================
//
// Collects every row belonging to an unbalanced transaction, across all
// three buckets, into one reviewable table. Each row is tagged with its
// source sheet and a back-office lookup URL so the accountant can open the
// transaction directly. Per-bucket row order is preserved; the sequence
// column is renumbered over the combined result.
//
// =============================================================================

package journal

import "fmt"

// ProblemRow is one row of the problematic-transactions table.
type ProblemRow struct {
	Seq           int     `json:"seq"`
	TransactionID string  `json:"transaction"`
	DateText      string  `json:"transaction_date"`
	Product       string  `json:"product_name"`
	Debit         float64 `json:"debit"`
	Credit        float64 `json:"credit"`
	DebitAccount  string  `json:"debit_account"`
	CreditAccount string  `json:"credit_account"`
	Sheet         string  `json:"sheet"`
	LookupURL     string  `json:"transaction_link"`
}

// ProblemTable is the combined report. Empty (never nil) when every
// transaction balances.
type ProblemTable struct {
	Rows []ProblemRow `json:"rows"`
}

// Headers returns the column headers for CSV export, matching the field
// order of ProblemRow.
func (p *ProblemTable) Headers() []string {
	return []string{
		ColSeq, ColTransaction, ColDate, ColProduct,
		ColDebit, ColCredit, ColDebitAccount, ColCreditAccount,
		ColSheet, ColLookupURL,
	}
}

// CollectProblems builds the problematic-transactions table.
//
// The unbalanced-transaction set is recomputed per bucket with the same
// grouping rule the balance validator uses. Without a transaction id
// column no per-transaction analysis is possible and the result is empty.
func CollectProblems(b *Buckets, hasTransactionID bool, lookupBaseURL string) *ProblemTable {
	table := &ProblemTable{Rows: []ProblemRow{}}

	if !hasTransactionID {
		return table
	}

	for _, bucket := range b.All() {
		if len(bucket.Records) == 0 {
			continue
		}

		bad := unbalancedIDs(bucket.Records)
		if len(bad) == 0 {
			continue
		}

		for _, rec := range bucket.Records {
			if !bad[rec.TransactionID] {
				continue
			}
			table.Rows = append(table.Rows, ProblemRow{
				TransactionID: rec.TransactionID,
				DateText:      rec.DateText,
				Product:       rec.Product,
				Debit:         rec.Debit,
				Credit:        rec.Credit,
				DebitAccount:  rec.DebitAccount,
				CreditAccount: rec.CreditAccount,
				Sheet:         bucket.Name.DisplayName(),
				LookupURL:     fmt.Sprintf("%s?id=%s", lookupBaseURL, rec.TransactionID),
			})
		}
	}

	// Renumber over the combined result.
	for i := range table.Rows {
		table.Rows[i].Seq = i + 1
	}

	return table
}
