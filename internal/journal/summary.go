// =============================================================================
// Journal Order Builder - Summary Builder
// =============================================================================
//
// The Summary sheet aggregates revenue from the rest bucket only: the
// advertisement split exists for the bucket sheets, not for the financial
// summary. One row per (credit account, product) with the summed credit
// amount, excluding a small set of clearing accounts, framed by a blank
// header row and a grand-total row.
//
// The grand-total debit is always zero: this journal records no
// debit-side summary entries. The grand-total credit sums the WHOLE
// bucket, excluded accounts included, so the total reconciles against the
// sheet rather than against the summary rows above it.
//
// =============================================================================

package journal

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/arenabooks/journal-order/internal/config"
)

// SummaryRow is one row of the Summary sheet. All cells are display
// strings; amounts carry thousands separators with no decimal places.
type SummaryRow struct {
	OrderDate     string `json:"order_date"`
	DebitAccount  string `json:"debit_account"`
	CreditAccount string `json:"credit_account"`
	Product       string `json:"product_name"`
	DebitTotal    string `json:"total_debit"`
	CreditTotal   string `json:"total_credit"`
}

// Summary is the built Summary sheet: a blank header row, one row per
// surviving (account, product) group, and a grand-total row.
type Summary struct {
	Rows []SummaryRow `json:"rows"`
}

// revenueKey identifies one summary group.
type revenueKey struct {
	account int64
	product string
}

// BuildSummary builds the revenue summary from the rest bucket.
//
// Group amounts accumulate: if repeated passes over bucket data ever
// produce the same (account, product) key twice, the sums add rather than
// overwrite.
func BuildSummary(rest *Bucket, settings config.JournalSettings) *Summary {
	excluded := make(map[int64]bool, len(settings.ExcludedSummaryAccounts))
	for _, a := range settings.ExcludedSummaryAccounts {
		excluded[a] = true
	}

	orderDate := displayDate(rest.OrderDate)

	revenue := make(map[revenueKey]float64)
	totalCredit := 0.0
	for _, rec := range rest.Records {
		totalCredit += rec.Credit

		account, ok := accountNumber(rec.CreditAccount)
		if !ok || rec.Credit <= 0 {
			continue
		}
		if excluded[account] {
			continue
		}
		revenue[revenueKey{account: account, product: rec.Product}] += rec.Credit
	}

	keys := make([]revenueKey, 0, len(revenue))
	for k := range revenue {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].account != keys[j].account {
			return keys[i].account < keys[j].account
		}
		return keys[i].product < keys[j].product
	})

	s := &Summary{}

	// Blank framing row, as the accounting template expects.
	s.Rows = append(s.Rows, SummaryRow{})

	for _, k := range keys {
		amount := revenue[k]
		if amount <= 0 {
			continue
		}
		s.Rows = append(s.Rows, SummaryRow{
			OrderDate:     orderDate,
			CreditAccount: strconv.FormatInt(k.account, 10),
			Product:       k.product,
			CreditTotal:   formatAmount(amount),
		})
	}

	s.Rows = append(s.Rows, SummaryRow{
		OrderDate:     fmt.Sprintf("Total %s", orderDate),
		CreditAccount: "Total (Credit)",
		Product:       "Grand Total",
		DebitTotal:    formatAmount(0), // no debit-side entries in this summary
		CreditTotal:   formatAmount(totalCredit),
	})

	return s
}

// accountNumber parses a credit-account cell into its integral account
// number. Non-numeric cells have no account.
func accountNumber(raw string) (int64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return int64(f), true
}

// displayDate converts a YYYY-MM-DD order date to the DD/MM/YYYY display
// form used on the summary sheet. Anything else passes through unchanged.
func displayDate(isoDate string) string {
	parts := strings.Split(isoDate, "-")
	if len(parts) != 3 {
		return isoDate
	}
	return fmt.Sprintf("%s/%s/%s", parts[2], parts[1], parts[0])
}

// formatAmount renders an amount with thousands separators and no
// decimal places.
func formatAmount(v float64) string {
	n := int64(math.Round(v))

	neg := n < 0
	if neg {
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
