package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// revenueRec builds a rest-bucket record for summary tests.
func revenueRec(creditAccount, product string, credit float64) Record {
	return Record{CreditAccount: creditAccount, Product: product, Credit: credit}
}

func TestBuildSummary_GroupsByAccountAndProduct(t *testing.T) {
	rest := &Bucket{
		Name:      BucketRest,
		OrderDate: "2025-02-28",
		Records: []Record{
			revenueRec("40001", "Season Ticket", 250.5),
			revenueRec("40001", "Season Ticket", 249.5),
			revenueRec("40002", "Merch", 100),
		},
	}

	s := BuildSummary(rest, settings())

	// Blank framing row, two group rows, grand total.
	require.Len(t, s.Rows, 4)
	assert.Equal(t, SummaryRow{}, s.Rows[0])

	assert.Equal(t, "28/02/2025", s.Rows[1].OrderDate)
	assert.Equal(t, "40001", s.Rows[1].CreditAccount)
	assert.Equal(t, "Season Ticket", s.Rows[1].Product)
	assert.Equal(t, "500", s.Rows[1].CreditTotal)

	assert.Equal(t, "40002", s.Rows[2].CreditAccount)
	assert.Equal(t, "100", s.Rows[2].CreditTotal)
}

func TestBuildSummary_ExcludedAccountsCountOnlyTowardGrandTotal(t *testing.T) {
	rest := &Bucket{
		Name:      BucketRest,
		OrderDate: "2025-02-28",
		Records: []Record{
			revenueRec("40001", "Season Ticket", 500),
			revenueRec("70001", "Clearing", 100),
			revenueRec("70100", "Clearing", 50),
		},
	}

	s := BuildSummary(rest, settings())

	// Excluded accounts never get their own rows.
	require.Len(t, s.Rows, 3)
	assert.Equal(t, "40001", s.Rows[1].CreditAccount)

	// But their amounts reconcile into the grand total.
	total := s.Rows[len(s.Rows)-1]
	assert.Equal(t, "Total 28/02/2025", total.OrderDate)
	assert.Equal(t, "Total (Credit)", total.CreditAccount)
	assert.Equal(t, "Grand Total", total.Product)
	assert.Equal(t, "0", total.DebitTotal)
	assert.Equal(t, "650", total.CreditTotal)
}

func TestBuildSummary_SkipsNonNumericAccountsAndNonPositiveCredits(t *testing.T) {
	rest := &Bucket{
		Name:      BucketRest,
		OrderDate: "2025-02-28",
		Records: []Record{
			revenueRec("40001", "Season Ticket", 200),
			revenueRec("not-an-account", "Merch", 50),
			revenueRec("40002", "Refund", -30),
			revenueRec("40003", "Freebie", 0),
		},
	}

	s := BuildSummary(rest, settings())

	require.Len(t, s.Rows, 3)
	assert.Equal(t, "40001", s.Rows[1].CreditAccount)

	// The grand total still sums the whole bucket.
	assert.Equal(t, "220", s.Rows[2].CreditTotal)
}

func TestBuildSummary_SortsByAccountThenProduct(t *testing.T) {
	rest := &Bucket{
		Name:      BucketRest,
		OrderDate: "2025-02-28",
		Records: []Record{
			revenueRec("40002", "B", 1),
			revenueRec("40001", "Z", 2),
			revenueRec("40001", "A", 3),
		},
	}

	s := BuildSummary(rest, settings())

	require.Len(t, s.Rows, 5)
	assert.Equal(t, "40001", s.Rows[1].CreditAccount)
	assert.Equal(t, "A", s.Rows[1].Product)
	assert.Equal(t, "40001", s.Rows[2].CreditAccount)
	assert.Equal(t, "Z", s.Rows[2].Product)
	assert.Equal(t, "40002", s.Rows[3].CreditAccount)
}

func TestBuildSummary_EmptyBucket(t *testing.T) {
	rest := &Bucket{Name: BucketRest}

	s := BuildSummary(rest, settings())

	// Still framed: the blank row and a zero grand total.
	require.Len(t, s.Rows, 2)
	assert.Equal(t, "0", s.Rows[1].CreditTotal)
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567.4, "1,234,567"},
		{1234567.5, "1,234,568"},
		{-1234.6, "-1,235"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, formatAmount(c.in), "formatAmount(%v)", c.in)
	}
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "28/02/2025", displayDate("2025-02-28"))
	assert.Equal(t, "", displayDate(""))
	assert.Equal(t, "whatever", displayDate("whatever"))
}
