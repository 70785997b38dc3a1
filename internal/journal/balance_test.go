package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// amountRec builds a record carrying only the balance-relevant fields.
func amountRec(txn string, debit, credit float64) Record {
	return Record{TransactionID: txn, Debit: debit, Credit: credit}
}

func bucketsOf(name BucketName, records ...Record) *Buckets {
	b := &Buckets{
		WithoutAds: &Bucket{Name: BucketWithoutAds},
		Ads:        &Bucket{Name: BucketAds},
		Rest:       &Bucket{Name: BucketRest},
	}
	switch name {
	case BucketWithoutAds:
		b.WithoutAds.Records = records
	case BucketAds:
		b.Ads.Records = records
	case BucketRest:
		b.Rest.Records = records
	}
	return b
}

func TestValidateBalances_BalancedTransactions(t *testing.T) {
	b := bucketsOf(BucketWithoutAds,
		amountRec("T1", 100, 0),
		amountRec("T1", 0, 100),
		amountRec("T2", 50.5, 50.5),
	)

	results := ValidateBalances(b, true)

	require.Contains(t, results, "Without Advertisements")
	sb := results["Without Advertisements"]
	assert.True(t, sb.Balanced)
	assert.Equal(t, 0, sb.UnbalancedCount)
	assert.InDelta(t, 150.5, sb.TotalDebit, 1e-9)
	assert.InDelta(t, 150.5, sb.TotalCredit, 1e-9)
	assert.False(t, sb.Degraded)
}

func TestValidateBalances_ToleranceBoundary(t *testing.T) {
	// 0.005 difference is inside the tolerance.
	b := bucketsOf(BucketWithoutAds, amountRec("T1", 100.00, 99.995))
	sb := ValidateBalances(b, true)["Without Advertisements"]
	assert.True(t, sb.Balanced)
	assert.Equal(t, 0, sb.UnbalancedCount)

	// 0.02 difference is outside.
	b = bucketsOf(BucketWithoutAds, amountRec("T1", 100.00, 99.98))
	sb = ValidateBalances(b, true)["Without Advertisements"]
	assert.False(t, sb.Balanced)
	assert.Equal(t, 1, sb.UnbalancedCount)
}

func TestValidateBalances_SheetTotalsIncludeUnbalancedTransactions(t *testing.T) {
	b := bucketsOf(BucketRest,
		amountRec("T1", 100, 100),
		amountRec("T2", 200, 150), // unbalanced by 50
	)

	sb := ValidateBalances(b, true)["Additional Data"]

	assert.InDelta(t, 300, sb.TotalDebit, 1e-9)
	assert.InDelta(t, 250, sb.TotalCredit, 1e-9)
	assert.Equal(t, 1, sb.UnbalancedCount)
	assert.False(t, sb.Balanced)
}

func TestValidateBalances_GroupsRowsByTransaction(t *testing.T) {
	// Individually lopsided rows of one transaction balance as a group.
	b := bucketsOf(BucketAds,
		amountRec("T1", 100, 0),
		amountRec("T1", 0, 60),
		amountRec("T1", 0, 40),
	)

	sb := ValidateBalances(b, true)["Advertisements"]

	require.Len(t, sb.Transactions, 1)
	tb := sb.Transactions[0]
	assert.Equal(t, "T1", tb.TransactionID)
	assert.InDelta(t, 100, tb.Debit, 1e-9)
	assert.InDelta(t, 100, tb.Credit, 1e-9)
	assert.True(t, tb.Balanced)
}

func TestValidateBalances_FirstSeenTransactionOrder(t *testing.T) {
	b := bucketsOf(BucketWithoutAds,
		amountRec("B", 1, 1),
		amountRec("A", 2, 2),
		amountRec("B", 3, 3),
	)

	sb := ValidateBalances(b, true)["Without Advertisements"]

	require.Len(t, sb.Transactions, 2)
	assert.Equal(t, "B", sb.Transactions[0].TransactionID)
	assert.Equal(t, "A", sb.Transactions[1].TransactionID)
}

func TestValidateBalances_SkipsEmptyBuckets(t *testing.T) {
	b := bucketsOf(BucketRest, amountRec("T1", 1, 1))

	results := ValidateBalances(b, true)

	assert.Len(t, results, 1)
	assert.Contains(t, results, "Additional Data")
}

func TestValidateBalances_DegradedWithoutTransactionIDs(t *testing.T) {
	b := bucketsOf(BucketRest,
		amountRec("", 100, 0),
		amountRec("", 0, 100),
	)

	sb := ValidateBalances(b, false)["Additional Data"]

	assert.True(t, sb.Degraded)
	assert.True(t, sb.Balanced)
	assert.Nil(t, sb.Transactions)
	assert.InDelta(t, 100, sb.TotalDebit, 1e-9)
	assert.InDelta(t, 100, sb.TotalCredit, 1e-9)
}
