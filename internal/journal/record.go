// =============================================================================
// Journal Order Builder - Record Model
// =============================================================================
//
// This file defines the typed tabular model the pipeline works on. The
// ticketing export addresses fields by source header names; once loaded,
// every accounting-relevant field lives on the Record struct so the rest of
// the pipeline gets compile-time checked field access. Columns the pipeline
// does not interpret are carried through as ordered extras and reappear
// unchanged on the output sheets.
//
// =============================================================================

package journal

import "time"

// =============================================================================
// SOURCE COLUMN VOCABULARY
// =============================================================================
// Header names as they appear in the ticketing system's CSV export.

const (
	SrcTransactionID = "InstallmentTransactionId"
	SrcDate          = "InstallmentDate"
	SrcProduct       = "InstallmentProducts"
	SrcDebit         = "InstallmentPaymentPrice"
	SrcCredit        = "InstallmentProductPrice"
	SrcDebitAccount  = "InstallmentPaymentExtRef"
	SrcCreditAccount = "InstallmentProductExtRef"
)

// droppedColumns are source columns removed during normalization when
// present. Their absence is tolerated.
var droppedColumns = []string{
	"Installment Ticket Id",
	"InstallmentValueDate",
	"Installments",
}

// =============================================================================
// OUTPUT COLUMN VOCABULARY
// =============================================================================
// Accounting column names used on the generated sheets.

const (
	ColSeq           = "No."
	ColTransaction   = "transaction"
	ColDate          = "transaction date"
	ColProduct       = "product name"
	ColDebit         = "debit"
	ColCredit        = "credit"
	ColDebitAccount  = "debit account"
	ColCreditAccount = "credit account"
	ColOrderDate     = "order date"
	ColSheet         = "sheet"
	ColLookupURL     = "transaction link"
)

// Summary sheet column names.
const (
	SumColOrderDate     = "order date"
	SumColDebitAccount  = "debit account"
	SumColCreditAccount = "credit account"
	SumColProduct       = "product name"
	SumColDebitTotal    = "total debit"
	SumColCreditTotal   = "total credit"
)

// =============================================================================
// BUCKET NAMES
// =============================================================================

// BucketName identifies one of the three row partitions.
type BucketName string

const (
	BucketWithoutAds BucketName = "without_ad"
	BucketAds        BucketName = "advertisement"
	BucketRest       BucketName = "rest"
)

// DisplayName returns the human-readable sheet name used in balance
// reports and the problematic-transactions table.
func (n BucketName) DisplayName() string {
	switch n {
	case BucketWithoutAds:
		return "Without Advertisements"
	case BucketAds:
		return "Advertisements"
	case BucketRest:
		return "Additional Data"
	}
	return string(n)
}

// =============================================================================
// RECORD AND TABLE STRUCTURES
// =============================================================================

// Record is one input row in typed form. It is immutable once loaded
// except for the normalization fields (Seq, DateText, the coerced credit
// account).
type Record struct {
	// Seq is the 1-based sequence number within a bucket. Assigned by the
	// normalizer after row filtering.
	Seq int

	// TransactionID groups rows belonging to one payment transaction.
	TransactionID string

	// Date is the parsed transaction date (day-first source format).
	Date time.Time

	// DateText is the normalized YYYY-MM-DD representation of Date.
	// Empty when the date is missing.
	DateText string

	// Product is the sold product's name.
	Product string

	// Debit is the payment-side amount.
	Debit float64

	// Credit is the product-side amount.
	Credit float64

	// DebitAccount is the payment account reference. This is also the
	// field the segmenter forward-fills to build the grouping key.
	DebitAccount string

	// CreditAccount is the product account reference. Within candidate
	// rows this is rewritten to its numeric coercion by the segmenter.
	CreditAccount string

	// Extra holds passthrough columns the pipeline does not interpret,
	// keyed by source header.
	Extra map[string]string
}

// Table is the loaded input in row order.
type Table struct {
	// Records are the rows in file order.
	Records []Record

	// ExtraColumns lists the passthrough column headers in file order.
	ExtraColumns []string

	// HasTransactionID reports whether the transaction id column was
	// present in the source. When false the balance validator falls back
	// to plain column sums.
	HasTransactionID bool

	// MinDate and MaxDate span the transaction dates of the whole input.
	// The artifact file name and the rest sheet name derive from them.
	MinDate time.Time
	MaxDate time.Time

	// Issues collects the non-fatal cell-level degradations encountered
	// while loading.
	Issues []*FormatError

	// SourceFile is the path the table was loaded from, when known.
	SourceFile string
}

// Bucket is a named, ordered collection of records sharing a
// classification outcome. Membership is decided by the segmenter only.
type Bucket struct {
	// Name identifies the bucket.
	Name BucketName

	// Records are the bucket's rows, preserving original file order.
	Records []Record

	// ExtraColumns lists the passthrough columns on this bucket's sheet.
	// After normalization all three buckets carry the identical union.
	ExtraColumns []string

	// OrderDate is the bucket-local nominal accounting date: the maximum
	// DateText in the bucket, empty for an empty bucket.
	OrderDate string
}

// Buckets holds the three mutually exclusive partitions of one input.
type Buckets struct {
	WithoutAds *Bucket
	Ads        *Bucket
	Rest       *Bucket
}

// All returns the buckets in their fixed reporting order.
func (b *Buckets) All() []*Bucket {
	return []*Bucket{b.WithoutAds, b.Ads, b.Rest}
}
