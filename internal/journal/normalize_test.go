package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, 2, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize_FiltersOtherPaymentFromRestOnly(t *testing.T) {
	b := &Buckets{
		WithoutAds: &Bucket{Name: BucketWithoutAds, Records: []Record{
			{Product: "Other Payment", Date: day(1)},
		}},
		Ads: &Bucket{Name: BucketAds},
		Rest: &Bucket{Name: BucketRest, Records: []Record{
			{Product: "Merch", Date: day(1)},
			{Product: "Other Payment", Date: day(2)},
			{Product: "Scarf", Date: day(3)},
		}},
	}

	Normalize(b, settings())

	require.Len(t, b.Rest.Records, 2)
	assert.Equal(t, "Merch", b.Rest.Records[0].Product)
	assert.Equal(t, "Scarf", b.Rest.Records[1].Product)

	// The technical-row filter never applies outside the rest bucket.
	assert.Len(t, b.WithoutAds.Records, 1)
}

func TestNormalize_SequenceNumbersRestartPerBucket(t *testing.T) {
	b := &Buckets{
		WithoutAds: &Bucket{Name: BucketWithoutAds, Records: []Record{
			{Product: "A", Date: day(1)}, {Product: "B", Date: day(2)},
		}},
		Ads: &Bucket{Name: BucketAds, Records: []Record{
			{Product: "C", Date: day(1)},
		}},
		Rest: &Bucket{Name: BucketRest, Records: []Record{
			{Product: "Other Payment", Date: day(1)},
			{Product: "D", Date: day(2)},
		}},
	}

	Normalize(b, settings())

	assert.Equal(t, 1, b.WithoutAds.Records[0].Seq)
	assert.Equal(t, 2, b.WithoutAds.Records[1].Seq)
	assert.Equal(t, 1, b.Ads.Records[0].Seq)

	// Sequence numbers are assigned after filtering, so they stay contiguous.
	require.Len(t, b.Rest.Records, 1)
	assert.Equal(t, 1, b.Rest.Records[0].Seq)
}

func TestNormalize_DateTextAndOrderDate(t *testing.T) {
	b := &Buckets{
		WithoutAds: &Bucket{Name: BucketWithoutAds, Records: []Record{
			{Product: "A", Date: day(28)},
			{Product: "B", Date: day(3)},
			{Product: "C"}, // missing date
		}},
		Ads:  &Bucket{Name: BucketAds},
		Rest: &Bucket{Name: BucketRest},
	}

	Normalize(b, settings())

	assert.Equal(t, "2025-02-28", b.WithoutAds.Records[0].DateText)
	assert.Equal(t, "2025-02-03", b.WithoutAds.Records[1].DateText)
	assert.Equal(t, "", b.WithoutAds.Records[2].DateText)

	assert.Equal(t, "2025-02-28", b.WithoutAds.OrderDate)
	assert.Equal(t, "", b.Ads.OrderDate)
}

func TestNormalize_DropsUnusedColumns(t *testing.T) {
	b := &Buckets{
		WithoutAds: &Bucket{
			Name:         BucketWithoutAds,
			ExtraColumns: []string{"Installments", "Notes", "InstallmentValueDate"},
			Records: []Record{{
				Product: "A", Date: day(1),
				Extra: map[string]string{"Installments": "3", "Notes": "keep", "InstallmentValueDate": "x"},
			}},
		},
		Ads:  &Bucket{Name: BucketAds},
		Rest: &Bucket{Name: BucketRest},
	}

	Normalize(b, settings())

	assert.Equal(t, []string{"Notes"}, b.WithoutAds.ExtraColumns)
	assert.NotContains(t, b.WithoutAds.Records[0].Extra, "Installments")
	assert.Equal(t, "keep", b.WithoutAds.Records[0].Extra["Notes"])
}

func TestNormalize_UnionsExtraColumnsAcrossBuckets(t *testing.T) {
	b := &Buckets{
		WithoutAds: &Bucket{
			Name:         BucketWithoutAds,
			ExtraColumns: []string{"Notes"},
			Records:      []Record{{Product: "A", Date: day(1), Extra: map[string]string{"Notes": "n"}}},
		},
		Ads: &Bucket{Name: BucketAds, ExtraColumns: []string{"Channel"}},
		Rest: &Bucket{
			Name:         BucketRest,
			ExtraColumns: []string{"Channel", "Region"},
			Records:      []Record{{Product: "B", Date: day(1), Extra: map[string]string{"Channel": "web", "Region": "north"}}},
		},
	}

	Normalize(b, settings())

	want := []string{"Notes", "Channel", "Region"}
	for _, bucket := range b.All() {
		assert.Equal(t, want, bucket.ExtraColumns)
	}

	// Records missing a unioned column get an empty cell.
	assert.Equal(t, "", b.WithoutAds.Records[0].Extra["Channel"])
	assert.Equal(t, "", b.Rest.Records[0].Extra["Notes"])
}
