// =============================================================================
// Journal Order Builder - CSV Filter Feature
// =============================================================================
//
// An independent helper feature sharing only the upload/session/download
// plumbing with the journal pipeline: it takes the same kind of delimited
// export and applies four independent boolean row filters
//   - Status equals a fixed value ("Active")
//   - Type equals a fixed value ("Sale")
//   - every price-like column is numeric and non-zero
//   - Payment type equals a fixed value
// then projects a fixed set of display columns and optionally builds a
// grouped summary (by user / fan-company / product, counting rows and
// summing the price fields).
//
// This feature never touches the accounting pipeline.
//
// =============================================================================

package filter

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/arenabooks/journal-order/internal/config"
	"github.com/arenabooks/journal-order/internal/csvparser"
)

// Column names of the ticketing sales export.
const (
	colProduct     = "Product"
	colID          = "Id"
	colFanCompany  = "Fan / Company"
	colUserID      = "User Id"
	colPrice       = "Price"
	colBasePrice   = "Base price"
	colDate        = "Date"
	colStatus      = "Status"
	colType        = "Type"
	colPaymentType = "Payment type"

	colCount = "Amount (Count)"
)

// displayColumns is the fixed projection for filtered rows, in order.
// Columns absent from the input are simply skipped.
var displayColumns = []string{
	colProduct, colID, colFanCompany, colUserID, colPrice, colBasePrice, colDate,
}

// Toggles are the four independent row filters. Each filter only applies
// when its column exists in the input.
type Toggles struct {
	StatusActive        bool `json:"status_active"`
	TypeSale            bool `json:"type_sale"`
	PriceNonZero        bool `json:"price_not_zero"`
	PaymentTypeExternal bool `json:"payment_type_external"`
}

// DefaultToggles enables all four filters, the upload-time default.
func DefaultToggles() Toggles {
	return Toggles{StatusActive: true, TypeSale: true, PriceNonZero: true, PaymentTypeExternal: true}
}

// Result is the outcome of one filter application.
type Result struct {
	// Columns are the display columns present in the input, in order.
	Columns []string `json:"columns"`

	// Rows are the filtered rows, projected to Columns.
	Rows []map[string]string `json:"rows"`

	// Summary is the grouped summary of the filtered rows.
	Summary *Summary `json:"summary"`

	// TotalRows and OriginalRows count the rows after and before
	// filtering.
	TotalRows    int `json:"total_rows"`
	OriginalRows int `json:"original_rows"`
}

// Summary is the grouped aggregate of the filtered rows.
type Summary struct {
	// Columns are the summary columns in display order.
	Columns []string `json:"columns"`

	// Rows are the summary rows keyed by column name.
	Rows []map[string]string `json:"rows"`
}

// Apply filters the parsed export and builds the grouped summary.
func Apply(data *csvparser.CSVData, toggles Toggles, settings config.FilterSettings) *Result {
	priceCols := priceColumns(data.Headers)

	matched := csvparser.FilterRows(data, func(row map[string]string) bool {
		if toggles.StatusActive && data.HasColumn(colStatus) && row[colStatus] != settings.StatusValue {
			return false
		}
		if toggles.TypeSale && data.HasColumn(colType) && row[colType] != settings.TypeValue {
			return false
		}
		if toggles.PriceNonZero {
			for _, c := range priceCols {
				v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(row[c]), ",", ""), 64)
				if err != nil || v == 0 {
					return false
				}
			}
		}
		if toggles.PaymentTypeExternal && data.HasColumn(colPaymentType) && row[colPaymentType] != settings.PaymentTypeValue {
			return false
		}
		return true
	})

	columns := availableColumns(data, displayColumns)

	rows := make([]map[string]string, 0, len(matched))
	for _, src := range matched {
		row := make(map[string]string, len(columns))
		for _, c := range columns {
			if c == colDate {
				row[c] = normalizeDate(src[c])
			} else {
				row[c] = src[c]
			}
		}
		rows = append(rows, row)
	}

	return &Result{
		Columns:      columns,
		Rows:         rows,
		Summary:      buildSummary(rows, columns),
		TotalRows:    len(rows),
		OriginalRows: data.RowCount,
	}
}

// priceColumns returns every header whose name contains "price",
// case-insensitively.
func priceColumns(headers []string) []string {
	var cols []string
	for _, h := range headers {
		if strings.Contains(strings.ToLower(h), "price") {
			cols = append(cols, h)
		}
	}
	return cols
}

// availableColumns keeps the wanted columns that exist in the input,
// preserving the wanted order.
func availableColumns(data *csvparser.CSVData, wanted []string) []string {
	var cols []string
	for _, c := range wanted {
		if data.HasColumn(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// normalizeDate renders a date cell as YYYY-MM-DD. Values that fail all
// known layouts pass through unchanged.
func normalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	layouts := []string{
		"02/01/2006", "02/01/2006 15:04", "02/01/2006 15:04:05",
		"2006-01-02", "2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// =============================================================================
// GROUPED SUMMARY
// =============================================================================

// groupKey identifies one summary group across the available grouping
// columns.
type groupKey [3]string

// group accumulates one summary group.
type group struct {
	key       groupKey
	count     int
	price     float64
	basePrice float64
	firstDate string
}

// buildSummary groups the filtered rows by the available grouping columns
// and aggregates row counts, price sums and the first date.
func buildSummary(rows []map[string]string, columns []string) *Summary {
	grouping := intersect(columns, []string{colUserID, colFanCompany, colProduct})
	if len(grouping) == 0 || len(rows) == 0 {
		return &Summary{Columns: []string{}, Rows: []map[string]string{}}
	}

	hasPrice := contains(columns, colPrice)
	hasBase := contains(columns, colBasePrice)
	hasDate := contains(columns, colDate)

	groups := make(map[groupKey]*group)
	var order []groupKey
	for _, row := range rows {
		var k groupKey
		for i, c := range grouping {
			k[i] = row[c]
		}
		g, ok := groups[k]
		if !ok {
			g = &group{key: k}
			if hasDate {
				g.firstDate = row[colDate]
			}
			groups[k] = g
			order = append(order, k)
		}
		g.count++
		if hasPrice {
			g.price += parseNumeric(row[colPrice])
		}
		if hasBase {
			g.basePrice += parseNumeric(row[colBasePrice])
		}
	}

	sort.Slice(order, func(i, j int) bool {
		for n := 0; n < len(grouping); n++ {
			if order[i][n] != order[j][n] {
				return order[i][n] < order[j][n]
			}
		}
		return false
	})

	summaryCols := append([]string(nil), grouping...)
	summaryCols = append(summaryCols, colCount)
	if hasPrice {
		summaryCols = append(summaryCols, colPrice)
	}
	if hasBase {
		summaryCols = append(summaryCols, colBasePrice)
	}
	if hasDate {
		summaryCols = append(summaryCols, colDate)
	}

	summaryRows := make([]map[string]string, 0, len(order))
	for _, k := range order {
		g := groups[k]
		row := make(map[string]string, len(summaryCols))
		for i, c := range grouping {
			row[c] = g.key[i]
		}
		row[colCount] = strconv.Itoa(g.count)
		if hasPrice {
			row[colPrice] = strconv.FormatFloat(g.price, 'f', -1, 64)
		}
		if hasBase {
			row[colBasePrice] = strconv.FormatFloat(g.basePrice, 'f', -1, 64)
		}
		if hasDate {
			row[colDate] = g.firstDate
		}
		summaryRows = append(summaryRows, row)
	}

	return &Summary{Columns: summaryCols, Rows: summaryRows}
}

// parseNumeric parses a numeric cell, treating anything unparseable as
// zero.
func parseNumeric(raw string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// intersect keeps the wanted values present in have, in wanted order.
func intersect(have, wanted []string) []string {
	var out []string
	for _, w := range wanted {
		if contains(have, w) {
			out = append(out, w)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
