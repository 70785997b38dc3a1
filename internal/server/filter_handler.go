package server

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/arenabooks/journal-order/internal/config"
	"github.com/arenabooks/journal-order/internal/csvparser"
	"github.com/arenabooks/journal-order/internal/filter"
	"github.com/arenabooks/journal-order/internal/session"
	"github.com/gin-gonic/gin"
)

// filterHandler serves the independent CSV-filter feature routes.
type filterHandler struct {
	cfg      *config.Config
	log      *slog.Logger
	sessions *session.Store
}

// filterSession keeps the raw parsed upload (so toggles can be re-applied
// without re-uploading) plus the latest filter result.
type filterSession struct {
	Data         *csvparser.CSVData
	Result       *filter.Result
	OriginalName string
	UploadTime   time.Time
}

// filterResponse is the JSON shape of filter responses.
type filterResponse struct {
	SessionID        string         `json:"session_id"`
	OriginalFilename string         `json:"original_filename"`
	UploadTime       string         `json:"upload_time"`
	Result           *filter.Result `json:"result"`
}

// togglesRequest carries the four optional boolean toggles; absent fields
// default to enabled, matching the feature's upload-time behavior.
type togglesRequest struct {
	StatusActive        *bool `json:"status_active"`
	TypeSale            *bool `json:"type_sale"`
	PriceNonZero        *bool `json:"price_not_zero"`
	PaymentTypeExternal *bool `json:"payment_type_external"`
}

func (r togglesRequest) toggles() filter.Toggles {
	t := filter.DefaultToggles()
	if r.StatusActive != nil {
		t.StatusActive = *r.StatusActive
	}
	if r.TypeSale != nil {
		t.TypeSale = *r.TypeSale
	}
	if r.PriceNonZero != nil {
		t.PriceNonZero = *r.PriceNonZero
	}
	if r.PaymentTypeExternal != nil {
		t.PaymentTypeExternal = *r.PaymentTypeExternal
	}
	return t
}

// Upload handles POST /api/filter: parses the CSV straight from the
// request and applies the default filters.
func (h *filterHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file selected"})
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type, please upload a CSV file"})
		return
	}

	src, err := fh.Open()
	if err != nil {
		h.log.Error("failed to open upload", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
		return
	}
	defer src.Close()

	data, err := csvparser.ParseReader(src, csvparser.Settings{})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse the file"})
		return
	}

	entry := &filterSession{
		Data:         data,
		Result:       filter.Apply(data, filter.DefaultToggles(), h.cfg.Filter),
		OriginalName: fh.Filename,
		UploadTime:   time.Now(),
	}
	id := h.sessions.Put(entry)

	c.JSON(http.StatusCreated, h.response(id, entry))
}

// Apply handles POST /api/filter/:id: re-applies the filters with the
// requested toggles.
func (h *filterHandler) Apply(c *gin.Context) {
	id := c.Param("id")
	entry, ok := h.lookup(c, id)
	if !ok {
		return
	}

	var req togglesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter request"})
		return
	}

	entry.Result = filter.Apply(entry.Data, req.toggles(), h.cfg.Filter)
	c.JSON(http.StatusOK, h.response(id, entry))
}

// Rows handles GET /api/filter/:id/rows: the filtered rows as CSV, with
// toggles taken from query parameters (absent means enabled).
func (h *filterHandler) Rows(c *gin.Context) {
	entry, ok := h.lookup(c, c.Param("id"))
	if !ok {
		return
	}

	result := filter.Apply(entry.Data, queryToggles(c), h.cfg.Filter)

	name := fmt.Sprintf("filtered_data_%s.csv", time.Now().Format("20060102_150405"))
	writeRowsCSV(c, name, result.Columns, result.Rows)
}

// SummaryCSV handles GET /api/filter/:id/summary: the latest grouped
// summary as CSV.
func (h *filterHandler) SummaryCSV(c *gin.Context) {
	entry, ok := h.lookup(c, c.Param("id"))
	if !ok {
		return
	}

	summary := entry.Result.Summary
	if summary == nil || len(summary.Rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no summary data to download"})
		return
	}

	name := fmt.Sprintf("summary_data_%s.csv", time.Now().Format("20060102_150405"))
	writeRowsCSV(c, name, summary.Columns, summary.Rows)
}

// queryToggles reads the four boolean query parameters; anything except
// the literal "false" counts as enabled.
func queryToggles(c *gin.Context) filter.Toggles {
	enabled := func(name string) bool {
		return c.DefaultQuery(name, "true") != "false"
	}
	return filter.Toggles{
		StatusActive:        enabled("status_active"),
		TypeSale:            enabled("type_sale"),
		PriceNonZero:        enabled("price_not_zero"),
		PaymentTypeExternal: enabled("payment_type_external"),
	}
}

// writeRowsCSV streams header-keyed rows as a CSV attachment.
func writeRowsCSV(c *gin.Context, filename string, columns []string, rows []map[string]string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "text/csv; charset=utf-8")

	w := csv.NewWriter(c.Writer)
	_ = w.Write(columns)
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = row[col]
		}
		_ = w.Write(record)
	}
	w.Flush()
}

// lookup fetches the filter session or writes the 404 response.
func (h *filterHandler) lookup(c *gin.Context, id string) (*filterSession, bool) {
	v, err := h.sessions.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "results not found"})
		return nil, false
	}
	entry, ok := v.(*filterSession)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "results not found"})
		return nil, false
	}
	return entry, true
}

// response builds the JSON body shared by Upload and Apply.
func (h *filterHandler) response(id string, entry *filterSession) filterResponse {
	return filterResponse{
		SessionID:        id,
		OriginalFilename: entry.OriginalName,
		UploadTime:       entry.UploadTime.Format("2006-01-02 15:04:05"),
		Result:           entry.Result,
	}
}
