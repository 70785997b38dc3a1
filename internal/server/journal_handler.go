package server

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/arenabooks/journal-order/internal/config"
	"github.com/arenabooks/journal-order/internal/journal"
	"github.com/arenabooks/journal-order/internal/session"
	"github.com/arenabooks/journal-order/pkg/utils"
	"github.com/gin-gonic/gin"
)

// journalHandler serves the journal pipeline routes.
type journalHandler struct {
	cfg      *config.Config
	log      *slog.Logger
	sessions *session.Store
}

// journalSession is what one processed upload leaves behind for the
// follow-up results/download requests.
type journalSession struct {
	Result       journal.Result
	OriginalName string
	UploadTime   time.Time
}

// journalResponse is the JSON shape of upload and results responses.
type journalResponse struct {
	SessionID        string                           `json:"session_id"`
	OriginalFilename string                           `json:"original_filename"`
	UploadTime       string                           `json:"upload_time"`
	Workbook         string                           `json:"workbook"`
	BucketRows       map[string]int                   `json:"bucket_rows"`
	Validation       map[string]*journal.SheetBalance `json:"validation"`
	Summary          []journal.SummaryRow             `json:"summary"`
	Problems         []journal.ProblemRow             `json:"problematic_transactions"`
}

// Upload handles POST /api/journal: accepts a CSV, runs the pipeline and
// stores the result under a new session id.
func (h *journalHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file selected"})
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type, please upload a CSV file"})
		return
	}
	if fh.Size > h.cfg.Server.MaxUploadMB<<20 {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("file too large, maximum size is %dMB", h.cfg.Server.MaxUploadMB),
		})
		return
	}

	path, err := utils.SaveUpload(fh, h.cfg.UploadDir)
	if err != nil {
		h.log.Error("failed to store upload", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store uploaded file"})
		return
	}
	// The upload is transient; the workbook artifact is what survives.
	defer utils.RemoveQuietly(path, h.log)

	result := journal.New(path, h.cfg, h.log).Run()
	if !result.Success {
		var parseErr *journal.ParseError
		if errors.As(result.Error, &parseErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": parseErr.Error()})
			return
		}
		h.log.Error("journal processing failed", "file", fh.Filename, "error", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process the file"})
		return
	}

	entry := &journalSession{
		Result:       result,
		OriginalName: fh.Filename,
		UploadTime:   time.Now(),
	}
	id := h.sessions.Put(entry)

	c.JSON(http.StatusCreated, h.response(id, entry))
}

// Results handles GET /api/journal/:id.
func (h *journalHandler) Results(c *gin.Context) {
	id := c.Param("id")
	entry, ok := h.lookup(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.response(id, entry))
}

// Workbook handles GET /api/journal/:id/workbook: the xlsx artifact as an
// attachment under its clean download name.
func (h *journalHandler) Workbook(c *gin.Context) {
	entry, ok := h.lookup(c, c.Param("id"))
	if !ok {
		return
	}

	if _, err := os.Stat(entry.Result.ArtifactPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "workbook not found"})
		return
	}
	c.FileAttachment(entry.Result.ArtifactPath, entry.Result.DownloadName)
}

// Problems handles GET /api/journal/:id/problems: the problematic
// transactions as a downloadable CSV.
func (h *journalHandler) Problems(c *gin.Context) {
	entry, ok := h.lookup(c, c.Param("id"))
	if !ok {
		return
	}

	problems := entry.Result.Problems
	if problems == nil || len(problems.Rows) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no problematic transactions to download"})
		return
	}

	name := fmt.Sprintf("problematic_transactions_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("Content-Type", "text/csv; charset=utf-8")

	w := csv.NewWriter(c.Writer)
	_ = w.Write(problems.Headers())
	for _, r := range problems.Rows {
		_ = w.Write([]string{
			strconv.Itoa(r.Seq), r.TransactionID, r.DateText, r.Product,
			strconv.FormatFloat(r.Debit, 'f', -1, 64),
			strconv.FormatFloat(r.Credit, 'f', -1, 64),
			r.DebitAccount, r.CreditAccount, r.Sheet, r.LookupURL,
		})
	}
	w.Flush()
}

// lookup fetches the journal session or writes the 404 response.
func (h *journalHandler) lookup(c *gin.Context, id string) (*journalSession, bool) {
	v, err := h.sessions.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "results not found"})
		return nil, false
	}
	entry, ok := v.(*journalSession)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "results not found"})
		return nil, false
	}
	return entry, true
}

// response builds the JSON body shared by Upload and Results.
func (h *journalHandler) response(id string, entry *journalSession) journalResponse {
	buckets := entry.Result.Buckets
	return journalResponse{
		SessionID:        id,
		OriginalFilename: entry.OriginalName,
		UploadTime:       entry.UploadTime.Format("2006-01-02 15:04:05"),
		Workbook:         entry.Result.DownloadName,
		BucketRows: map[string]int{
			string(journal.BucketWithoutAds): len(buckets.WithoutAds.Records),
			string(journal.BucketAds):        len(buckets.Ads.Records),
			string(journal.BucketRest):       len(buckets.Rest.Records),
		},
		Validation: entry.Result.Balance,
		Summary:    entry.Result.Summary.Rows,
		Problems:   entry.Result.Problems.Rows,
	}
}
