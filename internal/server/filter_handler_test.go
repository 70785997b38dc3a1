package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const salesCSV = `Product,Id,Fan / Company,User Id,Price,Base price,Date,Status,Type,Payment type
Season Ticket,1,Acme,U1,100,90,01/02/2025,Active,Sale,PayType_External payment cards
Season Ticket,2,Acme,U1,100,90,02/02/2025,Cancelled,Sale,PayType_External payment cards
Merch,3,Beta,U2,50,40,03/02/2025,Active,Sale,PayType_External payment cards
`

func uploadSales(t *testing.T, router *gin.Engine) (string, *httptest.ResponseRecorder) {
	t.Helper()
	rec := doUpload(t, router, "/api/filter", "sales.csv", salesCSV)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created.SessionID, rec
}

func TestFilterUpload_AppliesDefaultFilters(t *testing.T) {
	router := newTestRouter(t)

	_, rec := uploadSales(t, router)

	var resp struct {
		Result struct {
			TotalRows    int `json:"total_rows"`
			OriginalRows int `json:"original_rows"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// The cancelled sale falls out under the default toggles.
	assert.Equal(t, 2, resp.Result.TotalRows)
	assert.Equal(t, 3, resp.Result.OriginalRows)
}

func TestFilterUpload_RejectsNonCSV(t *testing.T) {
	router := newTestRouter(t)

	rec := doUpload(t, router, "/api/filter", "sales.pdf", salesCSV)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFilterApply_TogglesChangeTheResult(t *testing.T) {
	router := newTestRouter(t)
	id, _ := uploadSales(t, router)

	body := strings.NewReader(`{"status_active": false}`)
	req := httptest.NewRequest(http.MethodPost, "/api/filter/"+id, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Result struct {
			TotalRows int `json:"total_rows"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Result.TotalRows)
}

func TestFilterApply_UnknownSession(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/filter/deadbeef", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFilterRows_CSVDownloadWithQueryToggles(t *testing.T) {
	router := newTestRouter(t)
	id, _ := uploadSales(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/filter/"+id+"/rows?status_active=false", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	// Header plus all three rows with the status filter disabled.
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Fan / Company")
}

func TestFilterSummary_CSVDownload(t *testing.T) {
	router := newTestRouter(t)
	id, _ := uploadSales(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/filter/"+id+"/summary", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	// Two summary groups under the default filters.
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Amount (Count)")
}
