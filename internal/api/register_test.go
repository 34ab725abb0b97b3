package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharos-project/register/internal/aliasing"
	"github.com/pharos-project/register/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := LoadServerConfig()

	return NewServer(
		&cfg,
		nil,
		nil,
		storage.NewInMemoryMetadataStore(),
		storage.NewInMemoryRegisterStore(),
		aliasing.NewResolver(nil),
		nil,
	)
}

func TestHandlePutRegisterPage_StoresAndReturnsReport(t *testing.T) {
	server := newTestServer(t)

	body := RegisterPageRequest{
		PageID: "page-1",
		Records: map[string]map[string]string{
			"record-1": {
				"Host species": "Mus musculus",
				"Latitude":     "10.5",
				"Longitude":    "20.5",
			},
		},
	}

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/v1/projects/p1/datasets/d1/register", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("projectID", "p1")
	req.SetPathValue("datasetID", "d1")

	rec := httptest.NewRecorder()
	server.handlePutRegisterPage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RegisterPageResponse

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "page-1", resp.PageID)
	assert.Contains(t, resp.Records, "record-1")
	assert.NotNil(t, resp.ReleaseReport)
}

func TestHandlePutRegisterPage_RejectsNonJSON(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodPut, "/v1/projects/p1/datasets/d1/register", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "text/plain")
	req.SetPathValue("projectID", "p1")
	req.SetPathValue("datasetID", "d1")

	rec := httptest.NewRecorder()
	server.handlePutRegisterPage(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestHandleGetReleaseReport_AggregatesAcrossPages(t *testing.T) {
	server := newTestServer(t)

	putPage := func(pageID string, records map[string]map[string]string) {
		raw, err := json.Marshal(RegisterPageRequest{PageID: pageID, Records: records})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPut, "/v1/projects/p1/datasets/d1/register", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		req.SetPathValue("projectID", "p1")
		req.SetPathValue("datasetID", "d1")

		rec := httptest.NewRecorder()
		server.handlePutRegisterPage(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	putPage("page-1", map[string]map[string]string{
		"record-1": {
			"Collection day":   "15",
			"Collection month": "6",
			"Collection year":  "2024",
		},
	})
	putPage("page-2", map[string]map[string]string{
		"record-2": {"Latitude": "notanumber"},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/projects/p1/datasets/d1/release-report", nil)
	req.SetPathValue("projectID", "p1")
	req.SetPathValue("datasetID", "d1")

	rec := httptest.NewRecorder()
	server.handleGetReleaseReport(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReleaseReportResponse

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.PageCount)
	assert.Equal(t, 3, resp.ReleaseReport.SuccessCount)
	assert.Equal(t, 1, resp.ReleaseReport.FailCount)
}
