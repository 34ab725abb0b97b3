package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharos-project/register/internal/register"
)

func TestHandlePutDataset_ThenGetDataset_RoundTrips(t *testing.T) {
	server := newTestServer(t)

	body := register.Dataset{Name: "2024 Rodent Survey", ReleaseStatus: register.ReleaseStatusUnreleased}

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	putReq := httptest.NewRequest(http.MethodPut, "/v1/projects/proj-1/datasets/ds-1", bytes.NewReader(raw))
	putReq.Header.Set("Content-Type", "application/json")
	putReq.SetPathValue("projectID", "proj-1")
	putReq.SetPathValue("datasetID", "ds-1")

	putRec := httptest.NewRecorder()
	server.handlePutDataset(putRec, putReq)
	require.Equal(t, http.StatusOK, putRec.Code)

	getReq := httptest.NewRequest(http.MethodGet, "/v1/projects/proj-1/datasets/ds-1", nil)
	getReq.SetPathValue("projectID", "proj-1")
	getReq.SetPathValue("datasetID", "ds-1")

	getRec := httptest.NewRecorder()
	server.handleGetDataset(getRec, getReq)
	require.Equal(t, http.StatusOK, getRec.Code)

	var dataset register.Dataset

	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &dataset))
	assert.Equal(t, "proj-1", dataset.ProjectID)
	assert.Equal(t, "ds-1", dataset.DatasetID)
	assert.Equal(t, "2024 Rodent Survey", dataset.Name)
}

func TestHandleGetDataset_NotFound(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/projects/proj-1/datasets/missing", nil)
	req.SetPathValue("projectID", "proj-1")
	req.SetPathValue("datasetID", "missing")

	rec := httptest.NewRecorder()
	server.handleGetDataset(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
