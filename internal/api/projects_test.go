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

func TestHandlePutProject_ThenGetProject_RoundTrips(t *testing.T) {
	server := newTestServer(t)

	body := register.Project{Name: "Bat Surveillance", DatasetIDs: []string{}}

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	putReq := httptest.NewRequest(http.MethodPut, "/v1/projects/proj-1", bytes.NewReader(raw))
	putReq.Header.Set("Content-Type", "application/json")
	putReq.SetPathValue("id", "proj-1")

	putRec := httptest.NewRecorder()
	server.handlePutProject(putRec, putReq)
	require.Equal(t, http.StatusOK, putRec.Code)

	getReq := httptest.NewRequest(http.MethodGet, "/v1/projects/proj-1", nil)
	getReq.SetPathValue("id", "proj-1")

	getRec := httptest.NewRecorder()
	server.handleGetProject(getRec, getReq)
	require.Equal(t, http.StatusOK, getRec.Code)

	var project register.Project

	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &project))
	assert.Equal(t, "proj-1", project.ProjectID)
	assert.Equal(t, "Bat Surveillance", project.Name)
}

func TestHandleGetProject_NotFound(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/projects/missing", nil)
	req.SetPathValue("id", "missing")

	rec := httptest.NewRecorder()
	server.handleGetProject(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
