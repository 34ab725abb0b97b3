// Package api provides HTTP API server implementation for the register service.
package api

import (
	"net/http"

	"github.com/pharos-project/register/internal/register"
)

// handleGetDataset handles GET /v1/projects/{projectID}/datasets/{datasetID}.
func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("projectID")
	datasetID := r.PathValue("datasetID")

	item, found, err := s.metadataStore.Get(r.Context(), projectID, datasetID)
	if err != nil {
		s.logMetadataError(r, "Failed to get dataset", err)
		WriteErrorResponse(w, r, s.logger, InternalServerError("Failed to get dataset"))

		return
	}

	if !found {
		WriteErrorResponse(w, r, s.logger, NotFound("Dataset not found"))

		return
	}

	dataset, err := register.DatasetFromTableItem(item)
	if err != nil {
		s.logMetadataError(r, "Failed to decode dataset", err)
		WriteErrorResponse(w, r, s.logger, InternalServerError("Failed to decode dataset"))

		return
	}

	writeJSON(w, r, s.logger, http.StatusOK, dataset)
}

// handlePutDataset handles PUT /v1/projects/{projectID}/datasets/{datasetID}:
// replaces the dataset row wholesale. The path's projectID/datasetID are
// authoritative; any matching fields in the body are ignored.
func (s *Server) handlePutDataset(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("projectID")
	datasetID := r.PathValue("datasetID")

	raw, problem := s.readBody(r)
	if problem != nil {
		WriteErrorResponse(w, r, s.logger, problem)

		return
	}

	dataset, err := register.ParseDataset(raw)
	if err != nil {
		WriteErrorResponse(w, r, s.logger, unmarshalProblem(err))

		return
	}

	dataset.ProjectID = projectID
	dataset.DatasetID = datasetID

	item, err := dataset.ToTableItem()
	if err != nil {
		s.logMetadataError(r, "Failed to encode dataset", err)
		WriteErrorResponse(w, r, s.logger, InternalServerError("Failed to encode dataset"))

		return
	}

	if err := s.metadataStore.Put(r.Context(), projectID, datasetID, item); err != nil {
		s.logMetadataError(r, "Failed to save dataset", err)
		WriteErrorResponse(w, r, s.logger, InternalServerError("Failed to save dataset"))

		return
	}

	writeJSON(w, r, s.logger, http.StatusOK, dataset)
}
