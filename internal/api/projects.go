// Package api provides HTTP API server implementation for the register service.
package api

import (
	"net/http"

	"github.com/pharos-project/register/internal/register"
	"github.com/pharos-project/register/internal/storage"
)

// handleGetProject handles GET /v1/projects/{id}.
func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	item, found, err := s.metadataStore.Get(r.Context(), id, storage.MetaSortKey)
	if err != nil {
		s.logMetadataError(r, "Failed to get project", err)
		WriteErrorResponse(w, r, s.logger, InternalServerError("Failed to get project"))

		return
	}

	if !found {
		WriteErrorResponse(w, r, s.logger, NotFound("Project not found"))

		return
	}

	project, err := register.ProjectFromTableItem(item)
	if err != nil {
		s.logMetadataError(r, "Failed to decode project", err)
		WriteErrorResponse(w, r, s.logger, InternalServerError("Failed to decode project"))

		return
	}

	writeJSON(w, r, s.logger, http.StatusOK, project)
}

// handlePutProject handles PUT /v1/projects/{id}: replaces the project
// row wholesale. The path's {id} is authoritative; any projectID in the
// body is ignored.
func (s *Server) handlePutProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	raw, problem := s.readBody(r)
	if problem != nil {
		WriteErrorResponse(w, r, s.logger, problem)

		return
	}

	project, err := register.ParseProject(raw)
	if err != nil {
		WriteErrorResponse(w, r, s.logger, unmarshalProblem(err))

		return
	}

	project.ProjectID = id

	item, err := project.ToTableItem()
	if err != nil {
		s.logMetadataError(r, "Failed to encode project", err)
		WriteErrorResponse(w, r, s.logger, InternalServerError("Failed to encode project"))

		return
	}

	if err := s.metadataStore.Put(r.Context(), id, storage.MetaSortKey, item); err != nil {
		s.logMetadataError(r, "Failed to save project", err)
		WriteErrorResponse(w, r, s.logger, InternalServerError("Failed to save project"))

		return
	}

	writeJSON(w, r, s.logger, http.StatusOK, project)
}
