// Package api provides HTTP API server implementation for the register service.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/pharos-project/register/internal/api/middleware"
	"github.com/pharos-project/register/internal/register"
	"github.com/pharos-project/register/internal/storage"
)

// handleGetUser handles GET /v1/users/{id}: looks up the user row by
// its researcher id (the metadata table's partition key, MetaSortKey as
// sort key).
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	item, found, err := s.metadataStore.Get(r.Context(), id, storage.MetaSortKey)
	if err != nil {
		s.logMetadataError(r, "Failed to get user", err)
		WriteErrorResponse(w, r, s.logger, InternalServerError("Failed to get user"))

		return
	}

	if !found {
		WriteErrorResponse(w, r, s.logger, NotFound("User not found"))

		return
	}

	user, err := register.UserFromTableItem(item)
	if err != nil {
		s.logMetadataError(r, "Failed to decode user", err)
		WriteErrorResponse(w, r, s.logger, InternalServerError("Failed to decode user"))

		return
	}

	writeJSON(w, r, s.logger, http.StatusOK, user)
}

// handlePutUser handles PUT /v1/users/{id}: replaces the user row
// wholesale. The path's {id} is authoritative; any researcherID in the
// body is ignored.
func (s *Server) handlePutUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	raw, problem := s.readBody(r)
	if problem != nil {
		WriteErrorResponse(w, r, s.logger, problem)

		return
	}

	user, err := register.ParseUser(raw)
	if err != nil {
		WriteErrorResponse(w, r, s.logger, unmarshalProblem(err))

		return
	}

	user.ResearcherID = id

	item, err := user.ToTableItem()
	if err != nil {
		s.logMetadataError(r, "Failed to encode user", err)
		WriteErrorResponse(w, r, s.logger, InternalServerError("Failed to encode user"))

		return
	}

	if err := s.metadataStore.Put(r.Context(), id, storage.MetaSortKey, item); err != nil {
		s.logMetadataError(r, "Failed to save user", err)
		WriteErrorResponse(w, r, s.logger, InternalServerError("Failed to save user"))

		return
	}

	writeJSON(w, r, s.logger, http.StatusOK, user)
}

// readBody reads and size-limits a request body for a CRUD PUT endpoint.
func (s *Server) readBody(r *http.Request) ([]byte, *ProblemDetail) {
	if r.ContentLength > 0 && r.ContentLength > s.config.MaxRequestSize {
		return nil, PayloadTooLarge("Request body exceeds maximum size")
	}

	if r.ContentLength == 0 {
		return nil, BadRequest("Request body cannot be empty")
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, s.config.MaxRequestSize))
	if err != nil {
		return nil, BadRequest("Failed to read request body")
	}

	return raw, nil
}

// unmarshalProblem classifies a decode error: an unknown field is a
// semantically invalid-but-well-formed body (422), anything else is
// malformed JSON (400).
func unmarshalProblem(err error) *ProblemDetail {
	if errors.Is(err, register.ErrUnknownField) {
		return UnprocessableEntity(err.Error())
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return BadRequest("Invalid JSON: " + err.Error())
	}

	return BadRequest("Invalid JSON: " + err.Error())
}

// logMetadataError logs a metadata-store failure with correlation id.
func (s *Server) logMetadataError(r *http.Request, msg string, err error) {
	s.logger.Error(msg,
		slog.String("correlation_id", middleware.GetCorrelationID(r.Context())),
		slog.String("error", err.Error()),
	)
}
