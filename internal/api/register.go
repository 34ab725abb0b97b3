// Package api provides HTTP API server implementation for the register service.
package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pharos-project/register/internal/api/middleware"
	"github.com/pharos-project/register/internal/register"
	"github.com/pharos-project/register/internal/sync"
)

// handlePutRegisterPage handles PUT .../register: merges a page of
// incoming records into the stored page, recomputes its release report,
// and publishes a RegisterEvent if a publisher is configured.
//
// Request validation (returns 4xx):
//   - 415 Unsupported Media Type: Content-Type must be application/json
//   - 413 Payload Too Large: Request body exceeds MaxRequestSize
//   - 400 Bad Request: Empty body, invalid JSON, or missing pageID
func (s *Server) handlePutRegisterPage(w http.ResponseWriter, r *http.Request) {
	correlationID := middleware.GetCorrelationID(r.Context())
	projectID := r.PathValue("projectID")
	datasetID := r.PathValue("datasetID")

	if !hasJSONContentType(r.Header.Get("Content-Type")) {
		WriteErrorResponse(w, r, s.logger, UnsupportedMediaType("Content-Type must be application/json"))

		return
	}

	req, problem := s.parseRegisterPageRequest(r)
	if problem != nil {
		WriteErrorResponse(w, r, s.logger, problem)

		return
	}

	if req.PageID == "" {
		WriteErrorResponse(w, r, s.logger, BadRequest("pageID cannot be empty"))

		return
	}

	modifiedBy := "anonymous"
	if pluginCtx, ok := middleware.GetPluginContext(r.Context()); ok {
		modifiedBy = pluginCtx.PluginID
	}

	version := time.Now().UnixNano()

	incoming := make(map[string]*register.Record, len(req.Records))
	for recordID, raw := range req.Records {
		incoming[recordID] = register.ParseRecord(raw, modifiedBy, version, s.resolver)
	}

	existing, err := s.registerStore.LoadPage(r.Context(), projectID, datasetID, req.PageID)
	if err != nil {
		s.logger.Error("Failed to load register page",
			slog.String("correlation_id", correlationID),
			slog.String("error", err.Error()),
		)
		WriteErrorResponse(w, r, s.logger, InternalServerError("Failed to load register page"))

		return
	}

	merged := mergeRecordSets(existing, incoming)

	if err := s.registerStore.SavePage(r.Context(), projectID, datasetID, req.PageID, merged); err != nil {
		s.logger.Error("Failed to save register page",
			slog.String("correlation_id", correlationID),
			slog.String("error", err.Error()),
		)
		WriteErrorResponse(w, r, s.logger, InternalServerError("Failed to save register page"))

		return
	}

	reg := &register.Register{Records: merged}
	report := reg.GetReleaseReport()

	s.publishRegisterEvent(r, projectID, datasetID, req.PageID, report.ReleaseStatus)

	writeJSON(w, r, s.logger, http.StatusOK, RegisterPageResponse{
		ProjectID:     projectID,
		DatasetID:     datasetID,
		PageID:        req.PageID,
		Records:       merged,
		ReleaseReport: report,
	})
}

// mergeRecordSets reconciles an existing page's records with an incoming
// batch, one record id at a time (register.MergeRecords).
func mergeRecordSets(existing, incoming map[string]*register.Record) map[string]*register.Record {
	merged := make(map[string]*register.Record, len(existing)+len(incoming))

	for id, record := range existing {
		merged[id] = record
	}

	for id, record := range incoming {
		merged[id] = register.MergeRecords(merged[id], record)
	}

	return merged
}

// publishRegisterEvent publishes a best-effort RegisterEvent: publish
// failures are logged but never fail the request, since the merge has
// already been durably persisted.
func (s *Server) publishRegisterEvent(
	r *http.Request,
	projectID, datasetID, pageID string,
	status register.DatasetReleaseStatus,
) {
	if s.publisher == nil {
		return
	}

	correlationID := middleware.GetCorrelationID(r.Context())
	event := sync.NewRegisterEvent(sync.EventRegisterUpdated, projectID, datasetID, pageID, time.Now().UTC(), status)

	if err := s.publisher.Publish(r.Context(), event); err != nil {
		s.logger.Error("Failed to publish register event",
			slog.String("correlation_id", correlationID),
			slog.String("error", err.Error()),
		)
	}
}

// parseRegisterPageRequest parses and validates the HTTP request body.
func (s *Server) parseRegisterPageRequest(r *http.Request) (*RegisterPageRequest, *ProblemDetail) {
	if r.ContentLength > 0 && r.ContentLength > s.config.MaxRequestSize {
		return nil, PayloadTooLarge("Request body exceeds maximum size")
	}

	if r.ContentLength == 0 {
		return nil, BadRequest("Request body cannot be empty")
	}

	var req RegisterPageRequest

	decoder := json.NewDecoder(io.LimitReader(r.Body, s.config.MaxRequestSize))
	if err := decoder.Decode(&req); err != nil {
		return nil, BadRequest("Invalid JSON: " + err.Error())
	}

	return &req, nil
}

// handleGetReleaseReport handles GET .../release-report: loads every
// stored page for the dataset and merges their release reports into one
// dataset-wide aggregate (register.MergeReleaseReports).
func (s *Server) handleGetReleaseReport(w http.ResponseWriter, r *http.Request) {
	correlationID := middleware.GetCorrelationID(r.Context())
	projectID := r.PathValue("projectID")
	datasetID := r.PathValue("datasetID")

	pageIDs, err := s.registerStore.ListPages(r.Context(), projectID, datasetID)
	if err != nil {
		s.logger.Error("Failed to list register pages",
			slog.String("correlation_id", correlationID),
			slog.String("error", err.Error()),
		)
		WriteErrorResponse(w, r, s.logger, InternalServerError("Failed to list register pages"))

		return
	}

	var report *register.ReleaseReport

	for _, pageID := range pageIDs {
		records, err := s.registerStore.LoadPage(r.Context(), projectID, datasetID, pageID)
		if err != nil {
			s.logger.Error("Failed to load register page",
				slog.String("correlation_id", correlationID),
				slog.String("page_id", pageID),
				slog.String("error", err.Error()),
			)
			WriteErrorResponse(w, r, s.logger, InternalServerError("Failed to load register page"))

			return
		}

		pageReg := &register.Register{Records: records}
		pageReport := pageReg.GetReleaseReport()

		if report == nil {
			report = pageReport
		} else {
			report = register.MergeReleaseReports(report, pageReport)
		}
	}

	if report == nil {
		report = register.NewReleaseReport()
	}

	writeJSON(w, r, s.logger, http.StatusOK, ReleaseReportResponse{
		ProjectID:     projectID,
		DatasetID:     datasetID,
		PageCount:     len(pageIDs),
		ReleaseReport: report,
	})
}
