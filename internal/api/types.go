// Package api provides HTTP API server implementation for the register service.
package api

import (
	"github.com/pharos-project/register/internal/register"
)

type (
	// Version represents the API version response structure.
	Version struct {
		Version     string `json:"version"`
		ServiceName string `json:"serviceName"`
		BuildInfo   string `json:"buildInfo,omitempty"`
	}

	// HealthStatus represents the health check response structure.
	HealthStatus struct {
		Status      string `json:"status"`
		ServiceName string `json:"serviceName"`
		Version     string `json:"version"`
		Uptime      string `json:"uptime,omitempty"`
	}

	// RegisterPageRequest is the body of PUT .../register: a page of
	// records, each a map of field name (UI name, snake_case, or a
	// configured synonym) to raw string value.
	RegisterPageRequest struct {
		PageID  string                       `json:"pageID"`
		Records map[string]map[string]string `json:"records"`
	}

	// RegisterPageResponse returns the merged page and its freshly
	// recomputed release report.
	RegisterPageResponse struct {
		ProjectID     string                       `json:"projectID"`
		DatasetID     string                       `json:"datasetID"`
		PageID        string                       `json:"pageID"`
		Records       map[string]*register.Record  `json:"records"`
		ReleaseReport *register.ReleaseReport      `json:"releaseReport"`
	}

	// ReleaseReportResponse returns the dataset-wide release report
	// merged across every stored page.
	ReleaseReportResponse struct {
		ProjectID     string                  `json:"projectID"`
		DatasetID     string                  `json:"datasetID"`
		PageCount     int                     `json:"pageCount"`
		ReleaseReport *register.ReleaseReport `json:"releaseReport"`
	}
)
