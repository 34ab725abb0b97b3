// Package sync publishes register mutation events for downstream
// consumers (search indexing, notifications) over Kafka, and provides
// the consumer side for those same services (spec.md is silent on this;
// SPEC_FULL.md §6.3 adds it as the ambient stack's messaging concern).
package sync

import (
	"time"

	"github.com/pharos-project/register/internal/register"
)

// EventType identifies what happened to a register page.
type EventType string

const (
	// EventRegisterUpdated fires when PUT .../register merges new
	// records into a page.
	EventRegisterUpdated EventType = "register.updated"
	// EventReleaseStatusChanged names a change of a dataset's aggregate
	// ReleaseReport.ReleaseStatus. The PUT .../register handler publishes
	// only EventRegisterUpdated; no event of this type is published.
	EventReleaseStatusChanged EventType = "register.release_status_changed"
)

// RegisterEvent is published whenever a register page is merged and
// persisted, so downstream consumers (search indexing, notifications)
// can react without polling the store.
type RegisterEvent struct {
	Type           EventType                    `json:"type"`
	ProjectID      string                       `json:"projectID"`
	DatasetID      string                       `json:"datasetID"`
	PageID         string                       `json:"pageID"`
	IdempotencyKey string                       `json:"idempotencyKey"`
	OccurredAt     time.Time                    `json:"occurredAt"`
	ReleaseStatus  register.DatasetReleaseStatus `json:"releaseStatus,omitempty"`
}

// NewRegisterEvent builds a RegisterEvent and derives its idempotency key
// from project, dataset, page, occurredAt and event type, so calls with
// the same values yield the same key. The PUT .../register handler passes
// the current time as occurredAt, so a replayed request gets a new key.
func NewRegisterEvent(
	eventType EventType,
	projectID, datasetID, pageID string,
	occurredAt time.Time,
	releaseStatus register.DatasetReleaseStatus,
) RegisterEvent {
	key := idempotencyKey(
		projectID,
		datasetID,
		pageID,
		occurredAt.Format(time.RFC3339Nano),
		string(eventType),
	)

	return RegisterEvent{
		Type:           eventType,
		ProjectID:      projectID,
		DatasetID:      datasetID,
		PageID:         pageID,
		IdempotencyKey: key,
		OccurredAt:     occurredAt,
		ReleaseStatus:  releaseStatus,
	}
}
