package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/pharos-project/register/internal/register"
)

// ErrPageNil is returned when a nil page is passed to SavePage.
var ErrPageNil = errors.New("register page cannot be nil")

// RegisterStore persists paginated register data, addressed by
// (projectID, datasetID, pageID), with a store-then-query shape.
type RegisterStore interface {
	SavePage(ctx context.Context, projectID, datasetID, pageID string, records map[string]*register.Record) error
	LoadPage(ctx context.Context, projectID, datasetID, pageID string) (map[string]*register.Record, error)
	ListPages(ctx context.Context, projectID, datasetID string) ([]string, error)
	HealthCheck(ctx context.Context) error
}

type pageKey struct {
	projectID string
	datasetID string
	pageID    string
}

// InMemoryRegisterStore provides thread-safe in-memory storage for
// register pages, one map entry per (projectID, datasetID, pageID).
type InMemoryRegisterStore struct {
	mutex sync.RWMutex
	pages map[pageKey]map[string]*register.Record
}

// NewInMemoryRegisterStore creates a new empty in-memory register store.
func NewInMemoryRegisterStore() *InMemoryRegisterStore {
	return &InMemoryRegisterStore{
		pages: make(map[pageKey]map[string]*register.Record),
	}
}

// SavePage stores records as the given page, replacing whatever was
// there before. Callers are expected to have already merged against the
// existing page (see register.MergeRecords) before calling SavePage.
func (s *InMemoryRegisterStore) SavePage(
	_ context.Context,
	projectID, datasetID, pageID string,
	records map[string]*register.Record,
) error {
	if records == nil {
		return ErrPageNil
	}

	clone, err := clonePage(records)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.pages[pageKey{projectID, datasetID, pageID}] = clone

	return nil
}

// LoadPage retrieves the records stored for a page. Returns an empty,
// non-nil map if the page does not exist.
func (s *InMemoryRegisterStore) LoadPage(
	_ context.Context,
	projectID, datasetID, pageID string,
) (map[string]*register.Record, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	records, ok := s.pages[pageKey{projectID, datasetID, pageID}]
	if !ok {
		return map[string]*register.Record{}, nil
	}

	return clonePage(records)
}

// ListPages returns the page IDs stored for a dataset.
func (s *InMemoryRegisterStore) ListPages(_ context.Context, projectID, datasetID string) ([]string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	pageIDs := make([]string, 0)

	for key := range s.pages {
		if key.projectID == projectID && key.datasetID == datasetID {
			pageIDs = append(pageIDs, key.pageID)
		}
	}

	return pageIDs, nil
}

// HealthCheck always reports healthy for the in-memory store.
func (s *InMemoryRegisterStore) HealthCheck(_ context.Context) error {
	return nil
}

// PostgresRegisterStore implements RegisterStore backed by a single
// register_pages(project_id, dataset_id, page_id, payload jsonb) table,
// adapted from PersistentKeyStore's prepared-statement patterns.
type PostgresRegisterStore struct {
	conn *Connection
}

// NewPostgresRegisterStore wraps conn in a PostgresRegisterStore.
func NewPostgresRegisterStore(conn *Connection) *PostgresRegisterStore {
	return &PostgresRegisterStore{conn: conn}
}

// SavePage upserts the page's record set as a single JSONB payload.
func (s *PostgresRegisterStore) SavePage(
	ctx context.Context,
	projectID, datasetID, pageID string,
	records map[string]*register.Record,
) error {
	if records == nil {
		return ErrPageNil
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode register page: %w", err)
	}

	const query = `
		INSERT INTO register_pages (project_id, dataset_id, page_id, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (project_id, dataset_id, page_id) DO UPDATE SET payload = EXCLUDED.payload
	`

	if _, err := s.conn.ExecContext(ctx, query, projectID, datasetID, pageID, payload); err != nil {
		return fmt.Errorf("failed to upsert register page: %w", err)
	}

	return nil
}

// LoadPage retrieves and decodes the page's record set.
func (s *PostgresRegisterStore) LoadPage(
	ctx context.Context,
	projectID, datasetID, pageID string,
) (map[string]*register.Record, error) {
	const query = `
		SELECT payload FROM register_pages
		WHERE project_id = $1 AND dataset_id = $2 AND page_id = $3
	`

	var payload []byte

	err := s.conn.QueryRowContext(ctx, query, projectID, datasetID, pageID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return map[string]*register.Record{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query register page: %w", err)
	}

	records := map[string]*register.Record{}
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("failed to decode register page: %w", err)
	}

	return records, nil
}

// ListPages returns the page IDs stored for a dataset.
func (s *PostgresRegisterStore) ListPages(ctx context.Context, projectID, datasetID string) ([]string, error) {
	const query = `
		SELECT page_id FROM register_pages
		WHERE project_id = $1 AND dataset_id = $2
		ORDER BY page_id
	`

	rows, err := s.conn.QueryContext(ctx, query, projectID, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query register pages: %w", err)
	}

	defer func() {
		_ = rows.Close()
	}()

	pageIDs := make([]string, 0)

	for rows.Next() {
		var pageID string
		if err := rows.Scan(&pageID); err != nil {
			return nil, fmt.Errorf("failed to scan register page id: %w", err)
		}

		pageIDs = append(pageIDs, pageID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating register pages: %w", err)
	}

	return pageIDs, nil
}

// HealthCheck delegates to the underlying connection's health check.
func (s *PostgresRegisterStore) HealthCheck(ctx context.Context) error {
	return s.conn.HealthCheck(ctx)
}

// clonePage round-trips records through JSON to produce a deep copy,
// so a page handed back by LoadPage can't be mutated by the caller to
// affect the store's internal state.
func clonePage(records map[string]*register.Record) (map[string]*register.Record, error) {
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to copy register page: %w", err)
	}

	clone := map[string]*register.Record{}
	if err := json.Unmarshal(raw, &clone); err != nil {
		return nil, fmt.Errorf("failed to copy register page: %w", err)
	}

	return clone, nil
}
