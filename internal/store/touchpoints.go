package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/blackroad/journeymap/internal/domain"
)

// TouchpointStore defines operations on the append-only touchpoint log.
type TouchpointStore interface {
	// Insert appends a touchpoint unconditionally. The session id is not
	// checked for existence; a dangling reference is the caller's problem,
	// not a domain error.
	Insert(ctx context.Context, tp *domain.Touchpoint) error
}

// SQLiteTouchpointStore implements TouchpointStore backed by SQLite.
type SQLiteTouchpointStore struct {
	db *sql.DB
}

// NewSQLiteTouchpointStore creates a new SQLiteTouchpointStore.
func NewSQLiteTouchpointStore(db *sql.DB) *SQLiteTouchpointStore {
	return &SQLiteTouchpointStore{db: db}
}

// Insert appends one touchpoint row. Metadata is serialized opaquely as JSON;
// nil metadata persists as an empty object.
func (s *SQLiteTouchpointStore) Insert(ctx context.Context, tp *domain.Touchpoint) error {
	meta := tp.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO touchpoints (id, session_id, customer_id, channel, page, event_type, timestamp, duration_ms, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tp.ID, tp.SessionID, tp.CustomerID, tp.Channel, tp.Page, tp.EventType,
		tp.Timestamp, tp.DurationMS, string(metaJSON),
	)
	if err != nil {
		return fmt.Errorf("insert touchpoint: %w", err)
	}
	return nil
}
