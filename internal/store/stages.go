package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blackroad/journeymap/internal/domain"
)

// StageStore defines operations on funnel stage definitions.
type StageStore interface {
	// Upsert inserts the stage, replacing any existing stage with the same
	// name. Replacement is delete-and-reinsert: the old row's identity is not
	// preserved, so callers must not assume stage ids survive redefinition.
	Upsert(ctx context.Context, stage *domain.FunnelStage) error
	// ListByPosition returns all stages ordered ascending by position.
	ListByPosition(ctx context.Context) ([]domain.FunnelStage, error)
	// Get returns a stage by id, or nil when no such stage exists.
	Get(ctx context.Context, id string) (*domain.FunnelStage, error)
	// FirstByEntryEvent returns the lowest-position stage whose entry event
	// equals eventType, or nil when no stage matches.
	FirstByEntryEvent(ctx context.Context, eventType string) (*domain.FunnelStage, error)
	// VisitedBySession returns the distinct stages triggered by the session's
	// touchpoints, ordered ascending by position. Touchpoint order within the
	// session does not affect the result.
	VisitedBySession(ctx context.Context, sessionID string) ([]domain.FunnelStage, error)
}

// SQLiteStageStore implements StageStore backed by SQLite.
type SQLiteStageStore struct {
	db *sql.DB
}

// NewSQLiteStageStore creates a new SQLiteStageStore.
func NewSQLiteStageStore(db *sql.DB) *SQLiteStageStore {
	return &SQLiteStageStore{db: db}
}

// Upsert inserts or replaces a stage keyed by its unique name.
func (s *SQLiteStageStore) Upsert(ctx context.Context, stage *domain.FunnelStage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO funnel_stages (id, name, position, description, entry_event, exit_event)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		stage.ID, stage.Name, stage.Position, stage.Description, stage.EntryEvent, stage.ExitEvent,
	)
	if err != nil {
		return fmt.Errorf("upsert stage: %w", err)
	}
	return nil
}

// ListByPosition returns all stages in funnel order.
func (s *SQLiteStageStore) ListByPosition(ctx context.Context) ([]domain.FunnelStage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, position, description, entry_event, exit_event
		 FROM funnel_stages ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanStages(rows)
}

// Get returns one stage by id, nil when absent.
func (s *SQLiteStageStore) Get(ctx context.Context, id string) (*domain.FunnelStage, error) {
	var st domain.FunnelStage
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, position, description, entry_event, exit_event
		 FROM funnel_stages WHERE id = ?`,
		id,
	).Scan(&st.ID, &st.Name, &st.Position, &st.Description, &st.EntryEvent, &st.ExitEvent)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stage: %w", err)
	}
	return &st, nil
}

// FirstByEntryEvent returns the first position-ordered stage matching the
// event type. When several stages share an entry event the lowest position
// wins.
func (s *SQLiteStageStore) FirstByEntryEvent(ctx context.Context, eventType string) (*domain.FunnelStage, error) {
	var st domain.FunnelStage
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, position, description, entry_event, exit_event
		 FROM funnel_stages WHERE entry_event = ? ORDER BY position LIMIT 1`,
		eventType,
	).Scan(&st.ID, &st.Name, &st.Position, &st.Description, &st.EntryEvent, &st.ExitEvent)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("stage by entry event: %w", err)
	}
	return &st, nil
}

// VisitedBySession joins touchpoints to stages on entry_event and returns the
// deduplicated result in funnel order.
func (s *SQLiteStageStore) VisitedBySession(ctx context.Context, sessionID string) ([]domain.FunnelStage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT fs.id, fs.name, fs.position, fs.description, fs.entry_event, fs.exit_event
		 FROM touchpoints tp
		 JOIN funnel_stages fs ON tp.event_type = fs.entry_event
		 WHERE tp.session_id = ?
		 ORDER BY fs.position`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("visited stages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanStages(rows)
}

func scanStages(rows *sql.Rows) ([]domain.FunnelStage, error) {
	var stages []domain.FunnelStage
	for rows.Next() {
		var st domain.FunnelStage
		if err := rows.Scan(&st.ID, &st.Name, &st.Position, &st.Description, &st.EntryEvent, &st.ExitEvent); err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		stages = append(stages, st)
	}
	return stages, rows.Err()
}
