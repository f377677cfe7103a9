package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/blackroad/journeymap/internal/domain"
)

// DropoffStore defines operations on dropoff events.
type DropoffStore interface {
	// Insert persists a dropoff event. At most one exists per non-converted
	// session.
	Insert(ctx context.Context, ev *domain.DropoffEvent) error
	// Breakdown aggregates the dropoff events at one stage three ways over
	// the same rows: by reason, by hour of day, and by the channel of the
	// owning session. An unknown stage id yields empty aggregates.
	Breakdown(ctx context.Context, stageID string) (*domain.DropoffBreakdown, error)
}

// SQLiteDropoffStore implements DropoffStore backed by SQLite.
type SQLiteDropoffStore struct {
	db *sql.DB
}

// NewSQLiteDropoffStore creates a new SQLiteDropoffStore.
func NewSQLiteDropoffStore(db *sql.DB) *SQLiteDropoffStore {
	return &SQLiteDropoffStore{db: db}
}

// Insert persists one dropoff event row.
func (s *SQLiteDropoffStore) Insert(ctx context.Context, ev *domain.DropoffEvent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dropoff_events (id, session_id, stage_id, stage_name, timestamp, reason)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.SessionID, ev.StageID, ev.StageName, ev.Timestamp, ev.Reason,
	)
	if err != nil {
		return fmt.Errorf("insert dropoff: %w", err)
	}
	return nil
}

// Breakdown aggregates dropoffs for one stage.
func (s *SQLiteDropoffStore) Breakdown(ctx context.Context, stageID string) (*domain.DropoffBreakdown, error) {
	b := &domain.DropoffBreakdown{
		StageID:   stageID,
		Reasons:   map[string]int{},
		TimeOfDay: map[int]int{},
		ByChannel: map[string]int{},
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT reason, COUNT(*) FROM dropoff_events
		 WHERE stage_id = ? GROUP BY reason`,
		stageID,
	)
	if err != nil {
		return nil, fmt.Errorf("dropoff reasons: %w", err)
	}
	for rows.Next() {
		var reason string
		var count int
		if err := rows.Scan(&reason, &count); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan reason: %w", err)
		}
		b.Reasons[reason] = count
		b.TotalDropoffs += count
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	// Hour of day extracted from the fixed-width timestamp format.
	rows, err = s.db.QueryContext(ctx,
		`SELECT CAST(SUBSTR(timestamp, 12, 2) AS INTEGER) AS hour, COUNT(*)
		 FROM dropoff_events WHERE stage_id = ?
		 GROUP BY hour ORDER BY hour`,
		stageID,
	)
	if err != nil {
		return nil, fmt.Errorf("dropoff hours: %w", err)
	}
	for rows.Next() {
		var hour, count int
		if err := rows.Scan(&hour, &count); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan hour: %w", err)
		}
		b.TimeOfDay[hour] = count
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	rows, err = s.db.QueryContext(ctx,
		`SELECT s.channel, COUNT(*)
		 FROM dropoff_events de
		 JOIN sessions s ON de.session_id = s.id
		 WHERE de.stage_id = ?
		 GROUP BY s.channel`,
		stageID,
	)
	if err != nil {
		return nil, fmt.Errorf("dropoff channels: %w", err)
	}
	for rows.Next() {
		var channel string
		var count int
		if err := rows.Scan(&channel, &count); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		b.ByChannel[channel] = count
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	return b, nil
}
