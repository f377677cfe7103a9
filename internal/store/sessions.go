package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blackroad/journeymap/internal/domain"
)

// ErrSessionNotFound is returned when a session id matches no row.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionClosed is returned when closing a session that already has an
// end time. Closed sessions are immutable.
var ErrSessionClosed = errors.New("session already closed")

// SessionStore defines operations on customer sessions.
type SessionStore interface {
	// Create persists a new open session.
	Create(ctx context.Context, sess *domain.Session) error
	// Get returns a session by id, or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Close transitions an open session to closed, setting its end time and
	// outcome. Returns ErrSessionClosed when the session is already closed and
	// ErrSessionNotFound when it does not exist.
	Close(ctx context.Context, id, endTime string, converted bool, conversionValue float64) error
}

// SQLiteSessionStore implements SessionStore backed by SQLite.
type SQLiteSessionStore struct {
	db *sql.DB
}

// NewSQLiteSessionStore creates a new SQLiteSessionStore.
func NewSQLiteSessionStore(db *sql.DB) *SQLiteSessionStore {
	return &SQLiteSessionStore{db: db}
}

// Create inserts an open session row.
func (s *SQLiteSessionStore) Create(ctx context.Context, sess *domain.Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, customer_id, start_time, channel, device, converted, conversion_value)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.CustomerID, sess.StartTime, sess.Channel, sess.Device,
		boolToInt(sess.Converted), sess.ConversionValue,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Get returns one session by id.
func (s *SQLiteSessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	var sess domain.Session
	var endTime sql.NullString
	var converted int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, customer_id, start_time, end_time, channel, device, converted, conversion_value
		 FROM sessions WHERE id = ?`,
		id,
	).Scan(&sess.ID, &sess.CustomerID, &sess.StartTime, &endTime,
		&sess.Channel, &sess.Device, &converted, &sess.ConversionValue)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	sess.EndTime = endTime.String
	sess.Converted = converted != 0
	return &sess, nil
}

// Close sets the end time and outcome of an open session. The update is
// guarded on end_time IS NULL so a second close cannot overwrite the outcome.
func (s *SQLiteSessionStore) Close(ctx context.Context, id, endTime string, converted bool, conversionValue float64) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET end_time = ?, converted = ?, conversion_value = ?
		 WHERE id = ? AND end_time IS NULL`,
		endTime, boolToInt(converted), conversionValue, id,
	)
	if err != nil {
		return fmt.Errorf("close session: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		// Disambiguate: already closed vs. unknown id.
		var exists int
		if err := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM sessions WHERE id = ?`, id,
		).Scan(&exists); err != nil {
			return fmt.Errorf("check session: %w", err)
		}
		if exists > 0 {
			return ErrSessionClosed
		}
		return ErrSessionNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
