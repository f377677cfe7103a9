package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/blackroad/journeymap/internal/domain"
)

// PathStore defines operations on conversion path records.
type PathStore interface {
	// Insert persists a conversion path. One is created per session, at close.
	Insert(ctx context.Context, path *domain.ConversionPath) error
	// TopBySignature groups paths by signature and returns the most frequent
	// ones, up to limit. Equal counts order by signature so rankings are
	// stable across runs.
	TopBySignature(ctx context.Context, limit int) ([]domain.PathGroup, error)
}

// SQLitePathStore implements PathStore backed by SQLite.
type SQLitePathStore struct {
	db *sql.DB
}

// NewSQLitePathStore creates a new SQLitePathStore.
func NewSQLitePathStore(db *sql.DB) *SQLitePathStore {
	return &SQLitePathStore{db: db}
}

// Insert persists one conversion path row. The visited stage list is stored
// as a JSON array alongside the joined signature.
func (s *SQLitePathStore) Insert(ctx context.Context, path *domain.ConversionPath) error {
	visited := path.StagesVisited
	if visited == nil {
		visited = []string{}
	}
	visitedJSON, err := json.Marshal(visited)
	if err != nil {
		return fmt.Errorf("marshal stages visited: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO conversion_paths (id, session_id, stages_visited, path_signature, converted, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		path.ID, path.SessionID, string(visitedJSON), path.PathSignature,
		boolToInt(path.Converted), path.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert conversion path: %w", err)
	}
	return nil
}

// TopBySignature returns path signatures ranked by occurrence count.
func (s *SQLitePathStore) TopBySignature(ctx context.Context, limit int) ([]domain.PathGroup, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path_signature,
		        COUNT(*) AS occurrences,
		        SUM(converted) AS conversions,
		        ROUND(100.0 * SUM(converted) / COUNT(*), 2) AS conversion_rate
		 FROM conversion_paths
		 GROUP BY path_signature
		 ORDER BY occurrences DESC, path_signature
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top paths: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var groups []domain.PathGroup
	for rows.Next() {
		var g domain.PathGroup
		if err := rows.Scan(&g.PathSignature, &g.Occurrences, &g.Conversions, &g.ConversionRate); err != nil {
			return nil, fmt.Errorf("scan path group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
