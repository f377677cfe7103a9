package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/blackroad/journeymap/internal/domain"
)

// AnalyticsStore exposes the windowed aggregate queries consumed by the
// metrics engine. All queries are read-only; cutoffs are timestamps in the
// persisted format and unknown identifiers simply yield zero results.
type AnalyticsStore interface {
	// StageEntryCount counts distinct sessions started at or after cutoff
	// that have a touchpoint with the given event type.
	StageEntryCount(ctx context.Context, entryEvent, cutoff string) (int, error)
	// ConvertedExitCount counts distinct converted sessions started at or
	// after cutoff that have a touchpoint with the given event type.
	ConvertedExitCount(ctx context.Context, entryEvent, cutoff string) (int, error)
	// StageAvgDuration returns the mean touchpoint duration in milliseconds
	// for touchpoints matching the event type within the window, 0 when none.
	StageAvgDuration(ctx context.Context, entryEvent, cutoff string) (float64, error)
	// ChannelAttribution groups sessions in the window by channel.
	ChannelAttribution(ctx context.Context, cutoff string) ([]domain.ChannelStats, error)
	// CustomerLTVs returns each customer's total conversion value over
	// converted sessions.
	CustomerLTVs(ctx context.Context) ([]domain.CustomerLTV, error)
	// TouchpointTimestamps returns the raw timestamps of touchpoints at or
	// after cutoff.
	TouchpointTimestamps(ctx context.Context, cutoff string) ([]string, error)
}

// SQLiteAnalyticsStore implements AnalyticsStore backed by SQLite.
type SQLiteAnalyticsStore struct {
	db *sql.DB
}

// NewSQLiteAnalyticsStore creates a new SQLiteAnalyticsStore.
func NewSQLiteAnalyticsStore(db *sql.DB) *SQLiteAnalyticsStore {
	return &SQLiteAnalyticsStore{db: db}
}

// StageEntryCount counts sessions that reached a stage within the window.
func (s *SQLiteAnalyticsStore) StageEntryCount(ctx context.Context, entryEvent, cutoff string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT tp.session_id) FROM touchpoints tp
		 JOIN sessions s ON tp.session_id = s.id
		 WHERE tp.event_type = ? AND s.start_time >= ?`,
		entryEvent, cutoff,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("stage entry count: %w", err)
	}
	return count, nil
}

// ConvertedExitCount counts converted sessions that reached a stage within
// the window. Used for the last funnel stage, where exits are conversions.
func (s *SQLiteAnalyticsStore) ConvertedExitCount(ctx context.Context, entryEvent, cutoff string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT s.id) FROM sessions s
		 JOIN touchpoints tp ON s.id = tp.session_id
		 WHERE s.converted = 1 AND tp.event_type = ? AND s.start_time >= ?`,
		entryEvent, cutoff,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("converted exit count: %w", err)
	}
	return count, nil
}

// StageAvgDuration averages touchpoint durations for one entry event.
func (s *SQLiteAnalyticsStore) StageAvgDuration(ctx context.Context, entryEvent, cutoff string) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT AVG(tp.duration_ms) FROM touchpoints tp
		 JOIN sessions s ON tp.session_id = s.id
		 WHERE tp.event_type = ? AND s.start_time >= ?`,
		entryEvent, cutoff,
	).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("stage avg duration: %w", err)
	}
	return avg.Float64, nil
}

// ChannelAttribution groups windowed sessions by channel. AvgValue averages
// conversion value over converted sessions only and is nil for channels
// without conversions.
func (s *SQLiteAnalyticsStore) ChannelAttribution(ctx context.Context, cutoff string) ([]domain.ChannelStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT channel,
		        COUNT(*) AS sessions,
		        SUM(converted) AS conversions,
		        ROUND(100.0 * SUM(converted) / COUNT(*), 2) AS conversion_rate,
		        ROUND(AVG(CASE WHEN converted = 1 THEN conversion_value END), 2) AS avg_value
		 FROM sessions WHERE start_time >= ?
		 GROUP BY channel ORDER BY conversions DESC, channel`,
		cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("channel attribution: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stats []domain.ChannelStats
	for rows.Next() {
		var cs domain.ChannelStats
		var avgValue sql.NullFloat64
		if err := rows.Scan(&cs.Channel, &cs.Sessions, &cs.Conversions, &cs.ConversionRate, &avgValue); err != nil {
			return nil, fmt.Errorf("scan channel stats: %w", err)
		}
		if avgValue.Valid {
			v := avgValue.Float64
			cs.AvgValue = &v
		}
		stats = append(stats, cs)
	}
	return stats, rows.Err()
}

// CustomerLTVs sums conversion value per customer over converted sessions.
func (s *SQLiteAnalyticsStore) CustomerLTVs(ctx context.Context) ([]domain.CustomerLTV, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT customer_id, SUM(conversion_value) AS ltv
		 FROM sessions WHERE converted = 1
		 GROUP BY customer_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("customer ltvs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ltvs []domain.CustomerLTV
	for rows.Next() {
		var c domain.CustomerLTV
		if err := rows.Scan(&c.CustomerID, &c.LTV); err != nil {
			return nil, fmt.Errorf("scan ltv: %w", err)
		}
		ltvs = append(ltvs, c)
	}
	return ltvs, rows.Err()
}

// TouchpointTimestamps returns raw in-window touchpoint timestamps for the
// heatmap; parsing (and skipping malformed values) happens in the engine.
func (s *SQLiteAnalyticsStore) TouchpointTimestamps(ctx context.Context, cutoff string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT timestamp FROM touchpoints WHERE timestamp >= ?`,
		cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("touchpoint timestamps: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var timestamps []string
	for rows.Next() {
		var ts string
		if err := rows.Scan(&ts); err != nil {
			return nil, fmt.Errorf("scan timestamp: %w", err)
		}
		timestamps = append(timestamps, ts)
	}
	return timestamps, rows.Err()
}
