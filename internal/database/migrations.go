package database

// migrations is an ordered list of SQL migration groups. Each entry is a slice
// of SQL statements that are executed together in a single transaction. The
// version number is the 1-based index into this slice.
//
// Touchpoints, conversion paths and dropoff events reference sessions by id
// but carry no declared FOREIGN KEY: touchpoint appends are documented as
// unconditional, and an enforced constraint would reject them for unknown
// session ids.
var migrations = [][]string{
	// Migration 1: the five journey tables
	{
		`CREATE TABLE funnel_stages (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			position INTEGER NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			entry_event TEXT NOT NULL DEFAULT '',
			exit_event TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE sessions (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT,
			channel TEXT NOT NULL,
			device TEXT NOT NULL,
			converted INTEGER NOT NULL DEFAULT 0,
			conversion_value REAL NOT NULL DEFAULT 0.0
		)`,

		`CREATE TABLE touchpoints (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			customer_id TEXT NOT NULL,
			channel TEXT NOT NULL,
			page TEXT NOT NULL,
			event_type TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			metadata TEXT NOT NULL DEFAULT '{}'
		)`,
		`CREATE INDEX idx_tp_session ON touchpoints(session_id)`,
		`CREATE INDEX idx_tp_customer ON touchpoints(customer_id)`,
		`CREATE INDEX idx_tp_timestamp ON touchpoints(timestamp)`,

		`CREATE TABLE conversion_paths (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			stages_visited TEXT NOT NULL,
			path_signature TEXT NOT NULL,
			converted INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX idx_cp_sig ON conversion_paths(path_signature)`,

		`CREATE TABLE dropoff_events (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			stage_id TEXT NOT NULL,
			stage_name TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			reason TEXT NOT NULL DEFAULT 'unknown'
		)`,
	},
}
