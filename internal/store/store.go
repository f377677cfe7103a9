package store

import "database/sql"

// Store holds all sub-stores used by the application. It is the storage
// gateway: callers depend on the interfaces, not on SQLite.
type Store struct {
	DB          *sql.DB
	Stages      StageStore
	Sessions    SessionStore
	Touchpoints TouchpointStore
	Paths       PathStore
	Dropoffs    DropoffStore
	Analytics   AnalyticsStore
}

// New creates a Store with all sub-stores initialized.
func New(db *sql.DB) *Store {
	return &Store{
		DB:          db,
		Stages:      NewSQLiteStageStore(db),
		Sessions:    NewSQLiteSessionStore(db),
		Touchpoints: NewSQLiteTouchpointStore(db),
		Paths:       NewSQLitePathStore(db),
		Dropoffs:    NewSQLiteDropoffStore(db),
		Analytics:   NewSQLiteAnalyticsStore(db),
	}
}
