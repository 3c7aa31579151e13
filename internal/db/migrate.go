package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS study_sessions (
		id              TEXT PRIMARY KEY,
		topic           TEXT NOT NULL DEFAULT '',
		level           TEXT NOT NULL
		                CHECK(level IN ('Beginner','Intermediate','Advanced')),
		duration_amount INTEGER NOT NULL CHECK(duration_amount > 0),
		duration_unit   TEXT NOT NULL
		                CHECK(duration_unit IN ('Minutes','Hours','Days','Weeks','Months')),
		roadmap         TEXT NOT NULL DEFAULT '',
		insight         TEXT NOT NULL DEFAULT '',
		assignment      TEXT NOT NULL DEFAULT '',
		feedback        TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS roadmap_steps (
		session_id TEXT NOT NULL REFERENCES study_sessions(id) ON DELETE CASCADE,
		step_order INTEGER NOT NULL CHECK(step_order >= 0),
		title      TEXT NOT NULL,
		content    TEXT NOT NULL DEFAULT '',
		completed  INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0,1)),
		PRIMARY KEY (session_id, step_order)
	)`,

	`CREATE TABLE IF NOT EXISTS app_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_study_sessions_updated ON study_sessions(updated_at)`,
}
