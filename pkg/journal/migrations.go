package journal

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	// Migration 1: Initial schema
	`CREATE TABLE IF NOT EXISTS sessions (
		id                  TEXT PRIMARY KEY,
		started_at          DATETIME NOT NULL,
		work_minutes        INTEGER NOT NULL,
		short_break_minutes INTEGER NOT NULL,
		long_break_minutes  INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS transitions (
		id                  TEXT PRIMARY KEY,
		session_id          TEXT NOT NULL REFERENCES sessions(id),
		from_phase          TEXT NOT NULL,
		to_phase            TEXT NOT NULL,
		cause               TEXT NOT NULL CHECK(cause IN ('advance', 'timeout')),
		completed_intervals INTEGER NOT NULL DEFAULT 0,
		at                  DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_transitions_session ON transitions(session_id);
	CREATE INDEX IF NOT EXISTS idx_transitions_at ON transitions(at);`,
}

// runMigrations applies pending schema migrations.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("create migration table: %w", err)
	}

	var currentVersion int
	row := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("check migration version: %w", err)
	}

	for i := currentVersion; i < len(migrations); i++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", i+1, err)
		}

		if _, err := tx.Exec(migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("run migration %d: %w", i+1, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", i+1); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %d: %w", i+1, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", i+1, err)
		}
	}

	return nil
}
