package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Run log entries, manual or imported
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			started_at TEXT NOT NULL,
			distance REAL NOT NULL,
			unit TEXT NOT NULL DEFAULT 'mi' CHECK (unit IN ('mi', 'km')),
			duration_s INTEGER NOT NULL,
			run_type TEXT NOT NULL DEFAULT 'Easy Run',
			elevation_ft REAL,
			source TEXT NOT NULL DEFAULT 'manual',
			source_ref TEXT NOT NULL DEFAULT '',
			pace_s INTEGER NOT NULL DEFAULT 0,
			pace TEXT NOT NULL DEFAULT '',
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_run_type ON runs(run_type)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_source_ref ON runs(source, source_ref)`,

		// Strava authentication (singleton row)
		`CREATE TABLE IF NOT EXISTS strava_auth (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			athlete_id INTEGER NOT NULL,
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL,
			expires_at INTEGER NOT NULL,
			firstname TEXT NOT NULL DEFAULT '',
			lastname TEXT NOT NULL DEFAULT '',
			created_at TEXT DEFAULT CURRENT_TIMESTAMP,
			updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
