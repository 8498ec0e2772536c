package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// migration is one forward-only schema step.
type migration struct {
	version int
	name    string
	sql     string
}

// migrations is the ordered schema history. Append only.
var migrations = []migration{
	{
		version: 1,
		name:    "baseline",
		sql: `
	CREATE TABLE IF NOT EXISTS semester (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		break_start TEXT,
		break_end TEXT,
		booking_open_day TEXT NOT NULL,
		booking_open_time TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS game_schedule (
		id TEXT PRIMARY KEY,
		semester_id TEXT NOT NULL,
		title TEXT NOT NULL,
		day TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		FOREIGN KEY (semester_id) REFERENCES semester(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS game_session (
		id TEXT PRIMARY KEY,
		semester_id TEXT NOT NULL,
		schedule_id TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		booking_opens_at TEXT NOT NULL,
		FOREIGN KEY (semester_id) REFERENCES semester(id) ON DELETE CASCADE,
		FOREIGN KEY (schedule_id) REFERENCES game_schedule(id) ON DELETE CASCADE
	);
	`,
	},
	{
		version: 2,
		name:    "session lookup indexes",
		sql: `
	CREATE INDEX IF NOT EXISTS idx_game_schedule_semester ON game_schedule(semester_id);
	CREATE INDEX IF NOT EXISTS idx_game_session_semester_start ON game_session(semester_id, start_time);
	CREATE INDEX IF NOT EXISTS idx_game_session_schedule ON game_session(schedule_id);
	`,
	},
}

// LatestSchemaVersion returns the version the newest migration produces.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion returns the version recorded in schema_version, or 0 for
// a database that has never been migrated.
// PRE: db is a valid database connection
// POST: Returns the applied version
func SchemaVersion(db *sql.DB) (int, error) {
	var exists int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect schema: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}
	var version int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// MigrateDB applies every migration newer than the recorded version.
// PRE: db is a valid database connection
// POST: Schema is at LatestSchemaVersion, foreign keys enforced on this connection
func MigrateDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: %w", m.version, err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version, name) VALUES (?, ?)", m.version, m.name); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: failed to record version: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: %w", m.version, err)
		}
		slog.Info("schema_migrated", "version", m.version, "name", m.name)
	}
	return nil
}
