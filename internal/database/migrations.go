package database

import (
	"database/sql"
	"fmt"
)

type Migration struct {
	Version int
	SQL     string
}

var migrations = []Migration{
	{
		Version: 1,
		SQL: `
		CREATE TABLE IF NOT EXISTS nlm_archives (
			id INTEGER PRIMARY KEY,
			size INTEGER NOT NULL,
			record_group TEXT,
			filename TEXT NOT NULL,
			unique_file_id TEXT NOT NULL UNIQUE,
			modification_date TEXT NOT NULL,
			observed_md5 TEXT NOT NULL,
			md5_verified INTEGER NOT NULL DEFAULT 0,
			download_date TEXT NOT NULL,
			download_location TEXT NOT NULL,
			transferred_for_output INTEGER NOT NULL DEFAULT 0,  -- made ready for rsync download?
			downloaded_by_application INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS md5_checksums (
			id INTEGER PRIMARY KEY,
			record_group TEXT,  -- which archive is this checksum for?
			unique_file_id TEXT NOT NULL UNIQUE,
			md5_value TEXT NOT NULL,
			download_date TEXT NOT NULL,
			filename TEXT NOT NULL,
			checksum_file_deleted INTEGER NOT NULL DEFAULT 0
		);

		/* archive_notes

		NLM lists retracted papers and other miscellany in text or html
		files with the same basename as the relevant archive (e.g.,
		medline14n01.xml and medline14n01.xml.notes.txt). */
		CREATE TABLE IF NOT EXISTS archive_notes (
			id INTEGER PRIMARY KEY,
			filename TEXT NOT NULL,
			record_group TEXT,  -- which archive is this note for?
			unique_file_id TEXT NOT NULL UNIQUE,
			note TEXT NOT NULL,
			download_date TEXT NOT NULL
		);`,
	},
}

func applyMigrations(db *sql.DB) error {
	// Create migrations table if it doesn't exist
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	// Apply each migration in transaction
	for _, migration := range migrations {
		var version int
		err := db.QueryRow("SELECT version FROM schema_migrations WHERE version = ?", migration.Version).Scan(&version)
		if err != nil && err != sql.ErrNoRows {
			return fmt.Errorf("failed to check migration version: %w", err)
		}
		if err == nil {
			continue // Migration already applied
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to start transaction: %w", err)
		}

		if _, err := tx.Exec(migration.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply migration %d: %w", migration.Version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_migrations (version, applied_at) VALUES (?, datetime('now'))", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}
