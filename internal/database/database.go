// Package database is the download ledger: the durable record of every
// remote file this mirror has already processed. Rows are append-only and
// unique per server-assigned file identifier, which is what makes repeated,
// possibly-interrupted sync runs idempotent.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"medline_mirror/internal/files"
	"medline_mirror/internal/listing"
	"medline_mirror/internal/logger"

	"github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
}

// IntegrityError reports an attempt to record a unique file identifier that
// the ledger already holds. It signals a planner bug or a corrupted ledger
// and is never swallowed.
type IntegrityError struct {
	UniqueID string
	Table    string
	Err      error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("identifier %s already recorded in %s: %v", e.UniqueID, e.Table, e.Err)
}

func (e *IntegrityError) Unwrap() error { return e.Err }

// New creates a new database connection and ensures schema is up to date
func New(dbPath string) (*DB, error) {
	// Ensure database directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database connection
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Apply migrations
	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &DB{db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// KnownIdentifiers returns the union of unique file identifiers across all
// three record kinds. The planner queries it once per run, so a single pass
// into a set keeps tens of thousands of rows cheap.
func (db *DB) KnownIdentifiers() (map[string]struct{}, error) {
	rows, err := db.Query(`
        SELECT unique_file_id FROM nlm_archives
        UNION
        SELECT unique_file_id FROM md5_checksums
        UNION
        SELECT unique_file_id FROM archive_notes`)
	if err != nil {
		return nil, fmt.Errorf("failed to query known identifiers: %w", err)
	}
	defer rows.Close()

	known := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan identifier: %w", err)
		}
		known[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read known identifiers: %w", err)
	}
	return known, nil
}

// Record classifies each retrieval and inserts it as the matching record
// kind, all inside one transaction. Inserting an identifier the ledger
// already holds fails with *IntegrityError; rows are never updated or
// deleted. Archives, checksums and notes are independent inserts: NLM does
// not publish companion files atomically and neither does this ledger.
func (db *DB) Record(batch []files.Retrieval) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	for _, r := range batch {
		if err := insertRetrieval(tx, r); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	logger.Debug.Printf("Recorded %d retrievals", len(batch))
	return nil
}

func insertRetrieval(tx *sql.Tx, r files.Retrieval) error {
	group := nullableGroup(listing.RecordGroup(r.Filename))

	switch class := listing.Classify(r.Filename); class {
	case listing.ClassArchive:
		_, err := tx.Exec(`
            INSERT INTO nlm_archives (
                size, record_group, filename, unique_file_id,
                modification_date, observed_md5, md5_verified,
                download_date, download_location,
                transferred_for_output, downloaded_by_application
            ) VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?, 0, 0)`,
			r.Size, group, r.Filename, r.UniqueID, r.Modified,
			r.MD5, r.DownloadedAt, r.LocalPath)
		return wrapInsertErr("nlm_archives", r.UniqueID, err)

	case listing.ClassChecksum:
		value, err := readCompanion(r.LocalPath)
		if err != nil {
			return fmt.Errorf("failed to read checksum file %s: %w", r.LocalPath, err)
		}
		_, err = tx.Exec(`
            INSERT INTO md5_checksums (
                record_group, unique_file_id, md5_value,
                download_date, filename, checksum_file_deleted
            ) VALUES (?, ?, ?, ?, ?, 0)`,
			group, r.UniqueID, strings.TrimSpace(value), r.DownloadedAt, r.Filename)
		return wrapInsertErr("md5_checksums", r.UniqueID, err)

	default: // listing.ClassNote
		note, err := readCompanion(r.LocalPath)
		if err != nil {
			return fmt.Errorf("failed to read note file %s: %w", r.LocalPath, err)
		}
		_, err = tx.Exec(`
            INSERT INTO archive_notes (
                filename, record_group, unique_file_id, note, download_date
            ) VALUES (?, ?, ?, ?, ?)`,
			r.Filename, group, r.UniqueID, note, r.DownloadedAt)
		return wrapInsertErr("archive_notes", r.UniqueID, err)
	}
}

// readCompanion loads a small companion file (a published .md5 or a note)
// so its content lands in the ledger alongside the metadata.
func readCompanion(path string) (string, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func wrapInsertErr(table, uniqueID string, err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) && (se.ExtendedCode == sqlite3.ErrConstraintUnique || se.Code == sqlite3.ErrConstraint) {
		return &IntegrityError{UniqueID: uniqueID, Table: table, Err: err}
	}
	return fmt.Errorf("failed to insert into %s: %w", table, err)
}

func nullableGroup(group string) sql.NullString {
	return sql.NullString{String: group, Valid: group != ""}
}
