package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore records published job ids in a SQLite database. Once an id is
// present it stays present; there is no deletion path in normal operation
// (Cleanup exists for operator-driven pruning only).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the posted_jobs table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS posted_jobs (
		id        TEXT PRIMARY KEY,
		url       TEXT NOT NULL DEFAULT '',
		posted_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating posted_jobs table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Exists returns true if the given job id has already been published.
func (s *SQLiteStore) Exists(id string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM posted_jobs WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking posted status for %s: %w", id, err)
	}
	return true, nil
}

// Insert records a job id and its url. Re-inserting an existing id is a no-op.
func (s *SQLiteStore) Insert(id, url string) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO posted_jobs (id, url) VALUES (?, ?)", id, url)
	if err != nil {
		return fmt.Errorf("marking job %s posted: %w", id, err)
	}
	return nil
}

// Cleanup deletes posted-job entries older than the given duration.
func (s *SQLiteStore) Cleanup(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	_, err := s.db.Exec("DELETE FROM posted_jobs WHERE posted_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("cleaning up posted jobs older than %v: %w", olderThan, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
