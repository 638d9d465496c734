// Package history provides SQLite-based logging of compile runs. Each build
// is recorded with a content hash of its schema so regenerated output can be
// traced back to the exact source it came from.
package history

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store handles SQLite database operations for build logging.
type Store struct {
	db *sql.DB
}

// Build represents one compile run record.
type Build struct {
	ID         string    `json:"id"`
	SchemaPath string    `json:"schema_path"`
	Name       string    `json:"name"`
	SourceHash string    `json:"source_hash"`
	DefCount   int       `json:"def_count"`
	CreatedAt  time.Time `json:"created_at"`
	OK         bool      `json:"ok"`
	Error      string    `json:"error,omitempty"`
}

// Open creates a Store backed by the database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		schema_path TEXT NOT NULL,
		name TEXT NOT NULL,
		source_hash TEXT NOT NULL,
		def_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		ok INTEGER NOT NULL DEFAULT 0,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_builds_name ON builds(name);
	CREATE INDEX IF NOT EXISTS idx_builds_hash ON builds(source_hash);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// HashSource returns the hex sha256 of a schema source.
func HashSource(src []byte) string {
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])
}

// Record inserts a build record, assigning it a fresh id if empty, and
// returns the id.
func (s *Store) Record(b Build) (string, error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO builds (id, schema_path, name, source_hash, def_count, created_at, ok, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.SchemaPath, b.Name, b.SourceHash, b.DefCount, b.CreatedAt, b.OK, b.Error,
	)
	return b.ID, err
}

// Recent returns the most recent builds, newest first.
func (s *Store) Recent(limit int) ([]Build, error) {
	rows, err := s.db.Query(
		`SELECT id, schema_path, name, source_hash, def_count, created_at, ok, COALESCE(error, '')
		 FROM builds ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		var b Build
		if err := rows.Scan(&b.ID, &b.SchemaPath, &b.Name, &b.SourceHash,
			&b.DefCount, &b.CreatedAt, &b.OK, &b.Error); err != nil {
			return nil, err
		}
		builds = append(builds, b)
	}
	return builds, rows.Err()
}
