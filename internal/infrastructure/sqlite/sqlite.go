package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS glove_submissions (
    id              TEXT PRIMARY KEY,
    place_id        TEXT NOT NULL CHECK(length(place_id) > 0),
    restaurant_name TEXT NOT NULL CHECK(length(restaurant_name) > 0),
    address         TEXT NOT NULL CHECK(length(address) > 0),
    glove_type      TEXT NOT NULL CHECK(glove_type IN ('vinyl','nitrile','latex','none')),
    notes           TEXT NOT NULL DEFAULT '',
    submitted_by    TEXT NOT NULL DEFAULT 'anonymous',
    created_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
    updated_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE INDEX IF NOT EXISTS idx_glove_submissions_created_at ON glove_submissions(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_glove_submissions_place_id ON glove_submissions(place_id, created_at DESC);
`

// Open opens or creates the SQLite database and initializes the schema.
// SQLite allows a single writer, so the pool is capped at one connection;
// this also keeps an in-memory database alive across calls.
func Open(dbPath string) (*sql.DB, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if dbPath != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}
