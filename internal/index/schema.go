// Package index provides SQLite-backed persistence of parsed journal entries
// with optional FTS5 full-text search.
package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// List columns hold JSON arrays; NULL means the label was absent.
const coreSchemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
	path       TEXT PRIMARY KEY,
	checksum   TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS daily_logs (
	document     TEXT NOT NULL,
	position     INTEGER NOT NULL,
	day_of_week  TEXT NOT NULL DEFAULT '',
	date         TEXT NOT NULL DEFAULT '',
	day          TEXT,
	mood         REAL,
	focus        REAL,
	achievements TEXT,
	challenges   TEXT,
	notes        TEXT,
	PRIMARY KEY (document, position)
);

CREATE TABLE IF NOT EXISTS weekly_reviews (
	document             TEXT NOT NULL,
	position             INTEGER NOT NULL,
	week                 TEXT NOT NULL DEFAULT '',
	overall_mood         REAL,
	overall_productivity REAL,
	key_achievements     TEXT,
	challenges           TEXT,
	goals                TEXT,
	PRIMARY KEY (document, position)
);

CREATE TABLE IF NOT EXISTS analyses (
	id         TEXT PRIMARY KEY,
	document   TEXT NOT NULL,
	mode       TEXT NOT NULL,
	prompt     TEXT NOT NULL DEFAULT '',
	summary    TEXT NOT NULL DEFAULT '',
	written    INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_daily_logs_day ON daily_logs(day);
CREATE INDEX IF NOT EXISTS idx_analyses_document ON analyses(document, created_at);
`

// DB wraps a sql.DB with index-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: ping: %w", err)
	}
	if _, err := conn.Exec(coreSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply core schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply fts schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Ping checks that the database is reachable.
func (db *DB) Ping() error {
	return db.conn.Ping()
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
