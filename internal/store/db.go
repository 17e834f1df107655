// Package store provides SQLite-backed implementations of the
// repo.ZoneRepository, repo.RecordSetRepository, and
// repo.BatchChangeRepository contracts, following the teacher's
// internal/database package for connection setup and query style.
package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/hydrabatch/hydrabatch/internal/repo"
)

var (
	_ repo.ZoneRepository        = (*ZoneStore)(nil)
	_ repo.RecordSetRepository   = (*RecordSetStore)(nil)
	_ repo.BatchChangeRepository = (*BatchChangeStore)(nil)
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a SQLite connection shared by every repository implementation
// in this package.
type DB struct {
	conn *sql.DB
}

// Open opens or creates a SQLite database at path and applies the schema
// idempotently — every CREATE statement is IF NOT EXISTS, so Open is safe
// to call against an already-initialized database.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL&_foreign_keys=on", path)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	db := &DB{conn: conn}

	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

func (db *DB) initSchema() error {
	if _, err := db.conn.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (db *DB) Close() error { return db.conn.Close() }

// Health checks database connectivity.
func (db *DB) Health() error { return db.conn.Ping() }

// ZoneStore returns the repo.ZoneRepository backed by db.
func (db *DB) ZoneStore() *ZoneStore { return &ZoneStore{db: db} }

// RecordSetStore returns the repo.RecordSetRepository backed by db.
func (db *DB) RecordSetStore() *RecordSetStore { return &RecordSetStore{db: db} }

// BatchChangeStore returns the repo.BatchChangeRepository backed by db.
func (db *DB) BatchChangeStore() *BatchChangeStore { return &BatchChangeStore{db: db} }
