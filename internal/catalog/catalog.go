// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records page transfers (fetches and uploads) in a local
// SQLite database so the CLI can show what moved where and when.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Maximophone/notion-md-converter/pkg/types"
)

const dbFile = "transfers.db"

// Direction labels which way a transfer moved.
type Direction string

const (
	DirectionFetch  Direction = "fetch"
	DirectionUpload Direction = "upload"
)

// Transfer is one recorded fetch or upload.
type Transfer struct {
	ID        int64
	PageID    string
	Title     string
	Direction Direction
	Format    string
	Path      string
	Timestamp time.Time
}

// Store manages the transfer-history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the catalog database at dir/transfers.db,
// creating the schema if needed.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = ".notion-md"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS transfers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			page_id TEXT NOT NULL,
			title TEXT,
			direction TEXT NOT NULL,
			format TEXT NOT NULL,
			path TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transfers_page_id ON transfers(page_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one transfer row.
func (s *Store) Record(ctx context.Context, t Transfer) error {
	ts := t.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transfers (page_id, title, direction, format, path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.PageID, t.Title, string(t.Direction), t.Format, t.Path, ts.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording transfer: %w", err)
	}
	return nil
}

// Recent returns the latest transfers, newest first. A non-positive limit
// uses the configured default.
func (s *Store) Recent(ctx context.Context, limit int) ([]Transfer, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, page_id, title, direction, format, path, created_at
		 FROM transfers ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying transfers: %w", err)
	}
	defer rows.Close()

	var transfers []Transfer
	for rows.Next() {
		var t Transfer
		var direction, createdAt string
		if err := rows.Scan(&t.ID, &t.PageID, &t.Title, &direction, &t.Format, &t.Path, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning transfer row: %w", err)
		}
		t.Direction = Direction(direction)
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			t.Timestamp = ts
		}
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}
