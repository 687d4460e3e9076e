// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists conversion runs in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/nbpandoc/pkg/types"
)

const dbFile = "history.db"

// Store manages the conversion history SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at dir/history.db,
// creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			input TEXT NOT NULL,
			output TEXT,
			status TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			arg_count INTEGER NOT NULL,
			error TEXT,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_input ON conversions(input)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:30], err)
		}
	}
	return nil
}

// Record appends one conversion run to the history.
func (s *Store) Record(ctx context.Context, rec types.ConversionRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (input, output, status, duration_ms, arg_count, error, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.Input, rec.Output, string(rec.Status), rec.Duration.Milliseconds(),
		rec.ArgCount, rec.Error, rec.ConvertedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording conversion of %s: %w", rec.Input, err)
	}
	return nil
}

// List returns the most recent conversion runs, newest first, up to limit.
// A non-positive limit defaults to 20.
func (s *Store) List(ctx context.Context, limit int) ([]types.ConversionRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT input, output, status, duration_ms, arg_count, error, converted_at
		 FROM conversions ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var recs []types.ConversionRecord
	for rows.Next() {
		var (
			rec        types.ConversionRecord
			status     string
			durationMS int64
			at         string
		)
		if err := rows.Scan(&rec.Input, &rec.Output, &status, &durationMS,
			&rec.ArgCount, &rec.Error, &at); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		rec.Status = types.ConversionStatus(status)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		if t, err := time.Parse(time.RFC3339, at); err == nil {
			rec.ConvertedAt = t
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
