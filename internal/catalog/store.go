// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records completed conversions in a local SQLite
// database so past runs can be listed and exported.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tetralith/mesh2pdf/pkg/types"
)

const dbFile = "history.db"

const defaultMaxResults = 20

// Record is one row of conversion history.
type Record struct {
	ID             int64     `json:"id" yaml:"id"`
	Input          string    `json:"input" yaml:"input"`
	U3DPath        string    `json:"u3d_path,omitempty" yaml:"u3d_path,omitempty"`
	PDFPath        string    `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`
	Vertices       int       `json:"vertices" yaml:"vertices"`
	FacesIn        int       `json:"faces_in" yaml:"faces_in"`
	FacesOut       int       `json:"faces_out" yaml:"faces_out"`
	Cleaned        bool      `json:"cleaned" yaml:"cleaned"`
	SimplifyTarget int       `json:"simplify_target" yaml:"simplify_target"`
	Status         string    `json:"status" yaml:"status"`
	DurationMS     int64     `json:"duration_ms" yaml:"duration_ms"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
}

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at
// cfg.HistoryDir/history.db, creating the schema if needed.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.HistoryDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.HistoryDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input TEXT NOT NULL,
			u3d_path TEXT,
			pdf_path TEXT,
			vertices INTEGER,
			faces_in INTEGER,
			faces_out INTEGER,
			cleaned INTEGER NOT NULL DEFAULT 0,
			simplify_target INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Append inserts a record. The CreatedAt field defaults to now when
// unset; the assigned row ID is written back to rec.
func (s *Store) Append(ctx context.Context, rec *Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions
			(input, u3d_path, pdf_path, vertices, faces_in, faces_out,
			 cleaned, simplify_target, status, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Input, rec.U3DPath, rec.PDFPath, rec.Vertices, rec.FacesIn, rec.FacesOut,
		boolToInt(rec.Cleaned), rec.SimplifyTarget, rec.Status, rec.DurationMS,
		rec.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("inserting conversion record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted row ID: %w", err)
	}
	rec.ID = id
	return nil
}

// List returns the most recent records, newest first. A limit of zero
// uses the store's configured maximum.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, u3d_path, pdf_path, vertices, faces_in, faces_out,
			cleaned, simplify_target, status, duration_ms, created_at
		 FROM conversions ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var cleaned int
		var createdAt int64
		if err := rows.Scan(
			&rec.ID, &rec.Input, &rec.U3DPath, &rec.PDFPath,
			&rec.Vertices, &rec.FacesIn, &rec.FacesOut,
			&cleaned, &rec.SimplifyTarget, &rec.Status, &rec.DurationMS, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning conversion row: %w", err)
		}
		rec.Cleaned = cleaned != 0
		rec.CreatedAt = time.Unix(0, createdAt).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
