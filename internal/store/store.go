// Package store persists imported documents, extraction runs, and the
// accepted abbreviation/definition pairs in PostgreSQL.
package store

import (
	"database/sql"
	"fmt"
)

// Store wraps the database handle with the persistence operations.
type Store struct {
	db *sql.DB
}

// New creates a store over an open database connection.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// InitSchema creates the tables and indexes if they do not exist yet.
// Safe to call on every start.
func (s *Store) InitSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS document (
			doc_id       bigserial PRIMARY KEY,
			source_path  text NOT NULL DEFAULT '',
			label        text NOT NULL,
			content      text NOT NULL,
			line_count   int  NOT NULL,
			imported_at  timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS extraction_run (
			run_id          bigserial PRIMARY KEY,
			run_uuid        text NOT NULL,
			run_label       text NOT NULL,
			started_at      timestamptz NOT NULL DEFAULT now(),
			completed_at    timestamptz,
			docs_processed  int NOT NULL DEFAULT 0,
			pairs_kept      int NOT NULL DEFAULT 0,
			pairs_omitted   int NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS abbreviation (
			abbrev_id     bigserial PRIMARY KEY,
			run_id        bigint NOT NULL REFERENCES extraction_run(run_id),
			doc_id        bigint NOT NULL REFERENCES document(doc_id),
			abbreviation  text NOT NULL,
			definition    text NOT NULL,
			line_no       int NOT NULL,
			abbrev_start  int NOT NULL,
			abbrev_stop   int NOT NULL,
			def_start     int NOT NULL,
			def_stop      int NOT NULL,
			extracted_at  timestamptz NOT NULL DEFAULT now(),
			UNIQUE (doc_id, abbreviation)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_abbreviation_text ON abbreviation (abbreviation)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
