package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded pass of the extractor over stored documents.
type Run struct {
	RunID         int64
	RunUUID       string
	Label         string
	StartedAt     time.Time
	CompletedAt   *time.Time
	DocsProcessed int
	PairsKept     int
	PairsOmitted  int
}

// BeginRun opens a new run record and returns it with its assigned id.
func (s *Store) BeginRun(label string) (*Run, error) {
	run := &Run{
		RunUUID: uuid.New().String(),
		Label:   label,
	}

	err := s.db.QueryRow(`
		INSERT INTO extraction_run (run_uuid, run_label)
		VALUES ($1, $2)
		RETURNING run_id, started_at
	`, run.RunUUID, run.Label).Scan(&run.RunID, &run.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("begin run %q: %w", label, err)
	}
	return run, nil
}

// FinishRun closes a run with its final counters.
func (s *Store) FinishRun(runID int64, docsProcessed, pairsKept, pairsOmitted int) error {
	_, err := s.db.Exec(`
		UPDATE extraction_run
		SET completed_at = now(),
		    docs_processed = $2,
		    pairs_kept = $3,
		    pairs_omitted = $4
		WHERE run_id = $1
	`, runID, docsProcessed, pairsKept, pairsOmitted)
	if err != nil {
		return fmt.Errorf("finish run %d: %w", runID, err)
	}
	return nil
}

// ListRuns returns runs newest first, at most limit of them. A limit of
// zero or less returns all runs.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, run_uuid, run_label, started_at, completed_at,
		       docs_processed, pairs_kept, pairs_omitted
		FROM extraction_run
		ORDER BY run_id DESC
	`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(query+" LIMIT $1", limit)
	} else {
		rows, err = s.db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var completed sql.NullTime
		err := rows.Scan(&r.RunID, &r.RunUUID, &r.Label, &r.StartedAt, &completed,
			&r.DocsProcessed, &r.PairsKept, &r.PairsOmitted)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if completed.Valid {
			t := completed.Time
			r.CompletedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
