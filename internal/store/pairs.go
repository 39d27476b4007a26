package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/abbrev-extract/internal/extract"
)

// StoredPair is one accepted abbreviation/definition pair as persisted,
// with its source offsets.
type StoredPair struct {
	AbbrevID     int64
	RunID        int64
	DocID        int64
	DocLabel     string
	Abbreviation string
	Definition   string
	LineNo       int
	AbbrevStart  int
	AbbrevStop   int
	DefStart     int
	DefStop      int
	ExtractedAt  time.Time
}

// SavePairs upserts every accepted pair of one document's extraction
// result inside a transaction. Pairs arrive in document order, so a later
// definition of the same abbreviation replaces the earlier row, the same
// last-write-wins rule the extractor applies to its in-memory map.
func (s *Store) SavePairs(runID, docID int64, result *extract.Result) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO abbreviation (
			run_id, doc_id, abbreviation, definition, line_no,
			abbrev_start, abbrev_stop, def_start, def_stop
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (doc_id, abbreviation) DO UPDATE SET
			run_id = EXCLUDED.run_id,
			definition = EXCLUDED.definition,
			line_no = EXCLUDED.line_no,
			abbrev_start = EXCLUDED.abbrev_start,
			abbrev_stop = EXCLUDED.abbrev_stop,
			def_start = EXCLUDED.def_start,
			def_stop = EXCLUDED.def_stop,
			extracted_at = now()
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	saved := 0
	for _, pair := range result.Found {
		_, err := stmt.Exec(runID, docID, pair.Abbrev.Text, pair.Definition.Text,
			pair.Line, pair.Abbrev.Start, pair.Abbrev.Stop,
			pair.Definition.Start, pair.Definition.Stop)
		if err != nil {
			return saved, fmt.Errorf("save pair %q: %w", pair.Abbrev.Text, err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return saved, fmt.Errorf("commit pairs: %w", err)
	}
	return saved, nil
}

const pairColumns = `
	a.abbrev_id, a.run_id, a.doc_id, d.label,
	a.abbreviation, a.definition, a.line_no,
	a.abbrev_start, a.abbrev_stop, a.def_start, a.def_stop,
	a.extracted_at
`

func scanPair(rows *sql.Rows) (StoredPair, error) {
	var p StoredPair
	err := rows.Scan(&p.AbbrevID, &p.RunID, &p.DocID, &p.DocLabel,
		&p.Abbreviation, &p.Definition, &p.LineNo,
		&p.AbbrevStart, &p.AbbrevStop, &p.DefStart, &p.DefStop,
		&p.ExtractedAt)
	return p, err
}

// ListPairs pages through stored pairs ordered by abbreviation, and
// returns the total pair count alongside the page.
func (s *Store) ListPairs(limit, offset int) ([]StoredPair, int, error) {
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM abbreviation`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count pairs: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT `+pairColumns+`
		FROM abbreviation a
		JOIN document d ON d.doc_id = a.doc_id
		ORDER BY a.abbreviation, a.doc_id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list pairs: %w", err)
	}
	defer rows.Close()

	var pairs []StoredPair
	for rows.Next() {
		p, err := scanPair(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	return pairs, total, rows.Err()
}

// LookupPairs returns every stored definition of one abbreviation across
// documents, newest extraction first.
func (s *Store) LookupPairs(abbrev string) ([]StoredPair, error) {
	rows, err := s.db.Query(`
		SELECT `+pairColumns+`
		FROM abbreviation a
		JOIN document d ON d.doc_id = a.doc_id
		WHERE a.abbreviation = $1
		ORDER BY a.extracted_at DESC, a.doc_id
	`, abbrev)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", abbrev, err)
	}
	defer rows.Close()

	var pairs []StoredPair
	for rows.Next() {
		p, err := scanPair(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

// AllPairs returns every stored pair in document/line order, for export.
func (s *Store) AllPairs() ([]StoredPair, error) {
	rows, err := s.db.Query(`
		SELECT ` + pairColumns + `
		FROM abbreviation a
		JOIN document d ON d.doc_id = a.doc_id
		ORDER BY a.doc_id, a.line_no, a.abbrev_start
	`)
	if err != nil {
		return nil, fmt.Errorf("all pairs: %w", err)
	}
	defer rows.Close()

	var pairs []StoredPair
	for rows.Next() {
		p, err := scanPair(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

// Stats summarizes the stored corpus.
type Stats struct {
	Documents             int
	Runs                  int
	Pairs                 int
	DistinctAbbreviations int
	ByDocument            map[string]int
	TopAbbreviations      []AbbrevCount
}

// AbbrevCount pairs an abbreviation with how many documents define it.
type AbbrevCount struct {
	Abbreviation string
	Count        int
}

// Stats computes corpus totals plus per-document and top-abbreviation
// breakdowns.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{ByDocument: make(map[string]int)}

	err := s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM document),
			(SELECT COUNT(*) FROM extraction_run),
			(SELECT COUNT(*) FROM abbreviation),
			(SELECT COUNT(DISTINCT abbreviation) FROM abbreviation)
	`).Scan(&stats.Documents, &stats.Runs, &stats.Pairs, &stats.DistinctAbbreviations)
	if err != nil {
		return nil, fmt.Errorf("count totals: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT d.label, COUNT(a.abbrev_id)
		FROM document d
		LEFT JOIN abbreviation a ON a.doc_id = d.doc_id
		GROUP BY d.label
	`)
	if err != nil {
		return nil, fmt.Errorf("per-document stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, fmt.Errorf("scan document stats: %w", err)
		}
		stats.ByDocument[label] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	topRows, err := s.db.Query(`
		SELECT abbreviation, COUNT(*)
		FROM abbreviation
		GROUP BY abbreviation
		ORDER BY COUNT(*) DESC, abbreviation
		LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("top abbreviations: %w", err)
	}
	defer topRows.Close()
	for topRows.Next() {
		var ac AbbrevCount
		if err := topRows.Scan(&ac.Abbreviation, &ac.Count); err != nil {
			return nil, fmt.Errorf("scan top abbreviation: %w", err)
		}
		stats.TopAbbreviations = append(stats.TopAbbreviations, ac)
	}
	return stats, topRows.Err()
}
