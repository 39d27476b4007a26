package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Exporter writes stored extraction data back out as CSV files.
type Exporter struct {
	store *Store
}

// NewExporter creates a new exporter over the store.
func NewExporter(store *Store) *Exporter {
	return &Exporter{store: store}
}

var pairHeader = []string{
	"Abbreviation", "Definition", "Document", "Line",
	"Abbrev_Start", "Abbrev_Stop", "Def_Start", "Def_Stop",
	"Run_ID", "Extracted_At",
}

var runHeader = []string{
	"Run_ID", "Run_UUID", "Label", "Started_At", "Completed_At",
	"Docs_Processed", "Pairs_Kept", "Pairs_Omitted",
}

// ExportCSVs writes abbreviation_pairs.csv and extraction_runs.csv into
// outputDir, creating the directory if needed. Returns the number of
// pair rows written.
func (e *Exporter) ExportCSVs(outputDir string) (int, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}

	pairs, err := e.store.AllPairs()
	if err != nil {
		return 0, err
	}
	pairRows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		pairRows = append(pairRows, pairRow(p))
	}
	if err := writeCSV(filepath.Join(outputDir, "abbreviation_pairs.csv"), pairHeader, pairRows); err != nil {
		return 0, err
	}

	runs, err := e.store.ListRuns(0)
	if err != nil {
		return 0, err
	}
	runRows := make([][]string, 0, len(runs))
	for _, r := range runs {
		runRows = append(runRows, runRow(r))
	}
	if err := writeCSV(filepath.Join(outputDir, "extraction_runs.csv"), runHeader, runRows); err != nil {
		return 0, err
	}

	return len(pairs), nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func pairRow(p StoredPair) []string {
	return []string{
		p.Abbreviation,
		p.Definition,
		p.DocLabel,
		strconv.Itoa(p.LineNo),
		strconv.Itoa(p.AbbrevStart),
		strconv.Itoa(p.AbbrevStop),
		strconv.Itoa(p.DefStart),
		strconv.Itoa(p.DefStop),
		strconv.FormatInt(p.RunID, 10),
		p.ExtractedAt.Format("2006-01-02 15:04:05"),
	}
}

func runRow(r Run) []string {
	completed := ""
	if r.CompletedAt != nil {
		completed = r.CompletedAt.Format("2006-01-02 15:04:05")
	}
	return []string{
		strconv.FormatInt(r.RunID, 10),
		r.RunUUID,
		r.Label,
		r.StartedAt.Format("2006-01-02 15:04:05"),
		completed,
		strconv.Itoa(r.DocsProcessed),
		strconv.Itoa(r.PairsKept),
		strconv.Itoa(r.PairsOmitted),
	}
}
