package store

import (
	"fmt"
	"strings"
	"time"
)

// Document is one imported text in the stored corpus.
type Document struct {
	DocID      int64
	SourcePath string
	Label      string
	Content    string
	LineCount  int
	ImportedAt time.Time
}

// ImportDocument stores a document's full text and returns the saved row.
func (s *Store) ImportDocument(sourcePath, label, content string) (*Document, error) {
	doc := &Document{
		SourcePath: sourcePath,
		Label:      label,
		Content:    content,
		LineCount:  len(strings.Split(content, "\n")),
	}

	err := s.db.QueryRow(`
		INSERT INTO document (source_path, label, content, line_count)
		VALUES ($1, $2, $3, $4)
		RETURNING doc_id, imported_at
	`, doc.SourcePath, doc.Label, doc.Content, doc.LineCount).Scan(&doc.DocID, &doc.ImportedAt)
	if err != nil {
		return nil, fmt.Errorf("import document %q: %w", label, err)
	}
	return doc, nil
}

// ListDocuments returns every document's metadata, oldest first. Content
// is left empty; fetch it with GetDocument.
func (s *Store) ListDocuments() ([]Document, error) {
	rows, err := s.db.Query(`
		SELECT doc_id, source_path, label, line_count, imported_at
		FROM document
		ORDER BY doc_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.DocID, &d.SourcePath, &d.Label, &d.LineCount, &d.ImportedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// GetDocument loads one document including its content.
func (s *Store) GetDocument(docID int64) (*Document, error) {
	var d Document
	err := s.db.QueryRow(`
		SELECT doc_id, source_path, label, content, line_count, imported_at
		FROM document
		WHERE doc_id = $1
	`, docID).Scan(&d.DocID, &d.SourcePath, &d.Label, &d.Content, &d.LineCount, &d.ImportedAt)
	if err != nil {
		return nil, fmt.Errorf("get document %d: %w", docID, err)
	}
	return &d, nil
}

// Lines splits the document content back into the lines the extractor
// will process.
func (d *Document) Lines() []string {
	return strings.Split(d.Content, "\n")
}
