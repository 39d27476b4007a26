// Package extract finds abbreviation/definition pairs in free text using
// the Schwartz-Hearst heuristic: an abbreviation is assumed to appear in
// parentheses immediately after the span of words that defines it, as in
// "the World Health Organization (WHO)". Candidates are discovered per
// line, a defining word window is located in front of each, and a backward
// character alignment decides whether the window really spells the
// abbreviation out.
package extract

import (
	"fmt"
	"strings"

	"github.com/abbrev-extract/internal/debug"
)

// LineScanner yields successive lines of a document. input.Source and
// bufio.Scanner both satisfy it.
type LineScanner interface {
	Scan() bool
	Text() string
	Err() error
}

// Config controls extraction behavior.
type Config struct {
	Debug bool // log every omitted candidate with its reason
}

// Extractor runs the candidate/locate/validate pipeline over lines of
// text. It carries no state between runs; the same Extractor may be
// reused for any number of documents.
type Extractor struct {
	config Config
}

func NewExtractor(config Config) *Extractor {
	return &Extractor{config: config}
}

// Extract consumes every line from the scanner and returns the
// accumulated result. Lines are processed independently: a malformed line
// is logged and skipped, a rejected candidate is counted as omitted, and
// processing always continues. The scanner's read error, if any, is
// returned alongside whatever was extracted before it.
func (e *Extractor) Extract(lines LineScanner) (*Result, error) {
	result := newResult()
	lineNo := 0
	for lines.Scan() {
		e.processLine(lineNo, lines.Text(), result)
		lineNo++
	}
	if err := lines.Err(); err != nil {
		return result, fmt.Errorf("reading input: %w", err)
	}
	debug.Logf(e.config.Debug, "%d abbreviations detected and kept (%d omitted)", result.Kept, result.Omitted)
	return result, nil
}

// ExtractLines runs extraction over lines already held in memory. Each
// line is whitespace-trimmed before processing, matching what Extract
// sees from a file or document source.
func (e *Extractor) ExtractLines(lines []string) *Result {
	result := newResult()
	for i, line := range lines {
		e.processLine(i, strings.TrimSpace(line), result)
	}
	debug.Logf(e.config.Debug, "%d abbreviations detected and kept (%d omitted)", result.Kept, result.Omitted)
	return result
}

func (e *Extractor) processLine(lineNo int, line string, result *Result) {
	candidates, err := Candidates(line)
	if err != nil {
		debug.Logf(e.config.Debug, "line %d: %v", lineNo, err)
		return
	}

	for _, cand := range candidates {
		window, err := definitionWindow(cand, line)
		if err != nil {
			debug.Logf(e.config.Debug, "line %d: omitting candidate %q: %v", lineNo, cand.Text, err)
			result.Omitted++
			continue
		}

		def, err := selectDefinition(window, cand)
		if err != nil {
			debug.Logf(e.config.Debug, "line %d: omitting definition %q for candidate %q: %v", lineNo, window.Text, cand.Text, err)
			result.Omitted++
			continue
		}

		result.Pairs[cand.Text] = def
		result.Found = append(result.Found, Pair{Line: lineNo, Abbrev: cand, Definition: def})
		result.Kept++
	}
}
