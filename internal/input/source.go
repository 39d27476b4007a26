// Package input supplies line-oriented text sources for extraction: plain
// or compressed files, and in-memory documents. Every line comes out
// whitespace-trimmed and valid UTF-8.
package input

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ulikunitz/xz"
	"golang.org/x/text/encoding/charmap"
)

// maxLineBytes caps how long a single input line may be.
const maxLineBytes = 1 << 20

// Source yields successive lines of one document. It satisfies the line
// scanner contract of the extract package: Scan, Text, Err.
type Source struct {
	scanner *bufio.Scanner
	closers []io.Closer
	line    string
}

// FromFile opens path for line reading. Files ending in .xz or .gz are
// decompressed transparently.
func FromFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}

	var reader io.Reader = f
	closers := []io.Closer{f}

	switch {
	case strings.HasSuffix(path, ".xz"):
		xzr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		reader = xzr
		// xz reader doesn't need closing
	case strings.HasSuffix(path, ".gz"):
		gzr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		reader = gzr
		closers = append([]io.Closer{gzr}, closers...)
	}

	return newSource(reader, closers), nil
}

// FromText wraps an in-memory document.
func FromText(text string) *Source {
	return newSource(strings.NewReader(text), nil)
}

// From picks the source for the given inputs: the file when path is
// non-empty, otherwise the document text. With neither, the source is
// empty, so extraction over it yields an empty result.
func From(path, text string) (*Source, error) {
	if path != "" {
		return FromFile(path)
	}
	return FromText(text), nil
}

func newSource(r io.Reader, closers []io.Closer) *Source {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &Source{scanner: scanner, closers: closers}
}

// Scan advances to the next line, returning false at end of input or on a
// read error.
func (s *Source) Scan() bool {
	if !s.scanner.Scan() {
		return false
	}
	s.line = strings.TrimSpace(recode(s.scanner.Text()))
	return true
}

// Text returns the current line.
func (s *Source) Text() string {
	return s.line
}

// Err returns the first error encountered while reading.
func (s *Source) Err() error {
	return s.scanner.Err()
}

// Close releases the underlying file and decompressor, if any. Closing an
// in-memory source is a no-op.
func (s *Source) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// recode returns line unchanged when it is valid UTF-8. Anything else is
// reinterpreted as Latin-1, which maps every byte to a code point and so
// never loses data, only fidelity.
func recode(line string) string {
	if utf8.ValidString(line) {
		return line
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().String(line)
	if err != nil {
		return line
	}
	return decoded
}
