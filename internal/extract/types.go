package extract

import (
	"errors"
)

// Span is a substring of one line together with its byte offsets in that
// line. For any span cut from line, line[Start:Stop] == Text. Spans are
// values; every transformation builds a new one.
type Span struct {
	Text  string
	Start int // inclusive
	Stop  int // exclusive
}

// NewSpan cuts the half-open range [start, stop) out of line.
func NewSpan(line string, start, stop int) Span {
	return Span{Text: line[start:stop], Start: start, Stop: stop}
}

func (s Span) String() string {
	return s.Text
}

// Pair is one accepted abbreviation/definition match on a single line.
type Pair struct {
	Line       int // 0-indexed line number in the document
	Abbrev     Span
	Definition Span
}

// Result accumulates the outcome of one extraction pass.
type Result struct {
	// Pairs maps abbreviation text to its most recently accepted
	// definition. A later line defining the same abbreviation replaces
	// the earlier entry.
	Pairs map[string]Span
	// Found lists every accepted pair in document order, including
	// entries later superseded in Pairs.
	Found   []Pair
	Kept    int
	Omitted int
}

func newResult() *Result {
	return &Result{Pairs: make(map[string]Span)}
}

// Rejection conditions. The first two abort the whole line; the rest drop
// a single candidate.
var (
	ErrUnbalanced           = errors.New("unbalanced parentheses")
	ErrMisordered           = errors.New("first parenthesis is a close")
	ErrInsufficientKeys     = errors.New("not enough key-initial words before candidate")
	ErrNoDefinitionWindow   = errors.New("no defining word window found")
	ErrDefinitionTooShort   = errors.New("abbreviation longer than definition")
	ErrAbbrevIsFullWord     = errors.New("abbreviation is a full word of the definition")
	ErrNoAlignment          = errors.New("abbreviation characters not found in definition")
	ErrAlignmentOverrun     = errors.New("alignment ran out of characters")
	ErrDefinitionTooLong    = errors.New("definition exceeds length ratio limit")
	ErrUnbalancedDefinition = errors.New("unbalanced parentheses in definition")
)
