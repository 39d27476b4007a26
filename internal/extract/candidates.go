package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// acronymPattern short-circuits the acceptance rules: any candidate
// beginning with two or more letters, each optionally followed by a dot
// and a space, passes as-is. Dotted acronyms like "U.S.A" land here.
var acronymPattern = regexp.MustCompile(`^(\p{L}\.?\s?){2,}`)

// Candidates scans one line for parenthesized spans that plausibly name an
// abbreviation, in left-to-right order. A line whose parentheses do not
// balance, or whose first parenthesis is a closing one, fails as a whole.
// An opening parenthesis with no matching close is skipped without
// aborting the line.
func Candidates(line string) ([]Span, error) {
	if !strings.Contains(line, "(") {
		return nil, nil
	}

	if strings.Count(line, "(") != strings.Count(line, ")") {
		return nil, fmt.Errorf("%w: %s", ErrUnbalanced, line)
	}
	if strings.Index(line, "(") > strings.Index(line, ")") {
		return nil, fmt.Errorf("%w: %s", ErrMisordered, line)
	}

	var found []Span
	searchFrom := 0
	for {
		rel := strings.Index(line[searchFrom:], "(")
		if rel < 0 {
			break
		}
		openIdx := searchFrom + rel

		closeIdx, ok := matchingClose(line, openIdx)
		if !ok {
			searchFrom = openIdx + 1
			continue
		}

		cand := trimSpan(line, openIdx+1, closeIdx)
		if acceptable(cand.Text) {
			found = append(found, cand)
		}
		searchFrom = closeIdx + 1
	}
	return found, nil
}

// matchingClose walks forward from the opening parenthesis at openIdx,
// tracking nesting depth, and returns the offset of the close that
// balances it.
func matchingClose(line string, openIdx int) (int, bool) {
	depth := 0
	for i := openIdx; i < len(line); i++ {
		switch line[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// trimSpan cuts [start, stop) out of line and strips surrounding
// whitespace, moving the offsets onto the stripped text.
func trimSpan(line string, start, stop int) Span {
	raw := line[start:stop]
	left := strings.TrimLeftFunc(raw, unicode.IsSpace)
	start += len(raw) - len(left)
	trimmed := strings.TrimRightFunc(left, unicode.IsSpace)
	stop = start + len(trimmed)
	return Span{Text: trimmed, Start: start, Stop: stop}
}

// acceptable decides whether a trimmed parenthesis interior looks like an
// abbreviation: 2 to 10 characters, at most two words, at least one
// letter, starting with an alphanumeric character. Candidates matching
// acronymPattern skip those rules entirely.
func acceptable(text string) bool {
	if acronymPattern.MatchString(text) {
		return true
	}
	length := utf8.RuneCountInString(text)
	if length < 2 || length > 10 {
		return false
	}
	if len(strings.Fields(text)) > 2 {
		return false
	}
	if strings.IndexFunc(text, unicode.IsLetter) < 0 {
		return false
	}
	return isAlnum(firstRune(text))
}
