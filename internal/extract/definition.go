package extract

import (
	"fmt"
	"unicode"
)

// token is a whitespace-delimited word with its byte offset in the string
// it was split from.
type token struct {
	text  string
	start int
}

// definitionWindow finds the word window in front of the candidate that is
// hypothesized to spell it out. The key is the candidate's lower-cased
// first character; the window is the shortest token suffix containing at
// least as many key-initial tokens as the candidate has key occurrences.
func definitionWindow(cand Span, line string) (Span, error) {
	// Exclude the space and opening parenthesis just before the
	// candidate. For a candidate at the very front of the line the
	// window is empty.
	prefixEnd := cand.Start - 2
	if prefixEnd < 0 {
		prefixEnd = 0
	}
	tokens := fieldsWithOffsets(line[:prefixEnd])

	key := unicode.ToLower(firstRune(cand.Text))

	firstChars := make([]rune, len(tokens))
	for i, t := range tokens {
		firstChars[i] = unicode.ToLower(firstRune(t.text))
	}

	windowFreq := 0
	for _, c := range firstChars {
		if c == key {
			windowFreq++
		}
	}
	candFreq := 0
	for _, r := range cand.Text {
		if unicode.ToLower(r) == key {
			candFreq++
		}
	}
	if candFreq > windowFreq {
		return Span{}, fmt.Errorf("%w: %q", ErrInsufficientKeys, cand.Text)
	}

	// Widen a suffix window one token at a time until it covers enough
	// key-initial tokens. The index lookup may find nothing new, in
	// which case the previous start persists.
	count := 0
	back := 0
	startIndex := len(firstChars) - 1
	for count < candFreq {
		if back > len(firstChars) {
			return Span{}, fmt.Errorf("%w: %q", ErrNoDefinitionWindow, cand.Text)
		}
		back++
		from := len(firstChars) - back
		if from < 0 {
			from = 0
		}
		for j := from; j < len(firstChars); j++ {
			if firstChars[j] == key {
				startIndex = j
				break
			}
		}
		count = 0
		for _, c := range firstChars[startIndex:] {
			if c == key {
				count++
			}
		}
	}

	return trimSpan(line, tokens[startIndex].start, cand.Start-1), nil
}

// fieldsWithOffsets splits s around runs of whitespace, like
// strings.Fields, keeping each field's byte offset.
func fieldsWithOffsets(s string) []token {
	var tokens []token
	inField := false
	fieldStart := 0
	for i, r := range s {
		if unicode.IsSpace(r) {
			if inField {
				tokens = append(tokens, token{text: s[fieldStart:i], start: fieldStart})
				inField = false
			}
		} else if !inField {
			fieldStart = i
			inField = true
		}
	}
	if inField {
		tokens = append(tokens, token{text: s[fieldStart:], start: fieldStart})
	}
	return tokens
}
