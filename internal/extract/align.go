package extract

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// selectDefinition aligns the abbreviation's characters backward against
// the definition window, narrows the window to the matched region, and
// enforces the length-ratio and parenthesis-balance constraints.
//
// Two cursors walk leftward from the ends of both strings: sindex over the
// abbreviation, lindex over the definition, both negative offsets from the
// end. Every abbreviation character must appear in order, and the match
// for its first character must sit on a word boundary.
func selectDefinition(def, abbrev Span) (Span, error) {
	defRunes, defOffsets := runesWithOffsets(def.Text)
	abbrevRunes := []rune(abbrev.Text)

	if len(defRunes) < len(abbrevRunes) {
		return Span{}, fmt.Errorf("%w: %q vs %q", ErrDefinitionTooShort, abbrev.Text, def.Text)
	}
	for _, word := range strings.Fields(def.Text) {
		if word == abbrev.Text {
			return Span{}, fmt.Errorf("%w: %q", ErrAbbrevIsFullWord, abbrev.Text)
		}
	}

	sindex, lindex := -1, -1
	for {
		if -lindex > len(defRunes) || -sindex > len(abbrevRunes) {
			return Span{}, fmt.Errorf("%w: %q in %q", ErrAlignmentOverrun, abbrev.Text, def.Text)
		}
		longchar := unicode.ToLower(defRunes[len(defRunes)+lindex])
		shortchar := unicode.ToLower(abbrevRunes[len(abbrevRunes)+sindex])

		// Punctuation inside the abbreviation advances the cursor,
		// but this step still compares the punctuation character.
		if !isAlnum(shortchar) {
			sindex--
		}

		if sindex == -len(abbrevRunes) {
			// Testing the abbreviation's first character: the
			// match must start a word.
			if shortchar == longchar {
				if lindex == -len(defRunes) || !isAlnum(defRunes[len(defRunes)+lindex-1]) {
					break
				}
				lindex--
			} else {
				lindex--
				if lindex == -(len(defRunes) + 1) {
					return Span{}, fmt.Errorf("%w: %q in %q", ErrNoAlignment, abbrev.Text, def.Text)
				}
			}
		} else {
			if shortchar == longchar {
				sindex--
			}
			lindex--
		}
	}

	narrowFrom := defOffsets[len(defRunes)+lindex]
	narrowed := Span{
		Text:  def.Text[narrowFrom:],
		Start: def.Start + narrowFrom,
		Stop:  def.Stop,
	}

	words := len(strings.Fields(narrowed.Text))
	length := len(abbrevRunes)
	limit := length + 5
	if length*2 < limit {
		limit = length * 2
	}
	if words > limit {
		return Span{}, fmt.Errorf("%w: %d words for %q", ErrDefinitionTooLong, words, abbrev.Text)
	}

	if strings.Count(narrowed.Text, "(") != strings.Count(narrowed.Text, ")") {
		return Span{}, fmt.Errorf("%w: %q", ErrUnbalancedDefinition, narrowed.Text)
	}

	return narrowed, nil
}

// runesWithOffsets decodes s into runes alongside each rune's byte offset.
func runesWithOffsets(s string) ([]rune, []int) {
	runes := make([]rune, 0, len(s))
	offsets := make([]int, 0, len(s))
	for i, r := range s {
		runes = append(runes, r)
		offsets = append(offsets, i)
	}
	return runes, offsets
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
