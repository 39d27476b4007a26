package extract

import (
	"errors"
	"testing"
)

func TestSelectDefinition(t *testing.T) {
	tests := []struct {
		name    string
		def     string
		abbrev  string
		want    string
		wantErr error
	}{
		{
			name:   "full phrase anchors on word starts",
			def:    "World Health Organization",
			abbrev: "WHO",
			want:   "World Health Organization",
		},
		{
			name:   "leading words are trimmed to the anchor",
			def:    "the World Health Organization",
			abbrev: "WHO",
			want:   "World Health Organization",
		},
		{
			name:   "abbreviation letters may sit inside words",
			def:    "acute lymphoblastic leukemia",
			abbrev: "ALL",
			want:   "acute lymphoblastic leukemia",
		},
		{
			name:    "definition shorter than abbreviation",
			def:     "ab",
			abbrev:  "ABC",
			wantErr: ErrDefinitionTooShort,
		},
		{
			name:    "abbreviation is a word of the definition",
			def:     "the ABC format",
			abbrev:  "ABC",
			wantErr: ErrAbbrevIsFullWord,
		},
		{
			name:    "first character never found at a word start",
			def:     "aaa q",
			abbrev:  "XQ",
			wantErr: ErrNoAlignment,
		},
		{
			name:    "last character missing entirely",
			def:     "xyz zzz",
			abbrev:  "AB",
			wantErr: ErrAlignmentOverrun,
		},
		{
			name:    "too many words for a short abbreviation",
			def:     "able baker charlie delta echo bravo",
			abbrev:  "AB",
			wantErr: ErrDefinitionTooLong,
		},
		{
			name:    "unbalanced parentheses in matched region",
			def:     "apple (banana",
			abbrev:  "AB",
			wantErr: ErrUnbalancedDefinition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := Span{Text: tt.def, Start: 0, Stop: len(tt.def)}
			abbrev := Span{Text: tt.abbrev, Start: 0, Stop: len(tt.abbrev)}

			got, err := selectDefinition(def, abbrev)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("selectDefinition() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("selectDefinition() unexpected error: %v", err)
			}
			if got.Text != tt.want {
				t.Errorf("selectDefinition() = %q, want %q", got.Text, tt.want)
			}
			if tt.def[got.Start:got.Stop] != got.Text {
				t.Errorf("def[%d:%d] = %q, want %q", got.Start, got.Stop, tt.def[got.Start:got.Stop], got.Text)
			}
		})
	}
}

func TestSelectDefinitionNarrowedOffsets(t *testing.T) {
	line := "see the World Health Organization (WHO)"
	def := NewSpan(line, 4, 33) // "the World Health Organization"
	abbrev := NewSpan(line, 35, 38)

	got, err := selectDefinition(def, abbrev)
	if err != nil {
		t.Fatalf("selectDefinition() error: %v", err)
	}
	if got.Text != "World Health Organization" {
		t.Fatalf("selectDefinition() = %q", got.Text)
	}
	if got.Start != 8 || got.Stop != 33 {
		t.Errorf("narrowed offsets = [%d, %d), want [8, 33)", got.Start, got.Stop)
	}
	if line[got.Start:got.Stop] != got.Text {
		t.Errorf("line[%d:%d] = %q, want %q", got.Start, got.Stop, line[got.Start:got.Stop], got.Text)
	}
}

func TestSelectDefinitionBoundaryAnchor(t *testing.T) {
	// The terminal character must start a word: "SAP" cannot anchor on
	// the "sap" embedded in "unsapped".
	def := Span{Text: "whole unsapped phrase", Start: 0, Stop: 21}
	abbrev := Span{Text: "SAP", Start: 0, Stop: 3}

	_, err := selectDefinition(def, abbrev)
	if !errors.Is(err, ErrNoAlignment) {
		t.Fatalf("selectDefinition() error = %v, want %v", err, ErrNoAlignment)
	}
}

func TestRunesWithOffsets(t *testing.T) {
	runes, offsets := runesWithOffsets("héllo")
	if len(runes) != 5 || len(offsets) != 5 {
		t.Fatalf("runesWithOffsets length = %d/%d, want 5/5", len(runes), len(offsets))
	}
	if offsets[2] != 3 {
		t.Errorf("offset after multibyte rune = %d, want 3", offsets[2])
	}
}
