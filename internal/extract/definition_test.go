package extract

import (
	"errors"
	"testing"
)

// firstCandidate runs the finder and returns its first accepted span.
func firstCandidate(t *testing.T, line string) Span {
	t.Helper()
	cands, err := Candidates(line)
	if err != nil {
		t.Fatalf("Candidates(%q) error: %v", line, err)
	}
	if len(cands) == 0 {
		t.Fatalf("Candidates(%q) found nothing", line)
	}
	return cands[0]
}

func TestDefinitionWindow(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    string
		wantErr error
	}{
		{
			name: "window spans the defining words",
			line: "The World Health Organization (WHO) announced new guidance.",
			want: "World Health Organization",
		},
		{
			name: "window stops at the nearest key token",
			line: "a b World Health Organization (WHO)",
			want: "World Health Organization",
		},
		{
			name: "two key occurrences widen the window",
			line: "Wild World (WW)",
			want: "Wild World",
		},
		{
			name:    "no preceding text",
			line:    "(WHO)",
			wantErr: ErrInsufficientKeys,
		},
		{
			name:    "no key-initial token in front",
			line:    "the Organization (WHO)",
			wantErr: ErrInsufficientKeys,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := firstCandidate(t, tt.line)
			got, err := definitionWindow(cand, tt.line)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("definitionWindow() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("definitionWindow() unexpected error: %v", err)
			}
			if got.Text != tt.want {
				t.Errorf("definitionWindow() = %q, want %q", got.Text, tt.want)
			}
			if tt.line[got.Start:got.Stop] != got.Text {
				t.Errorf("line[%d:%d] = %q, want %q", got.Start, got.Stop, tt.line[got.Start:got.Stop], got.Text)
			}
		})
	}
}

func TestDefinitionWindowOffsetsWithExtraSpaces(t *testing.T) {
	line := "The  World  Health   Organization (WHO)"
	cand := firstCandidate(t, line)
	got, err := definitionWindow(cand, line)
	if err != nil {
		t.Fatalf("definitionWindow() error: %v", err)
	}
	if got.Text != "World  Health   Organization" {
		t.Errorf("definitionWindow() = %q", got.Text)
	}
	if line[got.Start:got.Stop] != got.Text {
		t.Errorf("offsets drifted: line[%d:%d] = %q", got.Start, got.Stop, line[got.Start:got.Stop])
	}
}

func TestFieldsWithOffsets(t *testing.T) {
	tests := []struct {
		input string
		want  []token
	}{
		{"one two", []token{{"one", 0}, {"two", 4}}},
		{"  padded  words ", []token{{"padded", 2}, {"words", 10}}},
		{"single", []token{{"single", 0}}},
		{"   ", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := fieldsWithOffsets(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("fieldsWithOffsets(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("fieldsWithOffsets(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}
