package input

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"
)

func collect(t *testing.T, s *Source) []string {
	t.Helper()
	var lines []string
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	return lines
}

func TestFromText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lines are trimmed",
			text: "  first line  \n\tsecond line\n",
			want: []string{"first line", "second line"},
		},
		{
			name: "blank lines survive as empty strings",
			text: "one\n   \nthree",
			want: []string{"one", "", "three"},
		},
		{
			name: "empty document yields nothing",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := FromText(tt.text)
			defer src.Close()

			got := collect(t, src)
			if len(got) != len(tt.want) {
				t.Fatalf("lines = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLatin1Fallback(t *testing.T) {
	// 0xE9 is é in Latin-1 but not valid UTF-8 on its own.
	src := FromText("caf\xe9 (CAFE)")
	defer src.Close()

	got := collect(t, src)
	if len(got) != 1 {
		t.Fatalf("lines = %q, want one line", got)
	}
	if got[0] != "café (CAFE)" {
		t.Errorf("line = %q, want %q", got[0], "café (CAFE)")
	}
}

func TestUTF8PassesThrough(t *testing.T) {
	src := FromText("café (CAFÉ)")
	defer src.Close()

	got := collect(t, src)
	if len(got) != 1 || got[0] != "café (CAFÉ)" {
		t.Errorf("lines = %q, want the UTF-8 line unchanged", got)
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("  World Health Organization (WHO)  \nsecond\n"), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile() error: %v", err)
	}
	defer src.Close()

	got := collect(t, src)
	if len(got) != 2 || got[0] != "World Health Organization (WHO)" || got[1] != "second" {
		t.Errorf("lines = %q", got)
	}
}

func TestFromFileMissing(t *testing.T) {
	if _, err := FromFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("FromFile() on missing file: want error")
	}
}

func TestFromFileGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte("alpha\nbeta\n")); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	src, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile() error: %v", err)
	}
	defer src.Close()

	got := collect(t, src)
	if len(got) != 2 || got[0] != "alpha" || got[1] != "beta" {
		t.Errorf("lines = %q", got)
	}
}

func TestFromFileXZ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt.xz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	xzw, err := xz.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := xzw.Write([]byte("gamma\ndelta\n")); err != nil {
		t.Fatal(err)
	}
	if err := xzw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	src, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile() error: %v", err)
	}
	defer src.Close()

	got := collect(t, src)
	if len(got) != 2 || got[0] != "gamma" || got[1] != "delta" {
		t.Errorf("lines = %q", got)
	}
}

func TestFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("from file\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("path wins over text", func(t *testing.T) {
		src, err := From(path, "from text")
		if err != nil {
			t.Fatalf("From() error: %v", err)
		}
		defer src.Close()
		got := collect(t, src)
		if len(got) != 1 || got[0] != "from file" {
			t.Errorf("lines = %q", got)
		}
	})

	t.Run("text alone", func(t *testing.T) {
		src, err := From("", "from text")
		if err != nil {
			t.Fatalf("From() error: %v", err)
		}
		defer src.Close()
		got := collect(t, src)
		if len(got) != 1 || got[0] != "from text" {
			t.Errorf("lines = %q", got)
		}
	})

	t.Run("neither yields empty source", func(t *testing.T) {
		src, err := From("", "")
		if err != nil {
			t.Fatalf("From() error: %v", err)
		}
		defer src.Close()
		if src.Scan() {
			t.Error("Scan() = true on empty source")
		}
		if err := src.Err(); err != nil {
			t.Errorf("Err() = %v", err)
		}
	})
}

func TestLongLine(t *testing.T) {
	long := strings.Repeat("a", 100*1024)
	src := FromText(long + " (AAA)\n")
	defer src.Close()

	got := collect(t, src)
	if len(got) != 1 {
		t.Fatalf("lines = %d, want 1", len(got))
	}
	if len(got[0]) != len(long)+len(" (AAA)") {
		t.Errorf("line length = %d, want %d", len(got[0]), len(long)+len(" (AAA)"))
	}
}
