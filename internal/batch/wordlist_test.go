package batch

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseWordlist(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		want        []string
		wantInvalid []int
	}{
		{
			name:    "empty file",
			content: "",
			want:    nil,
		},
		{
			name:    "only whitespace",
			content: "   \n\t\r\n   ",
			want:    nil,
		},
		{
			name: "accented words",
			content: `вода` + "`" + `
ябълка
  котка  `,
			want: []string{"вода`", "ябълка", "котка"},
		},
		{
			name:    "windows line endings",
			content: "ябълка\r\nкотка\r\nкуче",
			want:    []string{"ябълка", "котка", "куче"},
		},
		{
			name: "comments and blanks",
			content: `# nouns
ябълка

# verbs
чета`,
			want: []string{"ябълка", "чета"},
		},
		{
			name: "invalid lines",
			content: `ябълка
apple
12345
котка`,
			want:        []string{"ябълка", "котка"},
			wantInvalid: []int{2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWordlist(tt.content)
			if err != nil {
				t.Fatalf("ParseWordlist() error = %v", err)
			}
			if !reflect.DeepEqual(got.Words, tt.want) {
				t.Errorf("Words = %v, want %v", got.Words, tt.want)
			}
			var lines []int
			for _, inv := range got.Invalid {
				lines = append(lines, inv.Line)
				if !errors.Is(inv.Err, ErrNoCyrillic) {
					t.Errorf("line %d error = %v, want ErrNoCyrillic", inv.Line, inv.Err)
				}
			}
			if !reflect.DeepEqual(lines, tt.wantInvalid) {
				t.Errorf("invalid lines = %v, want %v", lines, tt.wantInvalid)
			}
		})
	}
}

func TestReadWordlist(t *testing.T) {
	got, err := ReadWordlist(strings.NewReader("вода\nмама\n"))
	if err != nil {
		t.Fatalf("ReadWordlist() error = %v", err)
	}
	if want := []string{"вода", "мама"}; !reflect.DeepEqual(got.Words, want) {
		t.Errorf("Words = %v, want %v", got.Words, want)
	}
}

func TestReadWordlistFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(tmpFile, []byte("вода\nмама\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	got, raw, err := ReadWordlistFile(tmpFile)
	if err != nil {
		t.Fatalf("ReadWordlistFile() error = %v", err)
	}
	if len(got.Words) != 2 {
		t.Errorf("Words = %v, want 2 entries", got.Words)
	}
	if string(raw) != "вода\nмама\n" {
		t.Errorf("raw content = %q", raw)
	}
}

func TestReadWordlistFile_FileNotFound(t *testing.T) {
	_, _, err := ReadWordlistFile("/nonexistent/file.txt")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "unix line endings",
			input: "line1\nline2\nline3",
			want:  []string{"line1", "line2", "line3"},
		},
		{
			name:  "windows line endings",
			input: "line1\r\nline2\r\nline3",
			want:  []string{"line1", "line2", "line3"},
		},
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "trailing newline",
			input: "line1\nline2\n",
			want:  []string{"line1", "line2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLines(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitLines() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateBulgarianText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr error
	}{
		{"valid Bulgarian word", "ябълка", nil},
		{"accented word", "вода́", nil},
		{"empty text", "", ErrEmptyText},
		{"whitespace only", "   \t\n", ErrEmptyText},
		{"English text", "Hello world", ErrNoCyrillic},
		{"numbers only", "12345", ErrNoCyrillic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBulgarianText(tt.text)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateBulgarianText() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
