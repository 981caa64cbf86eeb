package internal

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"вода", "вода"},
		{"Ябълка", "Ябълка"},
		{"ѝ", "ѝ"},
		{"a/b c", "a_b_c"},
		{"под-пис_1", "под-пис_1"},
		{"../етц", "___етц"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
