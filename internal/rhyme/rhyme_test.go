package rhyme

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"codeberg.org/snonux/bgrhyme/internal/logging"
	"codeberg.org/snonux/bgrhyme/internal/transcribe"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name    string
		ipa     string
		want    string
		wantErr error
	}{
		{"adjacent vowel", "voˈda", "a", nil},
		{"onset cluster", "isˈxɔt", "ɔt", nil},
		{"fronted vowel", "ˈja̟bɐɫkɐ", "a̟bɐɫkɐ", nil},
		{"last primary wins", "ˈmamɐ i ˈtato", "ato", nil},
		{"secondary ignored", "ˌrabotospoˈsɔbɛn", "ɔbɛn", nil},
		{"no vowel after marker", "kˈ", "", nil},
		{"no stress", "kak", "", ErrNoStress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Key(tt.ipa)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Key(%q) error = %v, want %v", tt.ipa, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Key(%q) = %q, want %q", tt.ipa, got, tt.want)
			}
		})
	}
}

func TestAccent(t *testing.T) {
	tables := transcribe.DefaultTables()

	tests := []struct {
		name    string
		word    string
		want    string
		wantErr error
	}{
		{"already accented", "вода" + acute, "вода" + acute, nil},
		{"single vowel", "как", "ка" + acute + "к", nil},
		{"single upper-case vowel", "ДА", "ДА" + acute, nil},
		{"several vowels", "мама", "", ErrUnstressed},
		{"no vowels", "бр", "", ErrUnstressed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accent(tables, tt.word)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Accent(%q) error = %v, want %v", tt.word, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Accent(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

func TestReplaceStandIn(t *testing.T) {
	if got := ReplaceStandIn("  вода`  ", "`"); got != "вода"+acute {
		t.Errorf("ReplaceStandIn() = %q, want %q", got, "вода"+acute)
	}
	if got := ReplaceStandIn("вода'", ""); got != "вода'" {
		t.Errorf("ReplaceStandIn() with empty stand-in = %q", got)
	}
}

func newTestBuilder() *Builder {
	b := NewBuilder(transcribe.NewTranscriber(nil, transcribe.DefaultOptions()))
	b.Logger = logging.Discard()
	b.Workers = 2
	return b
}

func TestBuildMinimumClassSize(t *testing.T) {
	b := newTestBuilder()

	two := []string{"вода`", "беда`", "изхо`д"}
	got, err := b.Build(context.Background(), two)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("two words per key produced classes %v", got.Buckets)
	}

	three := []string{"вода`", "беда`", "изхо`д", "среда`"}
	got, err = b.Build(context.Background(), three)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := map[string][]string{"a": {"вода" + acute, "беда" + acute, "среда" + acute}}
	if !reflect.DeepEqual(got.Buckets, want) {
		t.Errorf("Buckets = %v, want %v", got.Buckets, want)
	}
}

func TestBuildAutoAccentAndSkip(t *testing.T) {
	b := newTestBuilder()

	words := []string{"вода`", "беда`", "да", "мама", "ра\u0300бота"}
	got, err := b.Build(context.Background(), words)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// The one-vowel word joins its class as written.
	want := []string{"вода" + acute, "беда" + acute, "да"}
	if !reflect.DeepEqual(got.Buckets["a"], want) {
		t.Errorf("Buckets[a] = %v, want %v", got.Buckets["a"], want)
	}

	if len(got.Skipped) != 2 {
		t.Fatalf("Skipped = %v, want 2 entries", got.Skipped)
	}
	for _, s := range got.Skipped {
		if !errors.Is(s.Err, ErrUnstressed) {
			t.Errorf("skip %q: error = %v, want ErrUnstressed", s.Item, s.Err)
		}
	}
}

func TestBuildEveryClassMeetsMinimum(t *testing.T) {
	b := newTestBuilder()
	b.MinClassSize = 2

	words := []string{"вода`", "беда`", "изхо`д", "похо`д", "ня`ма", "как"}
	got, err := b.Build(context.Background(), words)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for k, members := range got.Buckets {
		if len(members) < b.MinClassSize {
			t.Errorf("class %q has %d members", k, len(members))
		}
	}
	if _, ok := got.Buckets["ɔt"]; !ok {
		t.Errorf("missing class ɔt in %v", got.Buckets)
	}
}

func TestWordKey(t *testing.T) {
	b := newTestBuilder()

	key, word, err := b.WordKey("сърце`")
	if err != nil {
		t.Fatalf("WordKey() error = %v", err)
	}
	if key != "ɛ" || word != "сърце"+acute {
		t.Errorf("WordKey() = %q, %q; want %q, %q", key, word, "ɛ", "сърце"+acute)
	}
}
