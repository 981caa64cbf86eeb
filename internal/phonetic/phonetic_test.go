package phonetic

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sony/gobreaker"
)

type fakeFetcher struct {
	ipa   string
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context, word string) (string, error) {
	f.calls++
	return f.ipa, f.err
}

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"voˈda", "voˈda"},
		{"/voˈda/", "voˈda"},
		{" [voˈda] ", "voˈda"},
		{"`voˈda`\nExplanation follows", "voˈda"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	for _, provider := range []string{"openai", "Gemini"} {
		f, err := New(provider, "key", "")
		if err != nil {
			t.Errorf("New(%q) error = %v", provider, err)
		}
		if _, ok := f.(*Breaker); !ok {
			t.Errorf("New(%q) = %T, want *Breaker", provider, f)
		}
	}

	if _, err := New("espeak", "key", ""); !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("New(espeak) error = %v, want ErrUnknownProvider", err)
	}
}

func TestFetchers_NoAPIKey(t *testing.T) {
	fetchers := map[string]Fetcher{
		"openai": NewOpenAIFetcher("", ""),
		"gemini": NewGeminiFetcher("", ""),
	}

	for name, f := range fetchers {
		t.Run(name, func(t *testing.T) {
			_, err := f.Fetch(context.Background(), "ябълка")
			if !errors.Is(err, ErrNoAPIKey) {
				t.Errorf("Fetch() error = %v, want ErrNoAPIKey", err)
			}
		})
	}
}

func TestDefaultModels(t *testing.T) {
	if f := NewOpenAIFetcher("k", ""); f.model == "" {
		t.Error("OpenAI fetcher has no default model")
	}
	if f := NewGeminiFetcher("k", ""); f.model != DefaultGeminiModel {
		t.Errorf("Gemini model = %q, want %q", f.model, DefaultGeminiModel)
	}
	if f := NewGeminiFetcher("k", "gemini-pro"); f.model != "gemini-pro" {
		t.Errorf("Gemini model = %q, want %q", f.model, "gemini-pro")
	}
}

func TestBreakerTrips(t *testing.T) {
	fake := &fakeFetcher{err: errors.New("boom")}
	b := NewBreaker("test", fake)

	for i := 0; i < 3; i++ {
		if _, err := b.Fetch(context.Background(), "вода"); err == nil {
			t.Fatal("expected error from failing fetcher")
		}
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", b.State())
	}

	_, err := b.Fetch(context.Background(), "вода")
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Fetch() on open breaker error = %v, want ErrOpenState", err)
	}
	if fake.calls != 3 {
		t.Errorf("fetcher called %d times, want 3", fake.calls)
	}
}

func TestBreakerIgnoresMissingKey(t *testing.T) {
	b := NewBreaker("test", NewOpenAIFetcher("", ""))

	for i := 0; i < 5; i++ {
		if _, err := b.Fetch(context.Background(), "вода"); !errors.Is(err, ErrNoAPIKey) {
			t.Fatalf("Fetch() error = %v, want ErrNoAPIKey", err)
		}
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", b.State())
	}
}

func TestFetchAndSave(t *testing.T) {
	tmpDir := t.TempDir()
	fake := &fakeFetcher{ipa: "voˈda"}

	ipa, err := FetchAndSave(context.Background(), fake, "вода", tmpDir)
	if err != nil {
		t.Fatalf("FetchAndSave() error = %v", err)
	}
	if ipa != "voˈda" {
		t.Errorf("FetchAndSave() = %q, want %q", ipa, "voˈda")
	}

	content, err := os.ReadFile(filepath.Join(tmpDir, "phonetic.txt"))
	if err != nil {
		t.Fatalf("Failed to read phonetic file: %v", err)
	}
	if string(content) != "вода\tvoˈda\n" {
		t.Errorf("phonetic.txt = %q", content)
	}
}

func TestFetchAndSave_InvalidDirectory(t *testing.T) {
	fake := &fakeFetcher{ipa: "voˈda"}

	_, err := FetchAndSave(context.Background(), fake, "вода", "/nonexistent/path")
	if err == nil {
		t.Error("Expected error for invalid directory")
	}
}

func TestFetch_Integration(t *testing.T) {
	keys := map[string]string{
		"openai": os.Getenv("OPENAI_API_KEY"),
		"gemini": os.Getenv("GEMINI_API_KEY"),
	}

	for provider, key := range keys {
		t.Run(provider, func(t *testing.T) {
			if key == "" {
				t.Skipf("Skipping integration test: no %s API key set", provider)
			}
			f, err := New(provider, key, "")
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			ipa, err := f.Fetch(context.Background(), "ябълка")
			if err != nil {
				t.Fatalf("Fetch() error = %v", err)
			}
			if ipa == "" {
				t.Error("empty transcription")
			}
			t.Logf("Reference IPA for 'ябълка': %s", ipa)
		})
	}
}
