package phonetic

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNoAPIKey        = errors.New("API key not configured")
	ErrEmptyResponse   = errors.New("empty response from model")
	ErrUnknownProvider = errors.New("unknown reference provider")
)

// Fetcher returns a reference transcription for a word.
type Fetcher interface {
	Fetch(ctx context.Context, word string) (string, error)
}

const systemPrompt = "You are a Bulgarian phonetics expert. Answer with a broad phonemic IPA transcription only, " +
	"without brackets, slashes or explanations. Put the primary stress mark ˈ before the stressed syllable " +
	"and reduce unstressed vowels as in standard Sofia pronunciation."

func userPrompt(word string) string {
	return fmt.Sprintf("Transcribe the Bulgarian word '%s'.", word)
}

// New creates the fetcher for provider ("openai" or "gemini"), wrapped in a
// circuit breaker. An empty model selects the provider default.
func New(provider, apiKey, model string) (Fetcher, error) {
	var f Fetcher
	switch strings.ToLower(provider) {
	case "openai":
		f = NewOpenAIFetcher(apiKey, model)
	case "gemini":
		f = NewGeminiFetcher(apiKey, model)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
	return NewBreaker(provider, f), nil
}

// Clean strips the decoration models tend to add around a transcription.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.Trim(s, " /[]`\"'")
	return strings.TrimSpace(s)
}

// FetchAndSave fetches the reference transcription of word and writes it
// to phonetic.txt in dir. It returns the transcription.
func FetchAndSave(ctx context.Context, f Fetcher, word, dir string) (string, error) {
	ipa, err := f.Fetch(ctx, word)
	if err != nil {
		return "", err
	}

	phoneticFile := filepath.Join(dir, "phonetic.txt")
	if err := os.WriteFile(phoneticFile, []byte(word+"\t"+ipa+"\n"), 0644); err != nil {
		return "", fmt.Errorf("failed to write phonetic file: %w", err)
	}
	return ipa, nil
}
