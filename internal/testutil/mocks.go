package testutil

import (
	"context"
	"fmt"
	"sync"

	"codeberg.org/snonux/bgrhyme/internal/wiki"
)

// MockFetcher mocks a reference transcription provider
type MockFetcher struct {
	Responses map[string]string
	Errors    map[string]error

	mu    sync.Mutex
	Calls []string
}

// Fetch returns the canned response for word
func (m *MockFetcher) Fetch(ctx context.Context, word string) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, word)
	m.mu.Unlock()

	if err, ok := m.Errors[word]; ok {
		return "", err
	}
	if ipa, ok := m.Responses[word]; ok {
		return ipa, nil
	}
	return "", fmt.Errorf("no mock response for %q", word)
}

// MockWikiStore keeps pages in memory
type MockWikiStore struct {
	Pages     map[string]string
	Summaries map[string]string
}

// NewMockWikiStore creates a store holding pages
func NewMockWikiStore(pages map[string]string) *MockWikiStore {
	if pages == nil {
		pages = make(map[string]string)
	}
	return &MockWikiStore{Pages: pages, Summaries: make(map[string]string)}
}

// Fetch returns the stored page text
func (m *MockWikiStore) Fetch(ctx context.Context, title string) (string, error) {
	text, ok := m.Pages[title]
	if !ok {
		return "", fmt.Errorf("%s: %w", title, wiki.ErrNotFound)
	}
	return text, nil
}

// Save replaces the stored page text
func (m *MockWikiStore) Save(ctx context.Context, title, text, summary string) error {
	m.Pages[title] = text
	m.Summaries[title] = summary
	return nil
}
