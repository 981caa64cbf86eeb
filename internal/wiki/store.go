// Package wiki reads Bulgarian pronunciation data out of wiki pages and
// writes pronunciation sections back. Pages are reached through the Fetcher
// and Saver contracts; DirStore implements both on a local directory.
package wiki

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/snonux/bgrhyme/internal"
)

// ErrNotFound is returned when a page does not exist.
var ErrNotFound = errors.New("page not found")

// Fetcher returns the raw markup of a titled page.
type Fetcher interface {
	Fetch(ctx context.Context, title string) (string, error)
}

// Saver stores edited markup together with an edit summary.
type Saver interface {
	Save(ctx context.Context, title, text, summary string) error
}

// DirStore keeps one "<title>.wiki" file per page in Dir. Edit summaries go
// to a "<title>.summary" file next to it.
type DirStore struct {
	Dir string
}

func (s *DirStore) path(title, ext string) string {
	return filepath.Join(s.Dir, internal.SanitizeFilename(title)+ext)
}

// Fetch implements Fetcher.
func (s *DirStore) Fetch(ctx context.Context, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.path(title, ".wiki"))
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%q: %w", title, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read page %q: %w", title, err)
	}
	return string(data), nil
}

// Save implements Saver.
func (s *DirStore) Save(ctx context.Context, title, text, summary string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create wiki directory: %w", err)
	}
	if err := os.WriteFile(s.path(title, ".wiki"), []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to save page %q: %w", title, err)
	}
	if err := os.WriteFile(s.path(title, ".summary"), []byte(summary+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to save edit summary for %q: %w", title, err)
	}
	return nil
}
