// Package anagram groups Bulgarian words that share an alphagram.
package anagram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"codeberg.org/snonux/bgrhyme/internal/classify"
)

// DefaultMinClassSize keeps every alphagram with at least two words.
const DefaultMinClassSize = 2

const (
	alphabet = "абвгдежзийклмнопрстуфхцчшщъьюя"
	numeric  = "0123456789"
)

// ErrNoLetters is returned for a word without a single countable letter.
var ErrNoLetters = errors.New("no letters")

// Normalize case-folds word and keeps only Bulgarian letters and digits. ѝ
// counts as и.
func Normalize(word string) string {
	word = strings.ReplaceAll(cases.Fold().String(word), "ѝ", "и")
	var sb strings.Builder
	for _, r := range word {
		if strings.ContainsRune(alphabet, r) || strings.ContainsRune(numeric, r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Alphagram returns the normalized letters of word in sorted order.
func Alphagram(word string) string {
	runes := []rune(Normalize(word))
	slices.Sort(runes)
	return string(runes)
}

// Template renders a wiki anagrams template for one class.
func Template(alphagram string, words []string) string {
	return "{{anagrams|bg|a=" + alphagram + "|" + strings.Join(words, "|") + "}}"
}

// Builder groups words into anagram classes.
type Builder struct {
	MinClassSize int
	Workers      int
	Logger       *slog.Logger
}

// NewBuilder returns a builder with default settings.
func NewBuilder() *Builder {
	return &Builder{MinClassSize: DefaultMinClassSize, Logger: slog.Default()}
}

// Build groups words by alphagram and drops classes below MinClassSize.
func (b *Builder) Build(ctx context.Context, words []string) (*classify.Classes, error) {
	g := &classify.Grouper{
		Workers: b.Workers,
		MinSize: b.MinClassSize,
		Logger:  b.Logger,
	}
	return g.Group(ctx, words, assign)
}

func assign(item string) (string, string, error) {
	word := strings.TrimSpace(item)
	key := Alphagram(word)
	if key == "" {
		return "", "", fmt.Errorf("%q: %w", item, ErrNoLetters)
	}
	return key, word, nil
}
