package rhyme

import (
	"context"
	"fmt"
	"log/slog"

	"codeberg.org/snonux/bgrhyme/internal/classify"
	"codeberg.org/snonux/bgrhyme/internal/transcribe"
)

// DefaultMinClassSize is the smallest rhyme class kept after a build.
const DefaultMinClassSize = 3

// Classes maps rhyme keys to the words that share them.
type Classes = classify.Classes

// Skip records a word left out of a build.
type Skip = classify.Skip

// Builder groups a wordlist into rhyme classes.
type Builder struct {
	Transcriber  *transcribe.Transcriber
	MinClassSize int
	Workers      int
	StandIn      string
	Logger       *slog.Logger
}

// NewBuilder returns a builder with default settings around tr.
func NewBuilder(tr *transcribe.Transcriber) *Builder {
	return &Builder{
		Transcriber:  tr,
		MinClassSize: DefaultMinClassSize,
		StandIn:      DefaultStandIn,
		Logger:       slog.Default(),
	}
}

// WordKey transcribes a single wordlist entry and returns its rhyme key and
// the stand-in converted word that represents it in a class.
func (b *Builder) WordKey(entry string) (key, word string, err error) {
	word = ReplaceStandIn(entry, b.StandIn)
	accented, err := Accent(b.Transcriber.Tables(), word)
	if err != nil {
		return "", word, err
	}
	ipa, err := b.Transcriber.Transcribe(accented)
	if err != nil {
		return "", word, err
	}
	key, err = Key(ipa)
	if err != nil {
		return "", word, fmt.Errorf("%q: %w", word, err)
	}
	return key, word, nil
}

// Build groups words by rhyme key. Words that cannot be stressed or
// transcribed are logged and listed in Classes.Skipped; classes smaller than
// MinClassSize are dropped once the whole list has been processed.
func (b *Builder) Build(ctx context.Context, words []string) (*Classes, error) {
	g := &classify.Grouper{
		Workers: b.Workers,
		MinSize: b.MinClassSize,
		Logger:  b.Logger,
	}
	return g.Group(ctx, words, b.WordKey)
}
