package rhyme

import (
	"errors"
	"strings"

	"codeberg.org/snonux/bgrhyme/internal/transcribe"
)

var (
	// ErrNoStress is returned by Key for a transcription without a primary
	// stress marker.
	ErrNoStress = errors.New("no stress present")

	// ErrUnstressed marks a word with several vowels and no stress mark.
	ErrUnstressed = errors.New("cannot accent a multisyllabic word without a stress mark")
)

const vowels = "aɤɔuɛiɐo"

// Key returns the rhyme key of a transcription: everything from the first
// vowel after the last primary stress marker. A marker with no vowel after
// it yields an empty key.
func Key(ipa string) (string, error) {
	i := strings.LastIndex(ipa, transcribe.Primary)
	if i < 0 {
		return "", ErrNoStress
	}
	rest := ipa[i:]
	if j := strings.IndexAny(rest, vowels); j >= 0 {
		return rest[j:], nil
	}
	return "", nil
}
