package rhyme

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"codeberg.org/snonux/bgrhyme/internal/transcribe"
)

const acute = "\u0301"

// DefaultStandIn is the ASCII character wordlists use in place of the
// combining acute.
const DefaultStandIn = "`"

// ReplaceStandIn trims a wordlist entry and turns every stand-in into a
// combining acute. An empty stand-in leaves the word unchanged.
func ReplaceStandIn(word, standIn string) string {
	word = strings.TrimSpace(word)
	if standIn == "" {
		return word
	}
	return strings.ReplaceAll(word, standIn, acute)
}

// Accent returns word with a primary stress mark. Words that already carry
// one are returned as is; a word with a single vowel letter gets the mark on
// that vowel. Anything else fails with ErrUnstressed.
func Accent(tables *transcribe.Tables, word string) (string, error) {
	if strings.Contains(norm.NFD.String(word), acute) {
		return word, nil
	}
	if tables.CountVowelLetters(transcribe.Fold(word)) != 1 {
		return "", fmt.Errorf("%q: %w", word, ErrUnstressed)
	}

	var sb strings.Builder
	for _, r := range norm.NFC.String(word) {
		sb.WriteRune(r)
		if strings.ContainsRune(tables.VowelLetters, unicode.ToLower(r)) {
			sb.WriteString(acute)
		}
	}
	return sb.String(), nil
}
