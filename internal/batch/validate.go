package batch

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrEmptyText  = errors.New("text cannot be empty")
	ErrNoCyrillic = errors.New("text must contain Cyrillic characters")
)

// ValidateBulgarianText validates that the input text contains valid Bulgarian text
func ValidateBulgarianText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	for _, r := range text {
		if unicode.In(r, unicode.Cyrillic) {
			return nil
		}
	}
	return ErrNoCyrillic
}
