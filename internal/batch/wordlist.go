package batch

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Invalid describes a wordlist line that was rejected.
type Invalid struct {
	Line int
	Text string
	Err  error
}

// Wordlist is the parsed content of a wordlist file.
type Wordlist struct {
	Words   []string
	Invalid []Invalid
}

// ReadWordlistFile reads a wordlist from a file.
func ReadWordlistFile(filename string) (*Wordlist, []byte, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read wordlist: %w", err)
	}
	wl, err := ParseWordlist(string(content))
	return wl, content, err
}

// ReadWordlist reads a wordlist from r.
// Format: one word per line, optionally pre-accented with a stand-in for the
// acute. Blank lines and lines starting with '#' are ignored; lines without
// Cyrillic letters are collected in Invalid.
func ReadWordlist(r io.Reader) (*Wordlist, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read wordlist: %w", err)
	}
	return ParseWordlist(string(content))
}

// ParseWordlist parses wordlist text.
func ParseWordlist(content string) (*Wordlist, error) {
	wl := &Wordlist{}
	for i, line := range splitLines(content) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := ValidateBulgarianText(line); err != nil {
			wl.Invalid = append(wl.Invalid, Invalid{Line: i + 1, Text: line, Err: err})
			continue
		}
		wl.Words = append(wl.Words, line)
	}
	return wl, nil
}

// splitLines splits a string by newlines
func splitLines(s string) []string {
	var lines []string
	current := ""
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, current)
			current = ""
		} else if r != '\r' {
			current += string(r)
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
