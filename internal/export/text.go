package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"codeberg.org/snonux/bgrhyme/internal/classify"
)

// WriteJSON encodes classes as a single key to words object. Non-ASCII text
// is written as is.
func WriteJSON(w io.Writer, c *classify.Classes) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c.Buckets); err != nil {
		return fmt.Errorf("failed to encode classes: %w", err)
	}
	return nil
}

// ReadJSON decodes classes written by WriteJSON.
func ReadJSON(r io.Reader) (*classify.Classes, error) {
	c := &classify.Classes{}
	if err := json.NewDecoder(r).Decode(&c.Buckets); err != nil {
		return nil, fmt.Errorf("failed to decode classes: %w", err)
	}
	if c.Buckets == nil {
		c.Buckets = make(map[string][]string)
	}
	return c, nil
}

// WriteCSV writes one "key,word1;word2;..." record per class, sorted by key.
func WriteCSV(w io.Writer, c *classify.Classes) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"key", "words"}); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for _, k := range c.Keys() {
		if err := writer.Write([]string{k, strings.Join(c.Buckets[k], ";")}); err != nil {
			return fmt.Errorf("failed to write class %q: %w", k, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
