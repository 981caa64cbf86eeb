// Package export writes built classes as JSON, CSV or into a SQLite
// database, and remembers which wordlist a build was made from.
package export

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"codeberg.org/snonux/bgrhyme/internal/classify"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatSQLite Format = "sqlite"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatCSV, FormatSQLite:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Extension returns the file extension used for f.
func (f Format) Extension() string {
	if f == FormatSQLite {
		return ".db"
	}
	return "." + string(f)
}

// Build is one classification run.
type Build struct {
	ID        string
	Kind      string
	Digest    string
	CreatedAt time.Time
	Classes   *classify.Classes
}

// NewBuild wraps classes built from a wordlist with the given digest.
func NewBuild(kind, digest string, classes *classify.Classes) *Build {
	return &Build{
		ID:        uuid.NewString(),
		Kind:      kind,
		Digest:    digest,
		CreatedAt: time.Now(),
		Classes:   classes,
	}
}

// Digest fingerprints wordlist content together with the build settings
// that shape the output.
func Digest(data []byte, settings ...string) string {
	h := blake3.New()
	h.Write(data)
	for _, s := range settings {
		h.Write([]byte{0})
		h.Write([]byte(s))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Save writes b to path in the given format.
func Save(path string, format Format, b *Build) error {
	switch format {
	case FormatSQLite:
		return WriteSQLite(path, b)
	case FormatJSON, FormatCSV:
		if err := writeFile(path, format, b); err != nil {
			return err
		}
		return writeDigest(path, b)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func writeFile(path string, format Format, b *Build) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", format, err)
	}
	defer file.Close()

	if format == FormatJSON {
		err = WriteJSON(file, b.Classes)
	} else {
		err = WriteCSV(file, b.Classes)
	}
	if err != nil {
		return err
	}
	return file.Close()
}

// StoredDigest returns the wordlist digest of the build last saved at path,
// or "" when there is none.
func StoredDigest(path string, format Format, kind string) (string, error) {
	if format == FormatSQLite {
		if _, err := os.Stat(path); err != nil {
			return "", nil
		}
		return LatestDigest(path, kind)
	}
	data, err := os.ReadFile(digestPath(path))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	fields := strings.Fields(string(data))
	if len(fields) < 2 || fields[1] != kind {
		return "", nil
	}
	return fields[0], nil
}

func digestPath(path string) string {
	return path + ".blake3"
}

func writeDigest(path string, b *Build) error {
	line := fmt.Sprintf("%s %s %s\n", b.Digest, b.Kind, b.ID)
	if err := os.WriteFile(digestPath(path), []byte(line), 0644); err != nil {
		return fmt.Errorf("failed to write digest: %w", err)
	}
	return nil
}

// Load reads classes saved at path, picking the decoder from the file
// extension. kind selects the build inside a SQLite database.
func Load(path, kind string) (*classify.Classes, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		b, err := LoadSQLite(path, kind)
		if err != nil {
			return nil, err
		}
		return b.Classes, nil
	case ".json":
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open classes: %w", err)
		}
		defer file.Close()
		return ReadJSON(file)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Ext(path))
}
