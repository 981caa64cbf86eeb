package export

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/bgrhyme/internal/classify"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS builds (
		id text PRIMARY KEY,
		kind text NOT NULL,
		digest text NOT NULL,
		created integer NOT NULL,
		classes integer NOT NULL,
		skipped integer NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS members (
		build_id text NOT NULL REFERENCES builds (id),
		key text NOT NULL,
		ord integer NOT NULL,
		word text NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS ix_builds_kind ON builds (kind, created)`,
	`CREATE INDEX IF NOT EXISTS ix_members_build_key ON members (build_id, key)`,
	`CREATE INDEX IF NOT EXISTS ix_members_word ON members (word)`,
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	for _, query := range schema {
		if _, err := db.Exec(query); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return db, nil
}

// WriteSQLite appends b to the database at path, creating it if needed.
func WriteSQLite(path string, b *Build) error {
	db, err := openDB(path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO builds (id, kind, digest, created, classes, skipped) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.Kind, b.Digest, b.CreatedAt.UnixMilli(), b.Classes.Len(), len(b.Classes.Skipped))
	if err != nil {
		return fmt.Errorf("failed to insert build: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO members (build_id, key, ord, word) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, k := range b.Classes.Keys() {
		for i, word := range b.Classes.Buckets[k] {
			if _, err := stmt.Exec(b.ID, k, i, word); err != nil {
				return fmt.Errorf("failed to insert member %q: %w", word, err)
			}
		}
	}

	return tx.Commit()
}

// LatestDigest returns the wordlist digest of the newest build of kind, or ""
// when the database has none.
func LatestDigest(path, kind string) (string, error) {
	b, err := latestBuild(path, kind)
	if err != nil || b == nil {
		return "", err
	}
	return b.Digest, nil
}

// LoadSQLite reads the newest build of kind from the database at path.
func LoadSQLite(path, kind string) (*Build, error) {
	b, err := latestBuild(path, kind)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("no %s build in %s", kind, path)
	}

	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`SELECT key, word FROM members WHERE build_id = ? ORDER BY key, ord`, b.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	b.Classes = &classify.Classes{Buckets: make(map[string][]string)}
	for rows.Next() {
		var key, word string
		if err := rows.Scan(&key, &word); err != nil {
			return nil, err
		}
		b.Classes.Buckets[key] = append(b.Classes.Buckets[key], word)
	}
	return b, rows.Err()
}

func latestBuild(path, kind string) (*Build, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var (
		b       = &Build{Kind: kind}
		created int64
	)
	err = db.QueryRow(`SELECT id, digest, created FROM builds WHERE kind = ? ORDER BY created DESC, rowid DESC LIMIT 1`, kind).
		Scan(&b.ID, &b.Digest, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query builds: %w", err)
	}
	b.CreatedAt = time.UnixMilli(created)
	return b, nil
}
