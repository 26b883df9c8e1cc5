package metadata

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

const diskSchema = `
CREATE TABLE IF NOT EXISTS object_info (
	name       TEXT PRIMARY KEY,
	fields     TEXT NOT NULL,
	fetched_at INTEGER NOT NULL
)`

// diskStore is the on-disk tier of the metadata cache: one SQLite table of
// JSON-encoded field maps. It only ever holds positive entries.
type diskStore struct {
	db *sql.DB
}

func openDiskStore(dir string) (*diskStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, "metadata.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening metadata cache: %w", err)
	}
	if _, err := db.Exec(diskSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing metadata cache: %w", err)
	}
	return &diskStore{db: db}, nil
}

func (s *diskStore) get(ctx context.Context, name string) (*ObjectInfo, bool, error) {
	var fieldsJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT fields FROM object_info WHERE name = ?`, name).Scan(&fieldsJSON)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var fields map[string]string
	if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
		return nil, false, fmt.Errorf("decoding cached entry %s: %w", name, err)
	}
	return &ObjectInfo{Name: name, Fields: fields}, true, nil
}

func (s *diskStore) put(ctx context.Context, info *ObjectInfo) error {
	fieldsJSON, err := json.Marshal(info.Fields)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO object_info (name, fields, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET fields = excluded.fields, fetched_at = excluded.fetched_at`,
		info.Name, string(fieldsJSON), time.Now().Unix())
	return err
}

func (s *diskStore) clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM object_info`)
	return err
}

func (s *diskStore) close() error {
	return s.db.Close()
}
