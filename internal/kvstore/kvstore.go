// Package kvstore persists the studio's working data as JSON values in
// a single key-value table, one SQLite file per workspace.
package kvstore

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const (
	keyProjects = "projects"
	keyPosts    = "posts"
	keyTheme    = "theme"
)

// Item is a single piece of content in one of the studio collections.
// Projects use Link, posts leave it empty.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Link      string    `json:"link,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is a handle to the studio's key-value database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite file at path and makes
// sure the kv table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening studio database")
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating kv table")
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the raw value stored under key. A missing key is not an
// error; it returns the empty string.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "getting %s", key)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return errors.Wrapf(err, "setting %s", key)
	}
	return nil
}

// Delete removes key. Deleting a missing key is a no-op.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key)
	if err != nil {
		return errors.Wrapf(err, "deleting %s", key)
	}
	return nil
}

// Projects returns the stored project list, oldest first. An unset key
// yields an empty list.
func (s *Store) Projects() ([]Item, error) {
	return s.items(keyProjects)
}

// SaveProjects replaces the stored project list.
func (s *Store) SaveProjects(items []Item) error {
	return s.saveItems(keyProjects, items)
}

// Posts returns the stored post list, oldest first. An unset key yields
// an empty list.
func (s *Store) Posts() ([]Item, error) {
	return s.items(keyPosts)
}

// SavePosts replaces the stored post list.
func (s *Store) SavePosts(items []Item) error {
	return s.saveItems(keyPosts, items)
}

// Theme returns the persisted theme name, or "dark" when none has been
// chosen yet.
func (s *Store) Theme() (string, error) {
	value, err := s.Get(keyTheme)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "dark", nil
	}
	return value, nil
}

// SaveTheme persists the theme name.
func (s *Store) SaveTheme(name string) error {
	return s.Set(keyTheme, name)
}

func (s *Store) items(key string) ([]Item, error) {
	value, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}

	var items []Item
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", key)
	}
	return items, nil
}

func (s *Store) saveItems(key string, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	value, err := json.Marshal(items)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", key)
	}
	return s.Set(key, string(value))
}
