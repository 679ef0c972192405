// Package store persists the client's small scalar state: the session
// token, the vocabulary session identifier, and profile fields. Writes
// are explicit — the owning component calls a Set method right after
// mutating its in-memory state, never through hidden side effects.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Preference keys. The store is an opaque key→value table; these are
// the keys the client owns.
const (
	keyAuthToken      = "authToken"
	keyVocabSessionID = "vocabularySessionId"
	keyUsername       = "username"
	keyPhone          = "phone"
	keyProfession     = "profession"
)

// Store holds the prefs database.
type Store struct {
	db *sql.DB
}

// Open creates a Store connected to the SQLite database at dsn. It
// applies recommended pragmas and creates the schema if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS prefs (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-user client use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM prefs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read pref %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO prefs (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("write pref %s: %w", key, err)
	}
	return nil
}

func (s *Store) delete(keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.Exec(`DELETE FROM prefs WHERE key = ?`, key); err != nil {
			return fmt.Errorf("delete pref %s: %w", key, err)
		}
	}
	return nil
}

// AuthToken returns the persisted session token, empty if none.
func (s *Store) AuthToken() (string, error) {
	return s.get(keyAuthToken)
}

// SetAuthToken persists the session token.
func (s *Store) SetAuthToken(token string) error {
	return s.set(keyAuthToken, token)
}

// ClearAuthToken removes the session token. Called on logout or on a
// confirmed-invalid session.
func (s *Store) ClearAuthToken() error {
	return s.delete(keyAuthToken)
}

// VocabSessionID returns the persisted fallback session identifier.
func (s *Store) VocabSessionID() (string, error) {
	return s.get(keyVocabSessionID)
}

// SetVocabSessionID persists the fallback session identifier.
func (s *Store) SetVocabSessionID(id string) error {
	return s.set(keyVocabSessionID, id)
}

// Profile holds the scalar user profile fields. Their presence gates
// whether user data loading proceeds after authentication.
type Profile struct {
	Username   string
	Phone      string
	Profession string
}

// Complete reports whether the profile has the fields required to load
// user data.
func (p Profile) Complete() bool {
	return p.Username != ""
}

// Profile reads the persisted profile fields.
func (s *Store) Profile() (Profile, error) {
	var p Profile
	var err error
	if p.Username, err = s.get(keyUsername); err != nil {
		return Profile{}, err
	}
	if p.Phone, err = s.get(keyPhone); err != nil {
		return Profile{}, err
	}
	if p.Profession, err = s.get(keyProfession); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// SetProfile persists the profile fields.
func (s *Store) SetProfile(p Profile) error {
	if err := s.set(keyUsername, p.Username); err != nil {
		return err
	}
	if err := s.set(keyPhone, p.Phone); err != nil {
		return err
	}
	return s.set(keyProfession, p.Profession)
}

// ClearUserData removes every user-scoped key. Called on logout and on
// a confirmed-invalid session.
func (s *Store) ClearUserData() error {
	return s.delete(keyAuthToken, keyVocabSessionID, keyUsername, keyPhone, keyProfession)
}

// DefaultDBPath resolves the database file path in priority order:
// 1. LINGUA_DB environment variable
// 2. $XDG_DATA_HOME/lingua/lingua.db
// 3. ~/.local/share/lingua/lingua.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LINGUA_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "lingua", "lingua.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
