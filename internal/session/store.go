// Package session persists the authenticated user's session across runs,
// the way the browser client kept it in localStorage under a fixed key.
package session

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"estatehub/client/internal/models"
)

// storageKey is the fixed name of the single persisted entry.
const storageKey = "userInfo"

// Store is a sqlite-backed single-entry session store. Writes are
// last-write-wins; there is no transactional coupling with in-memory state.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the session database at the given path.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS storage (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize session storage: %w", err)
	}

	return &Store{db: db}, nil
}

// Load returns the persisted session, or (nil, nil) when no session is
// stored.
func (s *Store) Load() (*models.Session, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM storage WHERE name = ?`, storageKey).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(value), &sess); err != nil {
		return nil, fmt.Errorf("failed to parse stored session: %w", err)
	}
	return &sess, nil
}

// Save replaces the persisted session with the given one.
func (s *Store) Save(sess *models.Session) error {
	value, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO storage (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value
	`, storageKey, string(value))
	return err
}

// Clear removes the persisted session. Clearing an empty store is a no-op.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM storage WHERE name = ?`, storageKey)
	return err
}

// Token returns the bearer token of the persisted session, or "" when no
// session (or no token) is stored. Read errors are treated as absence: an
// unreadable session must never block an anonymous request.
func (s *Store) Token() string {
	sess, err := s.Load()
	if err != nil || sess == nil {
		return ""
	}
	return sess.Token
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
