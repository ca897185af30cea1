package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Store persists the session to disk between invocations.
type Store struct {
	path string
}

// NewStore creates a store at <dir>/session.json.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, "session.json")}
}

// Load reads the persisted session. A missing file or an expired session
// yields (nil, nil): the caller sees "not logged in", not an error.
func (st *Store) Load() (*Session, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	if sess.AccessToken == "" || sess.IsExpired() {
		return nil, nil
	}
	return &sess, nil
}

// Save writes the session to disk with owner-only permissions.
func (st *Store) Save(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(st.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(st.path, data, 0600)
}

// Delete removes the persisted session. Missing file is not an error.
func (st *Store) Delete() error {
	if err := os.Remove(st.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
