package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"jobtrack-client-go/internal/crypto"
	"jobtrack-client-go/internal/models"
)

// FileStore persists the session as a JSON file under the user's config
// directory. When an encryption key is configured, the file content is
// sealed with AES-256-GCM so the bearer token is not stored in the clear.
type FileStore struct {
	path string
	key  []byte // nil disables at-rest encryption
}

// NewFileStore creates a FileStore writing to the given path. key must be
// nil or a 32-byte AES-256 key.
func NewFileStore(path string, key []byte) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("session: file path is required")
	}
	if key != nil && len(key) != 32 {
		return nil, fmt.Errorf("session: encryption key must be 32 bytes, got %d", len(key))
	}
	return &FileStore{path: path, key: key}, nil
}

// Load reads the persisted session. Returns ErrNotFound when the file does
// not exist.
func (s *FileStore) Load() (*models.Session, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session: read %s: %w", s.path, err)
	}

	if s.key != nil {
		plain, err := crypto.Open(string(raw), s.key)
		if err != nil {
			return nil, fmt.Errorf("session: decrypt session file: %w", err)
		}
		raw = []byte(plain)
	}

	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("session: decode session file: %w", err)
	}
	if sess.Token == "" {
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Save writes the session, creating parent directories as needed. The file
// is user-readable only.
func (s *FileStore) Save(sess *models.Session) error {
	if sess == nil || sess.Token == "" {
		return fmt.Errorf("session: cannot save an empty session")
	}

	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: encode session: %w", err)
	}

	if s.key != nil {
		sealed, err := crypto.Seal(string(raw), s.key)
		if err != nil {
			return fmt.Errorf("session: encrypt session: %w", err)
		}
		raw = []byte(sealed)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("session: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("session: write %s: %w", s.path, err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an already-absent session is
// not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: remove %s: %w", s.path, err)
	}
	return nil
}
