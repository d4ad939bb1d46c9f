package credential

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore keeps the credential in a single JSON file, mode 0600. Request
// decoration reads the slot concurrently with auth writes, so a mutex
// serialises access.
type FileStore struct {
	mu   sync.Mutex
	path string
}

type fileSlot struct {
	Token string `json:"token"`
}

// NewFileStore returns a FileStore writing to path. The file and its parent
// directory are created lazily on the first Save.
func NewFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("credential: file path is required")
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("credential: read %s: %w", s.path, err)
	}

	var slot fileSlot
	if err := json.Unmarshal(b, &slot); err != nil {
		return "", fmt.Errorf("credential: decode %s: %w", s.path, err)
	}
	if slot.Token == "" {
		return "", ErrNotFound
	}
	return slot.Token, nil
}

func (s *FileStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.Marshal(fileSlot{Token: token})
	if err != nil {
		return fmt.Errorf("credential: encode: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("credential: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("credential: write %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("credential: remove %s: %w", s.path, err)
	}
	return nil
}
