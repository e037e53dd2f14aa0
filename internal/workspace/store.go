// Package workspace persists the panel layout between sessions and
// migrates documents written by older versions.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
)

// Store is the storage backend boundary. Keys are opaque strings chosen
// by the host; values are serialized documents.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// FileStore keeps one file per key under the XDG data directory.
type FileStore struct {
	dir string
}

// NewFileStore returns a store rooted at the app's XDG data directory.
func NewFileStore(appName string) (*FileStore, error) {
	path, err := xdg.DataFile(filepath.Join(appName, ".keep"))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	return &FileStore{dir: filepath.Dir(path)}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(key string) (string, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (s *FileStore) Set(key, value string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path(key), []byte(value), 0o644)
}

func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemStore is an in-memory store for tests and ephemeral sessions.
type MemStore struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]string)}
}

func (s *MemStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *MemStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
