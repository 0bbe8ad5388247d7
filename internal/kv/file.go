package kv

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

type fileState struct {
	Entries map[string]string `json:"entries"`
}

// FileStore persists all keys in a single JSON file. Every write
// rewrites the file; load tolerates a missing file.
type FileStore struct {
	mu   sync.RWMutex
	path string
	s    fileState
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	st := &FileStore{
		path: filepath.Join(dataDir, "homekeep.json"),
		s:    fileState{Entries: map[string]string{}},
	}
	if err := st.load(); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *FileStore) load() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var loaded fileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded.Entries == nil {
		loaded.Entries = map[string]string{}
	}
	s.s = loaded
	return nil
}

func (s *FileStore) saveLocked() error {
	b, err := json.MarshalIndent(s.s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.s.Entries[key]
	return v, ok, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.s.Entries[key] = value
	return s.saveLocked()
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.s.Entries, key)
	return s.saveLocked()
}
