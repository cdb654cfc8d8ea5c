package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// preferenceFile is the on-disk layout of a JSONStore
type preferenceFile struct {
	Version     int               `json:"version"`
	Preferences map[string][]byte `json:"preferences"`
}

type JSONStore struct {
	path  string
	store *preferenceFile
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &preferenceFile{
		Version:     1,
		Preferences: make(map[string][]byte),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := &preferenceFile{}
	if err := json.Unmarshal(data, store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if store.Preferences == nil {
		store.Preferences = make(map[string][]byte)
	}
	s.store = store

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes through a temporary file that is renamed over the original
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Get(key string) ([]byte, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	value, ok := s.store.Preferences[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *JSONStore) Set(key string, value []byte) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Preferences[key] = append([]byte(nil), value...)
	return s.save()
}

func (s *JSONStore) Delete(key string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Preferences[key]; !ok {
		return nil
	}
	delete(s.store.Preferences, key)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
