package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitone/internal/storage/sqlite"
)

// SQLiteStore adapts sqlite.Store to the Provider error contract
type SQLiteStore struct {
	store *sqlite.Store
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{store: sqlite.NewStore(path)}
}

func (s *SQLiteStore) Init() error  { return s.store.Init() }
func (s *SQLiteStore) Close() error { return s.store.Close() }

func (s *SQLiteStore) Load() error {
	err := s.store.Load()
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotInitialized
	}
	return err
}

func (s *SQLiteStore) Get(key string) ([]byte, error) {
	if s.store.GetDB() == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	value, err := s.store.Get(key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return value, err
}

func (s *SQLiteStore) Set(key string, value []byte) error {
	if s.store.GetDB() == nil {
		return fmt.Errorf("storage not loaded")
	}
	return s.store.Set(key, value)
}

func (s *SQLiteStore) Delete(key string) error {
	if s.store.GetDB() == nil {
		return fmt.Errorf("storage not loaded")
	}
	return s.store.Delete(key)
}

func (s *SQLiteStore) GetConfigPath() string { return s.store.GetConfigPath() }

// SchemaVersion reports the applied and latest schema versions for diagnostics
func (s *SQLiteStore) SchemaVersion() (current, latest int, err error) {
	if s.store.GetDB() == nil {
		return 0, 0, fmt.Errorf("storage not loaded")
	}
	return s.store.SchemaVersion()
}
