package storage

import (
	"errors"
	"strings"

	"github.com/julianstephens/habitone/internal/constants"
)

var (
	// ErrNotFound is returned by Get when no value is stored under the key
	ErrNotFound = errors.New("preference not found")
	// ErrNotInitialized is returned by Load when the backing store does not exist yet
	ErrNotInitialized = errors.New("storage not initialized, run 'habitone init' first")
)

// KV is a flat key-value preference store.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

type Provider interface {
	KV

	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Utils
	GetConfigPath() string
}

// NewProvider picks a provider from the shape of the config path:
// ":memory:" keeps everything in process, a .json suffix selects a flat
// JSON file, and anything else is a SQLite database.
func NewProvider(path string) Provider {
	switch {
	case path == constants.MemoryConfigPath:
		return NewMemoryStore()
	case strings.HasSuffix(strings.ToLower(path), ".json"):
		return NewJSONStore(path)
	default:
		return NewSQLiteStore(path)
	}
}
