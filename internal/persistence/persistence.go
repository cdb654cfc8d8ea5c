// Package persistence stores the habit list as a JSON blob under a single
// preference key. Every failure degrades silently: a failed save leaves the
// in-memory list authoritative and a failed load reads as "no habits yet".
package persistence

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/habitone/internal/constants"
	"github.com/julianstephens/habitone/internal/logger"
	"github.com/julianstephens/habitone/internal/models"
	"github.com/julianstephens/habitone/internal/storage"
	"github.com/julianstephens/habitone/internal/validation"
)

// requiredKeys must be present and non-null on every stored habit.
// lastCompletedDate is the only optional field.
var requiredKeys = []string{"id", "title", "emoji", "isCompleted"}

type Adapter struct {
	kv  storage.KV
	key string
}

func New(kv storage.KV) *Adapter {
	return &Adapter{
		kv:  kv,
		key: constants.HabitsKey,
	}
}

// Save writes the full list under the habits key
func (a *Adapter) Save(habits []models.Habit) {
	if habits == nil {
		habits = []models.Habit{}
	}

	data, err := json.Marshal(habits)
	if err != nil {
		logger.Warn("Failed to serialize habits", "error", err)
		return
	}

	if err := a.kv.Set(a.key, data); err != nil {
		logger.Warn("Failed to write habits", "key", a.key, "error", err)
		return
	}

	logger.Debug("Saved habits", "key", a.key, "count", len(habits))
}

// Load returns the stored list, or an empty list if it is missing or malformed
func (a *Adapter) Load() []models.Habit {
	data, err := a.kv.Get(a.key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to read habits", "key", a.key, "error", err)
		}
		return []models.Habit{}
	}

	habits, err := Decode(data)
	if err != nil {
		logger.Warn("Discarding malformed habits", "key", a.key, "error", err)
		return []models.Habit{}
	}

	logger.Debug("Loaded habits", "key", a.key, "count", len(habits))
	return habits
}

// Clear removes the habits key
func (a *Adapter) Clear() error {
	if err := a.kv.Delete(a.key); err != nil {
		return fmt.Errorf("failed to clear habits: %w", err)
	}
	return nil
}

// Decode parses and validates a stored habit list. Any shape mismatch
// rejects the whole blob.
func Decode(data []byte) ([]models.Habit, error) {
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse habits: %w", err)
	}
	if entries == nil {
		// "null" decodes without error
		return nil, errors.New("habits blob is not an array")
	}
	for i, entry := range entries {
		if entry == nil {
			return nil, fmt.Errorf("habit %d is null", i)
		}
		for _, k := range requiredKeys {
			v, ok := entry[k]
			if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
				return nil, fmt.Errorf("habit %d: missing %q", i, k)
			}
		}
	}

	var habits []models.Habit
	if err := json.Unmarshal(data, &habits); err != nil {
		return nil, fmt.Errorf("failed to parse habits: %w", err)
	}

	if result := validation.New().ValidateHabits(habits); result.HasErrors() {
		return nil, result.Err()
	}

	return habits, nil
}
