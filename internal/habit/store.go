// Package habit holds the in-memory habit list and the daily reset rule.
//
// The Store is not safe for concurrent use. Callers drive it from a single
// execution context (the TUI event loop or a one-shot CLI command), which is
// also where the periodic CheckDailyReset call must run.
package habit

import (
	"github.com/google/uuid"

	"github.com/julianstephens/habitone/internal/models"
	"github.com/julianstephens/habitone/internal/utils"
)

// Persister durably stores the habit list. Implementations degrade silently.
type Persister interface {
	Save([]models.Habit)
	Load() []models.Habit
}

// Listener receives a snapshot of the list after every change
type Listener func([]models.Habit)

type Store struct {
	habits    []models.Habit
	persister Persister
	clock     utils.Clock
	newID     func() string
	listeners []Listener
}

// NewStore hydrates a Store from the persister.
func NewStore(p Persister, clock utils.Clock) *Store {
	habits := p.Load()
	if habits == nil {
		habits = []models.Habit{}
	}
	return &Store{
		habits:    habits,
		persister: p,
		clock:     clock,
		newID:     uuid.NewString,
	}
}

// Subscribe registers fn to be called whenever the list changes
func (s *Store) Subscribe(fn Listener) {
	s.listeners = append(s.listeners, fn)
}

// Create appends a new incomplete habit. Title and emoji are taken as given;
// rejecting empty input is the caller's job. A habit with an empty title is
// saved, but persistence.Decode rejects it on the next load and the whole
// list reads back as empty.
func (s *Store) Create(title, emoji string) models.Habit {
	h := models.Habit{
		ID:    s.newID(),
		Title: title,
		Emoji: emoji,
	}
	s.habits = append(s.habits, h)
	s.resetStale()
	s.commit()
	return h.Clone()
}

// ToggleCompletion flips the completion flag of the habit with the given id.
// Completing a habit stamps LastCompletedDate; un-completing leaves it as is.
// Unknown ids are ignored.
func (s *Store) ToggleCompletion(id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}

	h := &s.habits[i]
	h.IsCompleted = !h.IsCompleted
	if h.IsCompleted {
		now := s.clock.Now()
		h.LastCompletedDate = &now
	}

	s.resetStale()
	s.commit()
}

// CheckDailyReset marks incomplete every habit whose last completion is not
// on the current calendar day. LastCompletedDate is kept. It reports whether
// any habit changed; only then is the list persisted.
func (s *Store) CheckDailyReset() bool {
	if !s.resetStale() {
		return false
	}
	s.commit()
	return true
}

// Snapshot returns a copy of the list in insertion order
func (s *Store) Snapshot() []models.Habit {
	out := make([]models.Habit, len(s.habits))
	for i, h := range s.habits {
		out[i] = h.Clone()
	}
	return out
}

// Find looks a habit up by id, falling back to an exact title match
func (s *Store) Find(idOrTitle string) (models.Habit, bool) {
	if i := s.indexOf(idOrTitle); i >= 0 {
		return s.habits[i].Clone(), true
	}
	for _, h := range s.habits {
		if h.Title == idOrTitle {
			return h.Clone(), true
		}
	}
	return models.Habit{}, false
}

// Len returns the number of habits
func (s *Store) Len() int {
	return len(s.habits)
}

func (s *Store) indexOf(id string) int {
	for i, h := range s.habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}

// resetStale applies the daily reset rule in memory and reports whether
// anything changed.
func (s *Store) resetStale() bool {
	now := s.clock.Now()
	changed := false
	for i := range s.habits {
		h := &s.habits[i]
		if h.IsCompleted && h.LastCompletedDate != nil && !utils.IsSameDay(*h.LastCompletedDate, now) {
			h.IsCompleted = false
			changed = true
		}
	}
	return changed
}

// commit writes the list through and notifies listeners
func (s *Store) commit() {
	s.persister.Save(s.Snapshot())
	for _, fn := range s.listeners {
		fn(s.Snapshot())
	}
}
