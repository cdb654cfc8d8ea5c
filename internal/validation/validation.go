package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/habitone/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidID            ConflictType = "invalid_id"
	ConflictEmptyTitle           ConflictType = "empty_title"
	ConflictDuplicateID          ConflictType = "duplicate_id"
	ConflictDuplicateTitle       ConflictType = "duplicate_title"
	ConflictCompletedWithoutDate ConflictType = "completed_without_date"
)

// Severity separates conflicts that make a list unusable from ones worth reporting
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Conflict represents a problem found in a habit list
type Conflict struct {
	Type        ConflictType
	Severity    Severity
	Description string
	Index       int
	HabitID     string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors returns true if any conflict has error severity
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Err joins the error-severity conflicts, or returns nil when there are none
func (vr *ValidationResult) Err() error {
	var errs []error
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			errs = append(errs, errors.New(c.Description))
		}
	}
	return errors.Join(errs...)
}

// Warnings returns the warning-severity conflicts
func (vr *ValidationResult) Warnings() []Conflict {
	var out []Conflict
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityWarning {
			out = append(out, c)
		}
	}
	return out
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- [%s] %s\n", c.Severity, c.Description)
	}
	return b.String()
}

// Validator checks habit lists loaded from storage
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateHabits checks ids, titles and completion state of every habit
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	var result ValidationResult
	add := func(t ConflictType, sev Severity, i int, h models.Habit, format string, args ...interface{}) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        t,
			Severity:    sev,
			Description: fmt.Sprintf(format, args...),
			Index:       i,
			HabitID:     h.ID,
		})
	}

	ids := make(map[string]int, len(habits))
	titles := make(map[string]int, len(habits))
	for i, h := range habits {
		if _, err := uuid.Parse(h.ID); err != nil {
			add(ConflictInvalidID, SeverityError, i, h, "habit %d has invalid id %q", i, h.ID)
		}
		if h.Title == "" {
			add(ConflictEmptyTitle, SeverityError, i, h, "habit %d (%s) has an empty title", i, h.ID)
		}

		if first, ok := ids[h.ID]; ok {
			add(ConflictDuplicateID, SeverityError, i, h, "habit %d reuses id %s of habit %d", i, h.ID, first)
		} else {
			ids[h.ID] = i
		}

		if h.Title != "" {
			if first, ok := titles[h.Title]; ok {
				add(ConflictDuplicateTitle, SeverityWarning, i, h, "habits %d and %d share the title %q", first, i, h.Title)
			} else {
				titles[h.Title] = i
			}
		}

		if h.IsCompleted && h.LastCompletedDate == nil {
			add(ConflictCompletedWithoutDate, SeverityWarning, i, h, "habit %q is completed but has no completion date and will never reset", h.Title)
		}
	}

	return result
}
