package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestHabitJSONFieldNames(t *testing.T) {
	completed := time.Date(2026, 10, 14, 8, 30, 0, 0, time.UTC)
	h := Habit{
		ID:                "5d7c5b9e-3f6a-4c1e-9a51-2b9d1f0e7c11",
		Title:             "Drink Water",
		Emoji:             "💧",
		IsCompleted:       true,
		LastCompletedDate: &completed,
	}

	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	for _, key := range []string{`"id"`, `"title"`, `"emoji"`, `"isCompleted"`, `"lastCompletedDate"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("encoded habit %s is missing key %s", data, key)
		}
	}
}

func TestHabitJSONOmitsNilDate(t *testing.T) {
	data, err := json.Marshal(Habit{ID: "x", Title: "Read", Emoji: "📖"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "lastCompletedDate") {
		t.Errorf("expected lastCompletedDate to be omitted, got %s", data)
	}
}

func TestHabitJSONAcceptsNullDate(t *testing.T) {
	var h Habit
	if err := json.Unmarshal([]byte(`{"id":"x","title":"Read","emoji":"📖","isCompleted":false,"lastCompletedDate":null}`), &h); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if h.LastCompletedDate != nil {
		t.Errorf("LastCompletedDate = %v, want nil", h.LastCompletedDate)
	}
}

func TestHabitClone(t *testing.T) {
	completed := time.Date(2026, 10, 14, 8, 30, 0, 0, time.UTC)
	h := Habit{ID: "x", Title: "Read", LastCompletedDate: &completed}

	c := h.Clone()
	*c.LastCompletedDate = c.LastCompletedDate.Add(time.Hour)

	if !h.LastCompletedDate.Equal(completed) {
		t.Errorf("mutating clone changed original date to %v", h.LastCompletedDate)
	}
}

func TestHabitLabel(t *testing.T) {
	tests := []struct {
		name  string
		habit Habit
		want  string
	}{
		{"with emoji", Habit{Title: "Read", Emoji: "📖"}, "📖 Read"},
		{"without emoji", Habit{Title: "Read"}, "Read"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.habit.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}
