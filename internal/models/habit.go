package models

import "time"

// Habit represents a daily practice with a completion flag for today
type Habit struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Emoji             string     `json:"emoji"`
	IsCompleted       bool       `json:"isCompleted"`
	LastCompletedDate *time.Time `json:"lastCompletedDate,omitempty"`
}

// Clone returns a copy of the habit that shares no memory with the original
func (h Habit) Clone() Habit {
	if h.LastCompletedDate != nil {
		t := *h.LastCompletedDate
		h.LastCompletedDate = &t
	}
	return h
}

// Label returns the emoji and title as shown in lists
func (h Habit) Label() string {
	if h.Emoji == "" {
		return h.Title
	}
	return h.Emoji + " " + h.Title
}
