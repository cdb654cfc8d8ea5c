package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	StateHabits SessionState = iota
	StateAddHabit
)

const (
	EmptyHabitsMessage = "No habits yet 🫠\nPress 'a' to add one"
	CompletedMarker    = "✓"
	PendingMarker      = "○"
)
