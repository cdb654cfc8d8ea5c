package tui

import (
	"github.com/charmbracelet/bubbles/list"

	"github.com/julianstephens/habitone/internal/constants"
	"github.com/julianstephens/habitone/internal/models"
)

type Item struct {
	Habit models.Habit
}

func (i Item) Title() string {
	marker := constants.PendingMarker
	if i.Habit.IsCompleted {
		marker = constants.CompletedMarker
	}
	return marker + " " + i.Habit.Label()
}

func (i Item) Description() string {
	if i.Habit.IsCompleted {
		return "completed today"
	}
	return "not completed today"
}

func (i Item) FilterValue() string { return i.Habit.Title }

func toItems(habits []models.Habit) []list.Item {
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = Item{Habit: h}
	}
	return items
}
