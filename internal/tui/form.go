package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

type HabitFormModel struct {
	Title string
	Emoji string
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

// NewHabitForm creates the form shown when adding a habit
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit name").
				Value(&fm.Title).
				Validate(required("habit name")),
			huh.NewInput().
				Title("Emoji").
				Placeholder("🔥💪🧠").
				Value(&fm.Emoji).
				Validate(required("emoji")),
		).Title("New Habit"),
	).WithTheme(huh.ThemeDracula())
}
