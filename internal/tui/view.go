package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitone/internal/constants"
	"github.com/julianstephens/habitone/internal/habit"
	"github.com/julianstephens/habitone/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == constants.StateAddHabit && m.form != nil {
		return docStyle.Render(m.form.View())
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		m.viewHabits(),
		m.help.View(m),
	)
	return docStyle.Render(ui)
}

func (m Model) viewHeader() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("HabitOne"),
		dateStyle.Render(utils.FormatHeaderDate(m.today)),
	)
}

func (m Model) viewHabits() string {
	if len(m.list.Items()) == 0 {
		return emptyStyle.Render(constants.EmptyHabitsMessage)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.list.View(),
		m.viewProgress(),
	)
}

func (m Model) viewProgress() string {
	_, _, ratio := habit.Progress(m.store.Snapshot())
	return lipgloss.JoinVertical(
		lipgloss.Left,
		progressLabelStyle.Render(fmt.Sprintf("Progress: %d%%", habit.Percent(ratio))),
		progressLabelStyle.Render(m.progress.ViewAs(ratio)),
	)
}
