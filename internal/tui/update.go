package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitone/internal/constants"
	"github.com/julianstephens/habitone/internal/logger"
)

// Update routes msg and then applies any list change the store announced
// while handling it.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	m = next.(Model)
	m.sync()
	return m, cmd
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case ResetTickMsg:
		m.today = m.clock.Now()
		if m.store.CheckDailyReset() {
			logger.Info("Daily reset cleared completed habits", "day", m.today.Format(constants.DateFormat))
		}
		return m, resetTick()
	}

	if m.state == constants.StateAddHabit {
		return m.updateAddHabit(msg)
	}
	return m.updateHabits(msg)
}

func (m Model) updateHabits(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Add):
			m.habitForm = &HabitFormModel{}
			m.form = NewHabitForm(m.habitForm)
			m.state = constants.StateAddHabit
			return m, m.form.Init()

		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				m.store.ToggleCompletion(i.Habit.ID)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = constants.StateHabits
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.addHabit(m.habitForm.Title, m.habitForm.Emoji)
		return m, nil
	case huh.StateAborted:
		m.state = constants.StateHabits
		return m, nil
	}
	return m, cmd
}

// addHabit creates the habit from form input and selects it. Blank input
// is ignored; the form validators normally prevent it from reaching here.
func (m *Model) addHabit(title, emoji string) {
	m.state = constants.StateHabits
	title = strings.TrimSpace(title)
	emoji = strings.TrimSpace(emoji)
	if title == "" || emoji == "" {
		return
	}

	h := m.store.Create(title, emoji)
	logger.Debug("Added habit", "id", h.ID, "title", h.Title)
	m.sync()
	m.list.Select(len(m.list.Items()) - 1)
}
