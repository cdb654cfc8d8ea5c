package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitone/internal/constants"
	"github.com/julianstephens/habitone/internal/habit"
	"github.com/julianstephens/habitone/internal/models"
	"github.com/julianstephens/habitone/internal/utils"
)

// ResetTickMsg fires every ResetCheckInterval to re-run the daily reset
type ResetTickMsg time.Time

func resetTick() tea.Cmd {
	return tea.Tick(constants.ResetCheckInterval, func(t time.Time) tea.Msg {
		return ResetTickMsg(t)
	})
}

// habitFeed holds the latest list the store announced. It is shared by every
// copy of the Model so the store listener can reach the live one.
type habitFeed struct {
	habits []models.Habit
	dirty  bool
}

type Model struct {
	store     *habit.Store
	feed      *habitFeed
	clock     utils.Clock
	state     constants.SessionState
	keys      KeyMap
	help      help.Model
	list      list.Model
	progress  progress.Model
	form      *huh.Form
	habitForm *HabitFormModel
	today     time.Time
	quitting  bool
	width     int
	height    int
}

func NewModel(store *habit.Store, clock utils.Clock) Model {
	l := list.New(toItems(store.Snapshot()), list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)

	feed := &habitFeed{}
	store.Subscribe(func(habits []models.Habit) {
		feed.habits = habits
		feed.dirty = true
	})

	return Model{
		store:    store,
		feed:     feed,
		clock:    clock,
		state:    constants.StateHabits,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		list:     l,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		today:    clock.Now(),
	}
}

func (m Model) ShortHelp() []key.Binding {
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return resetTick()
}

// sync applies the last list announced by the store, keeping the cursor in
// range. It reports whether the items changed.
func (m *Model) sync() bool {
	if !m.feed.dirty {
		return false
	}
	m.feed.dirty = false

	idx := m.list.Index()
	m.list.SetItems(toItems(m.feed.habits))
	if n := len(m.list.Items()); n > 0 {
		m.list.Select(min(idx, n-1))
	}
	return true
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height

	// header (2 lines), progress (2 lines), help (1 line) and padding
	reserved := 9
	m.list.SetSize(max(width-4, 0), max(height-reserved, 0))
	m.progress.Width = min(max(width-6, 10), 60)
	m.help.Width = width
}
