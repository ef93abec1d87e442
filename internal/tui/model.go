package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/journal"
	"github.com/julianstephens/moodcal/internal/storage"
	"github.com/julianstephens/moodcal/internal/tui/state"
)

type Model struct {
	state.Model
}

// NewModel builds the TUI over store. Journal reads go through j, and now and
// loc decide which day is today.
func NewModel(store storage.Provider, j *journal.Store, now func() time.Time, loc *time.Location) Model {
	return Model{Model: state.New(store, j, now, loc)}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.Keys.Tab, m.Keys.Quit, m.Keys.Help}
	switch m.State {
	case constants.StateCalendar:
		keys = append(keys, m.Calendar.Keys.Open, m.Calendar.Keys.Edit, m.Calendar.Keys.PrevMonth, m.Calendar.Keys.NextMonth)
	case constants.StateThemes:
		keys = append(keys, m.Themes.Keys.Apply)
	case constants.StateVent:
		keys = append(keys, m.Vent.Keys.Blow, m.Keys.Back)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.Keys.Tab, m.Keys.ShiftTab, m.Keys.Quit, m.Keys.Help}

	var actions []key.Binding
	switch m.State {
	case constants.StateCalendar:
		actions = m.Calendar.Bindings()
	case constants.StateThemes:
		actions = m.Themes.Bindings()
	case constants.StateVent:
		actions = append(m.Vent.Bindings(), m.Keys.Back)
	}

	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
