package handlers

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/tui/state"
)

// Tabs lists the main views in display order.
var Tabs = []constants.SessionState{
	constants.StateCalendar,
	constants.StateAnalysis,
	constants.StateThemes,
	constants.StateVent,
	constants.StateSettings,
}

// HandleGlobalKeys handles global key presses
func HandleGlobalKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return true, tea.Quit
	}

	// Typing in the vent box must not trigger shortcuts.
	typing := m.State == constants.StateVent && m.Vent.Focused()

	switch {
	case key.Matches(msg, m.Keys.Tab):
		return true, switchTab(m, 1)
	case key.Matches(msg, m.Keys.ShiftTab):
		return true, switchTab(m, -1)
	case typing:
		return false, nil
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		return true, nil
	}
	return false, nil
}

// switchTab cycles through the main views. Sub-states such as editing are
// left alone.
func switchTab(m *state.Model, step int) tea.Cmd {
	current := -1
	for i, s := range Tabs {
		if s == m.State {
			current = i
		}
	}
	if current < 0 {
		return nil
	}
	next := Tabs[(current+step+len(Tabs))%len(Tabs)]

	if m.State == constants.StateVent {
		m.Vent.Blur()
	}
	m.State = next
	m.StatusMessage = ""
	if next == constants.StateVent {
		return m.Vent.Focus()
	}
	return nil
}
