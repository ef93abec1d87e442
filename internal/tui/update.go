package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/tui/components/vent"
	"github.com/julianstephens/moodcal/internal/tui/handlers"
)

// chromeHeight is the space taken by the tab bar, banner and help line.
const chromeHeight = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Forms own the keyboard while open.
	switch m.State {
	case constants.StateEditing:
		return m, handlers.HandleEditingState(&m.Model, msg)
	case constants.StateEditSettings:
		return m, handlers.HandleEditSettingsState(&m.Model, msg)
	}

	if handled, cmd := handlers.HandleCalendarMessages(&m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleThemeMessages(&m.Model, msg); handled {
		return m, cmd
	}
	if handled, cmd := handlers.HandleSettingsMessages(&m.Model, msg); handled {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		contentHeight := msg.Height - chromeHeight
		if contentHeight < 0 {
			contentHeight = 0
		}
		m.Calendar.SetSize(msg.Width, contentHeight)
		m.Analysis.SetSize(msg.Width-4, contentHeight)
		m.Vent.SetSize(msg.Width-4, contentHeight)
		m.SettingsModel.SetSize(msg.Width, contentHeight)
		return m, nil

	case vent.FrameMsg:
		var cmd tea.Cmd
		m.Vent, cmd = m.Vent.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if handled, cmd := handlers.HandleGlobalKeys(&m.Model, msg); handled {
			return m, cmd
		}
		if m.State == constants.StateVent && key.Matches(msg, m.Keys.Back) {
			if m.Vent.Focused() {
				m.Vent.Blur()
				return m, nil
			}
			return m, m.Vent.Focus()
		}
	}

	var cmd tea.Cmd
	switch m.State {
	case constants.StateCalendar:
		m.Calendar, cmd = m.Calendar.Update(msg)
	case constants.StateAnalysis:
		m.Analysis, cmd = m.Analysis.Update(msg)
	case constants.StateThemes:
		m.Themes, cmd = m.Themes.Update(msg)
	case constants.StateVent:
		m.Vent, cmd = m.Vent.Update(msg)
	case constants.StateSettings:
		m.SettingsModel, cmd = m.SettingsModel.Update(msg)
	}
	return m, cmd
}
