package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/tui/handlers"
)

var tabTitles = map[constants.SessionState]string{
	constants.StateCalendar: "Calendar",
	constants.StateAnalysis: "Analysis",
	constants.StateThemes:   "Themes",
	constants.StateVent:     "Vent",
	constants.StateSettings: "Settings",
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var content string

	switch m.State {
	case constants.StateCalendar:
		content = docStyle.Render(m.Calendar.View())
	case constants.StateAnalysis:
		content = docStyle.Render(m.Analysis.View())
	case constants.StateThemes:
		content = docStyle.Render(m.Themes.View())
	case constants.StateVent:
		content = docStyle.Render(m.Vent.View())
	case constants.StateSettings:
		content = m.SettingsModel.View()
	case constants.StateEditing, constants.StateEditSettings:
		content = docStyle.Render(m.Form.View())
	}

	var banner string
	if len(m.ValidationConflicts) > 0 && m.State == constants.StateCalendar {
		banner = m.viewConflictBanner()
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		m.viewStatus(),
		m.Help.View(m),
	)
	return ui
}

func (m Model) viewTabs() string {
	var tabs []string
	active := m.State
	switch active {
	case constants.StateEditing:
		active = constants.StateCalendar
	case constants.StateEditSettings:
		active = constants.StateSettings
	}
	for _, s := range handlers.Tabs {
		if s == active {
			tabs = append(tabs, m.Styles.ActiveTab.Render(tabTitles[s]))
		} else {
			tabs = append(tabs, m.Styles.Tab.Render(tabTitles[s]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	switch {
	case m.FormError != "":
		return m.Styles.Error.Render(m.FormError)
	case m.StatusMessage != "":
		return warningStyle.Render(m.StatusMessage)
	}
	return ""
}

func (m Model) viewConflictBanner() string {
	if len(m.ValidationConflicts) == 0 {
		return ""
	}
	bannerText := fmt.Sprintf("⚠ %d PROBLEM(S) DETECTED (run '%s doctor')", len(m.ValidationConflicts), constants.AppName)
	return bannerStyle.Render(bannerText)
}
