package handlers

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodcal/internal/theme"
	"github.com/julianstephens/moodcal/internal/tui/components/themes"
	"github.com/julianstephens/moodcal/internal/tui/state"
)

// HandleThemeMessages handles messages from the themes component
func HandleThemeMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case themes.ApplyThemeMsg:
		t, err := theme.Save(m.Store, msg.ID)
		if err != nil {
			m.StatusMessage = "Failed to save theme: " + err.Error()
			return true, nil
		}
		m.ApplyTheme(t)
		m.StatusMessage = "Theme set to " + t.Name + "."
		return true, nil
	}
	return false, nil
}
