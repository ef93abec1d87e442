package handlers

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/models"
	"github.com/julianstephens/moodcal/internal/storage"
	"github.com/julianstephens/moodcal/internal/tui/components/settings"
	"github.com/julianstephens/moodcal/internal/tui/state"
	"github.com/julianstephens/moodcal/internal/utils"
)

// HandleEditSettingsState handles the edit settings state
func HandleEditSettingsState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.FormError = "" // Clear error on cancel
		m.State = constants.StateSettings
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		newSettings := models.Settings{
			Timezone:        m.SettingsForm.Timezone,
			ReminderEnabled: m.SettingsForm.ReminderEnabled,
			ReminderTime:    m.SettingsForm.ReminderTime,
		}

		if err := storage.SaveSettings(m.Store, newSettings); err != nil {
			// Store error and stay in form state to allow retry
			m.FormError = "Failed to update settings: " + err.Error()
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		m.SettingsModel.SetSettings(newSettings)

		// A new timezone can move "today".
		if loc, err := utils.LoadLocation(newSettings.Timezone); err == nil {
			m.SetLocation(loc)
			m.Refresh()
			m.SyncSelection()
		}
		m.FormError = "" // Clear any previous errors
		m.State = constants.StateSettings
	case huh.StateAborted:
		m.FormError = "" // Clear error on abort
		m.State = constants.StateSettings
	}
	return tea.Batch(cmds...)
}

// HandleSettingsMessages handles messages from the settings component
func HandleSettingsMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg.(type) {
	case settings.EditSettingsMsg:
		currentSettings, err := storage.GetSettings(m.Store)
		if err != nil {
			m.FormError = "Failed to load settings: " + err.Error()
			// Initialize with defaults if loading fails
			currentSettings = models.DefaultSettings()
		} else {
			m.FormError = ""
		}

		m.SettingsForm = &state.SettingsFormModel{
			Timezone:        currentSettings.Timezone,
			ReminderEnabled: currentSettings.ReminderEnabled,
			ReminderTime:    currentSettings.ReminderTime,
		}
		m.Form = NewSettingsForm(m.SettingsForm, m.Styles)
		m.State = constants.StateEditSettings
		return true, m.Form.Init()
	}
	return false, nil
}
