package handlers

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodcal/internal/analytics"
	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/editor"
	"github.com/julianstephens/moodcal/internal/tui/components/calendar"
	"github.com/julianstephens/moodcal/internal/tui/state"
)

// HandleCalendarMessages handles messages from the calendar component
func HandleCalendarMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case calendar.MonthChangedMsg:
		m.Calendar.SetGrid(analytics.MonthGrid{Month: msg.Month}, m.Today())
		m.Refresh()
		return true, nil
	case calendar.SelectDayMsg:
		if err := m.SelectDay(msg.Day); err != nil {
			m.StatusMessage = err.Error()
			return true, nil
		}
		m.StatusMessage = ""
		return true, nil
	case calendar.EditDayMsg:
		if err := m.SelectDay(msg.Day); err != nil {
			m.StatusMessage = err.Error()
			return true, nil
		}
		if m.Editor.Mode() != editor.Editable {
			m.StatusMessage = editor.ErrReadOnly.Error()
			return true, nil
		}
		mood, note := m.Editor.Buffer()
		m.EntryForm = &state.EntryFormModel{Mood: mood, Note: note}
		m.Form = NewEntryForm(m.EntryForm, msg.Day, m.Styles)
		m.FormError = ""
		m.StatusMessage = ""
		m.PreviousState = m.State
		m.State = constants.StateEditing
		return true, m.Form.Init()
	}
	return false, nil
}

// HandleEditingState drives the entry form and commits it through the editor
func HandleEditingState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.FormError = "" // Clear error on cancel
		m.State = constants.StateCalendar
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		if err := applyEntryForm(m); err != nil {
			if errors.Is(err, editor.ErrReadOnly) {
				// The day rolled over while the form was open.
				m.FormError = ""
				m.StatusMessage = err.Error()
				m.State = constants.StateCalendar
				m.Refresh()
				m.SyncSelection()
				return tea.Batch(cmds...)
			}
			// Stay in form state to allow retry
			m.FormError = err.Error()
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		m.FormError = ""
		m.StatusMessage = "Saved."
		m.State = constants.StateCalendar
		m.Refresh()
		m.SyncSelection()
	case huh.StateAborted:
		m.FormError = ""
		m.State = constants.StateCalendar
	}
	return tea.Batch(cmds...)
}

func applyEntryForm(m *state.Model) error {
	if err := m.Editor.SetMood(m.EntryForm.Mood); err != nil {
		return err
	}
	if m.EntryForm.Note == "" {
		if err := m.Editor.ClearNote(); err != nil {
			return err
		}
	} else if err := m.Editor.SetNote(m.EntryForm.Note); err != nil {
		return err
	}
	_, err := m.Editor.Commit()
	return err
}
