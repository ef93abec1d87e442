package handlers

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/models"
	"github.com/julianstephens/moodcal/internal/theme"
	"github.com/julianstephens/moodcal/internal/tui/state"
	"github.com/julianstephens/moodcal/internal/utils"
)

// FormTheme paints huh forms with the colours of the active theme.
func FormTheme(s theme.Styles) *huh.Theme {
	t := huh.ThemeBase()

	accent := s.Accent.GetForeground()
	text := s.Text.GetForeground()
	muted := s.Muted.GetForeground()
	errColor := s.Error.GetForeground()

	t.Focused.Base = t.Focused.Base.BorderForeground(s.Panel.GetBorderTopForeground())
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = t.Focused.Title.Foreground(accent).Bold(true)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(accent).Bold(true).MarginBottom(1)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(errColor)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(errColor)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(accent)
	t.Focused.NextIndicator = t.Focused.NextIndicator.Foreground(accent)
	t.Focused.PrevIndicator = t.Focused.PrevIndicator.Foreground(accent)
	t.Focused.Option = t.Focused.Option.Foreground(text)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(accent)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(text)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(s.Selected.GetForeground()).
		Background(s.Selected.GetBackground())
	t.Focused.Next = t.Focused.FocusedButton
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(muted)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(accent)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(accent)
	t.Focused.TextInput.Text = t.Focused.TextInput.Text.Foreground(text)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base
	t.Blurred.Title = t.Blurred.Title.Foreground(muted)
	t.Blurred.NextIndicator = lipgloss.NewStyle()
	t.Blurred.PrevIndicator = lipgloss.NewStyle()

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description
	return t
}

// NewEntryForm creates the form for today's mood and note
func NewEntryForm(fm *state.EntryFormModel, day models.Day, styles theme.Styles) *huh.Form {
	options := make([]huh.Option[models.Mood], 0, len(models.AllMoods))
	for _, mood := range models.AllMoods {
		options = append(options, huh.NewOption(mood.Emoji()+"  "+mood.Label(), mood))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.Mood]().
				Title("How was "+day.Key()+"?").
				Options(options...).
				Value(&fm.Mood).
				Validate(func(m models.Mood) error {
					if !m.Valid() {
						return fmt.Errorf("choose a mood")
					}
					return nil
				}),
			huh.NewText().
				Title("Note (optional)").
				Description(fmt.Sprintf("Up to %d characters", constants.NoteMaxLen)).
				CharLimit(constants.NoteMaxLen).
				Value(&fm.Note).
				Validate(func(s string) error {
					if !models.NoteFits(s) {
						return fmt.Errorf("note is longer than %d characters", constants.NoteMaxLen)
					}
					return nil
				}),
		),
	).WithTheme(FormTheme(styles))
}

// NewSettingsForm creates a new form for editing settings
func NewSettingsForm(fm *state.SettingsFormModel, styles theme.Styles) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Timezone (IANA name or 'Local')").
				Description("Examples: Local, UTC, America/New_York, Europe/London, Asia/Tokyo").
				Value(&fm.Timezone).
				Validate(func(s string) error {
					if !utils.ValidateTimezone(s) {
						return fmt.Errorf("invalid timezone name")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Daily reminder").
				Description("Notify when today's mood is still missing").
				Value(&fm.ReminderEnabled),
			huh.NewInput().
				Title("Reminder time (HH:MM)").
				Value(&fm.ReminderTime).
				Validate(func(s string) error {
					if !utils.ValidateTimeFormat(s) {
						return fmt.Errorf("invalid time format, use HH:MM")
					}
					return nil
				}),
		),
	).WithTheme(FormTheme(styles))
}
