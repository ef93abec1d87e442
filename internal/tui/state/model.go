package state

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/moodcal/internal/analytics"
	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/editor"
	"github.com/julianstephens/moodcal/internal/journal"
	"github.com/julianstephens/moodcal/internal/logger"
	"github.com/julianstephens/moodcal/internal/models"
	"github.com/julianstephens/moodcal/internal/storage"
	"github.com/julianstephens/moodcal/internal/theme"
	"github.com/julianstephens/moodcal/internal/tui/components/analysis"
	"github.com/julianstephens/moodcal/internal/tui/components/calendar"
	"github.com/julianstephens/moodcal/internal/tui/components/settings"
	"github.com/julianstephens/moodcal/internal/tui/components/themes"
	"github.com/julianstephens/moodcal/internal/tui/components/vent"
	"github.com/julianstephens/moodcal/internal/validation"
	"github.com/julianstephens/moodcal/internal/window"
)

// EntryFormModel backs the mood entry form
type EntryFormModel struct {
	Mood models.Mood
	Note string
}

// SettingsFormModel backs the settings form
type SettingsFormModel struct {
	Timezone        string
	ReminderEnabled bool
	ReminderTime    string
}

// Model represents the shared state for the TUI
type Model struct {
	Store               storage.Provider
	Journal             *journal.Store
	Editor              *editor.Editor
	Now                 func() time.Time
	Loc                 *time.Location
	Theme               theme.Theme
	Styles              theme.Styles
	State               constants.SessionState
	PreviousState       constants.SessionState
	Keys                KeyMap
	Help                help.Model
	Calendar            calendar.Model
	Analysis            analysis.Model
	Themes              themes.Model
	Vent                vent.Model
	SettingsModel       settings.Model
	Form                *huh.Form
	EntryForm           *EntryFormModel
	SettingsForm        *SettingsFormModel
	Quitting            bool
	Width               int
	Height              int
	ValidationWarning   string                // Validation warning message to display
	ValidationConflicts []validation.Conflict // Detailed conflict information
	StatusMessage       string
	FormError           string // Error message to display for form operations
}

// New creates a new state Model. now and loc decide what "today" is.
func New(store storage.Provider, j *journal.Store, now func() time.Time, loc *time.Location) Model {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}

	t, err := theme.Load(store)
	if err != nil {
		logger.Warn("Failed to load theme, using default", "error", err)
		t = theme.Default()
	}
	styles := t.Styles()

	currentSettings, err := storage.GetSettings(store)
	if err != nil {
		logger.Warn("Failed to load settings, using defaults", "error", err)
		currentSettings = models.DefaultSettings()
	}

	seed := uint64(now().UnixNano())
	m := Model{
		Store:         store,
		Journal:       j,
		Editor:        editor.New(j, now, loc),
		Now:           now,
		Loc:           loc,
		Theme:         t,
		Styles:        styles,
		State:         constants.StateCalendar,
		Keys:          DefaultKeyMap(),
		Help:          help.New(),
		Analysis:      analysis.New(0, 0, styles),
		Themes:        themes.New(t, styles),
		Vent:          vent.New(rand.New(rand.NewPCG(seed, seed>>1|1)), styles),
		SettingsModel: settings.New(currentSettings, styles, 0, 0),
	}
	today := m.Today()
	m.Calendar = calendar.New(analytics.MonthGrid{Month: window.MonthOf(today)}, today, styles)
	m.Refresh()
	return m
}

// Today is the current calendar day in the configured timezone.
func (m *Model) Today() models.Day {
	return m.Editor.Today()
}

// Refresh reloads every view that is derived from the journal.
func (m *Model) Refresh() {
	today := m.Today()

	grid, err := analytics.MonthView(m.Journal, m.Calendar.Month(), today)
	if err != nil {
		m.StatusMessage = "Failed to load calendar: " + err.Error()
	} else {
		m.Calendar.SetGrid(grid, today)
	}

	trend, err := analytics.TrendSeries(m.Journal, today)
	if err != nil {
		m.StatusMessage = "Failed to load trend: " + err.Error()
		return
	}
	dist, err := analytics.MonthDistribution(m.Journal, m.Calendar.Month())
	if err != nil {
		m.StatusMessage = "Failed to load distribution: " + err.Error()
		return
	}
	summary, err := analytics.Insights(m.Journal, today, constants.TrendDays)
	if err != nil {
		m.StatusMessage = "Failed to load insights: " + err.Error()
		return
	}
	m.Analysis.SetData(trend, dist, summary)

	m.UpdateValidationStatus()
}

// SelectDay points the editor at day and shows it in the side panel.
func (m *Model) SelectDay(day models.Day) error {
	if err := m.Editor.Select(day, m.Today()); err != nil {
		return err
	}
	m.SyncSelection()
	return nil
}

// SyncSelection copies the editor's selection into the calendar panel.
func (m *Model) SyncSelection() {
	day, ok := m.Editor.Selected()
	if !ok {
		m.Calendar.SetSelection(nil)
		return
	}
	entry, has := m.Editor.Stored()
	m.Calendar.SetSelection(&calendar.Selection{
		Day:      day,
		Entry:    entry,
		HasEntry: has,
		Editable: m.Editor.Mode() == editor.Editable,
	})
}

// SetLocation switches the timezone used for "today". The selection is dropped.
func (m *Model) SetLocation(loc *time.Location) {
	m.Loc = loc
	m.Editor = editor.New(m.Journal, m.Now, loc)
}

// ApplyTheme restyles every component with t.
func (m *Model) ApplyTheme(t theme.Theme) {
	m.Theme = t
	m.Styles = t.Styles()
	m.Calendar.SetStyles(m.Styles)
	m.Analysis.SetStyles(m.Styles)
	m.Themes.SetCurrent(t, m.Styles)
	m.Vent.SetStyles(m.Styles)
	m.SettingsModel.SetStyles(m.Styles)
}
