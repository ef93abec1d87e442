package handlers

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/journal"
	"github.com/julianstephens/moodcal/internal/models"
	"github.com/julianstephens/moodcal/internal/storage"
	"github.com/julianstephens/moodcal/internal/theme"
	"github.com/julianstephens/moodcal/internal/tui/components/calendar"
	"github.com/julianstephens/moodcal/internal/tui/components/themes"
	"github.com/julianstephens/moodcal/internal/tui/state"
)

var fixedNow = time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

func setupTestState(t *testing.T) (*state.Model, *storage.MemoryStore) {
	t.Helper()
	kv := storage.NewMemoryStore()
	if err := kv.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	clock := func() time.Time { return fixedNow }
	j := journal.New(kv, journal.WithClock(clock))
	m := state.New(kv, j, clock, time.UTC)
	return &m, kv
}

func TestEditDayOpensFormForToday(t *testing.T) {
	m, _ := setupTestState(t)

	handled, _ := HandleCalendarMessages(m, calendar.EditDayMsg{Day: models.NewDay(2024, 3, 15)})
	if !handled {
		t.Fatal("EditDayMsg was not handled")
	}
	if m.State != constants.StateEditing {
		t.Errorf("State = %v, want StateEditing", m.State)
	}
	if m.Form == nil || m.EntryForm == nil {
		t.Fatal("form was not created")
	}
}

func TestEditDayRefusesPastDays(t *testing.T) {
	m, _ := setupTestState(t)

	handled, _ := HandleCalendarMessages(m, calendar.EditDayMsg{Day: models.NewDay(2024, 3, 14)})
	if !handled {
		t.Fatal("EditDayMsg was not handled")
	}
	if m.State != constants.StateCalendar {
		t.Errorf("State = %v, want StateCalendar", m.State)
	}
	if !strings.Contains(m.StatusMessage, "only today") {
		t.Errorf("StatusMessage = %q", m.StatusMessage)
	}
}

func TestApplyEntryFormCommits(t *testing.T) {
	tests := []struct {
		name    string
		mood    models.Mood
		note    string
		wantErr bool
	}{
		{"mood and note", models.MoodGood, "walked by the river", false},
		{"mood only", models.MoodBad, "", false},
		{"no mood", models.MoodUnset, "hmm", true},
		{"note too long", models.MoodMeh, strings.Repeat("x", constants.NoteMaxLen+1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := setupTestState(t)
			today := models.NewDay(2024, 3, 15)
			if err := m.SelectDay(today); err != nil {
				t.Fatalf("SelectDay() error = %v", err)
			}
			m.EntryForm = &state.EntryFormModel{Mood: tt.mood, Note: tt.note}

			err := applyEntryForm(m)
			if (err != nil) != tt.wantErr {
				t.Fatalf("applyEntryForm() error = %v, wantErr %v", err, tt.wantErr)
			}

			got, ok, err := m.Journal.Get(today)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if tt.wantErr {
				if ok {
					t.Errorf("entry was saved: %+v", got)
				}
				return
			}
			if !ok {
				t.Fatal("entry was not saved")
			}
			if got.Mood != tt.mood || got.Note != tt.note {
				t.Errorf("entry = %+v", got)
			}
		})
	}
}

func TestSelectDayShowsStoredEntry(t *testing.T) {
	m, _ := setupTestState(t)
	past := models.NewDay(2024, 3, 10)
	if err := m.Journal.Put(models.NewMoodEntry(past, models.MoodGreat, "party", fixedNow)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if handled, _ := HandleCalendarMessages(m, calendar.SelectDayMsg{Day: past}); !handled {
		t.Fatal("SelectDayMsg was not handled")
	}
	entry, ok := m.Editor.Stored()
	if !ok || entry.Note != "party" {
		t.Errorf("Stored() = %+v, %v", entry, ok)
	}
	if m.Calendar.View() == "" {
		t.Error("calendar view is empty")
	}
}

func TestApplyTheme(t *testing.T) {
	m, kv := setupTestState(t)

	if handled, _ := HandleThemeMessages(m, themes.ApplyThemeMsg{ID: "ruin"}); !handled {
		t.Fatal("ApplyThemeMsg was not handled")
	}
	if m.Theme.ID != "ruin" {
		t.Errorf("Theme = %q, want ruin", m.Theme.ID)
	}
	stored, ok, _ := kv.Get(constants.ThemeKey)
	if !ok || stored != "ruin" {
		t.Errorf("stored theme = %q, %v", stored, ok)
	}

	HandleThemeMessages(m, themes.ApplyThemeMsg{ID: "neon"})
	if m.Theme.ID != "ruin" {
		t.Errorf("unknown theme replaced the current one: %q", m.Theme.ID)
	}
	if m.StatusMessage == "" {
		t.Error("expected a status message for the unknown theme")
	}
}

func TestFormThemeFollowsTheme(t *testing.T) {
	for _, th := range theme.All {
		t.Run(th.ID, func(t *testing.T) {
			ft := FormTheme(th.Styles())
			accent := lipgloss.Color(th.Accent)
			if got := ft.Focused.Title.GetForeground(); got != accent {
				t.Errorf("title colour = %v, want %v", got, accent)
			}
			if got := ft.Focused.SelectSelector.GetForeground(); got != accent {
				t.Errorf("selector colour = %v, want %v", got, accent)
			}
			if got := ft.Focused.FocusedButton.GetBackground(); got != accent {
				t.Errorf("button background = %v, want %v", got, accent)
			}
			if got := ft.Focused.FocusedButton.GetForeground(); got != lipgloss.Color(th.Background) {
				t.Errorf("button text = %v, want %v", got, th.Background)
			}
		})
	}

	light := FormTheme(theme.Resolve("light").Styles()).Focused.Option.GetForeground()
	dark := FormTheme(theme.Resolve("midnight").Styles()).Focused.Option.GetForeground()
	if light == dark {
		t.Errorf("light and dark themes share option colour %v", light)
	}
}

func TestGlobalKeys(t *testing.T) {
	t.Run("tab cycles and wraps", func(t *testing.T) {
		m, _ := setupTestState(t)
		for _, want := range append(Tabs[1:], Tabs[0]) {
			HandleGlobalKeys(m, tea.KeyMsg{Type: tea.KeyTab})
			if m.State != want {
				t.Fatalf("State = %v, want %v", m.State, want)
			}
		}
	})

	t.Run("shift+tab goes back", func(t *testing.T) {
		m, _ := setupTestState(t)
		HandleGlobalKeys(m, tea.KeyMsg{Type: tea.KeyShiftTab})
		if m.State != Tabs[len(Tabs)-1] {
			t.Errorf("State = %v", m.State)
		}
	})

	t.Run("q quits outside the vent box", func(t *testing.T) {
		m, _ := setupTestState(t)
		handled, cmd := HandleGlobalKeys(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		if !handled || cmd == nil || !m.Quitting {
			t.Errorf("handled=%v quitting=%v", handled, m.Quitting)
		}
	})

	t.Run("q is typed into the vent box", func(t *testing.T) {
		m, _ := setupTestState(t)
		m.State = constants.StateVent
		m.Vent.Focus()
		handled, _ := HandleGlobalKeys(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		if handled || m.Quitting {
			t.Errorf("handled=%v quitting=%v", handled, m.Quitting)
		}
	})
}
