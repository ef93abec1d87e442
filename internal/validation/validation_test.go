package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/journal"
	"github.com/julianstephens/moodcal/internal/models"
)

func hasConflict(result ValidationResult, ct ConflictType) bool {
	for _, c := range result.Conflicts {
		if c.Type == ct {
			return true
		}
	}
	return false
}

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings models.Settings
		want     []ConflictType
	}{
		{
			name:     "defaults are valid",
			settings: models.DefaultSettings(),
		},
		{
			name:     "bad timezone",
			settings: models.Settings{Timezone: "Mars/Olympus", ReminderTime: "21:00"},
			want:     []ConflictType{ConflictInvalidTimezone},
		},
		{
			name:     "bad reminder time",
			settings: models.Settings{Timezone: "UTC", ReminderTime: "25:00"},
			want:     []ConflictType{ConflictInvalidReminderTime},
		},
		{
			name:     "both bad",
			settings: models.Settings{Timezone: "nope", ReminderTime: ""},
			want:     []ConflictType{ConflictInvalidTimezone, ConflictInvalidReminderTime},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New().ValidateSettings(tt.settings)
			if len(result.Conflicts) != len(tt.want) {
				t.Fatalf("got %d conflicts, want %d: %+v", len(result.Conflicts), len(tt.want), result.Conflicts)
			}
			for _, ct := range tt.want {
				if !hasConflict(result, ct) {
					t.Errorf("missing conflict %s", ct)
				}
			}
			if len(tt.want) > 0 && !result.HasErrors() {
				t.Error("settings conflicts should be errors")
			}
		})
	}
}

func TestValidateTheme(t *testing.T) {
	v := New()
	if r := v.ValidateTheme("", false); r.HasConflicts() {
		t.Error("absent theme should be fine")
	}
	if r := v.ValidateTheme(constants.DefaultThemeID, true); r.HasConflicts() {
		t.Error("default theme should be fine")
	}
	r := v.ValidateTheme("neon", true)
	if !hasConflict(r, ConflictUnknownTheme) {
		t.Error("expected unknown theme conflict")
	}
	if r.HasErrors() {
		t.Error("unknown theme is only a warning")
	}
}

func TestValidateJournal(t *testing.T) {
	today := models.NewDay(2024, 3, 15)
	created := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	snap := journal.Snapshot{
		"2024-03-14": models.NewMoodEntry(models.NewDay(2024, 3, 14), models.MoodGood, "fine", created),
		"2024-03-16": models.NewMoodEntry(models.NewDay(2024, 3, 16), models.MoodMeh, "", created),
		"2024-03-10": models.NewMoodEntry(models.NewDay(2024, 3, 10), models.MoodBad, strings.Repeat("x", constants.NoteMaxLen+1), created),
	}
	report := journal.Report{
		Present:  true,
		Records:  4,
		Readable: 3,
		Problems: []*journal.ParseError{
			{Key: constants.EntriesKey, Date: "2024-3-1", Err: errors.New("non-canonical date key")},
		},
		Quarantined: []string{constants.CorruptKeyPrefix + "1710527400"},
	}

	result := New().ValidateJournal(report, snap, today)

	for _, ct := range []ConflictType{ConflictUnreadableRecord, ConflictQuarantinedJournal, ConflictFutureEntry, ConflictNoteTooLong} {
		if !hasConflict(result, ct) {
			t.Errorf("missing conflict %s", ct)
		}
	}
	if len(result.Conflicts) != 4 {
		t.Errorf("got %d conflicts, want 4: %+v", len(result.Conflicts), result.Conflicts)
	}
	if result.HasErrors() {
		t.Error("record-level problems should be warnings")
	}
}

func TestValidateJournal_UnreadableDocument(t *testing.T) {
	report := journal.Report{
		Present:  true,
		Problems: []*journal.ParseError{{Key: constants.EntriesKey, Err: errors.New("unexpected end of JSON input")}},
	}

	result := New().ValidateJournal(report, journal.Snapshot{}, models.NewDay(2024, 3, 15))
	if !hasConflict(result, ConflictUnreadableJournal) {
		t.Fatal("expected unreadable journal conflict")
	}
	if !result.HasErrors() {
		t.Error("an unreadable journal is an error")
	}
}

func TestFormatReport(t *testing.T) {
	var empty ValidationResult
	if got := empty.FormatReport(); got != "No problems detected." {
		t.Errorf("FormatReport() = %q", got)
	}

	result := ValidationResult{Conflicts: []Conflict{{Description: "a"}}}
	result.Merge(ValidationResult{Conflicts: []Conflict{{Description: "b"}}})
	got := result.FormatReport()
	if !strings.Contains(got, "- a\n") || !strings.Contains(got, "- b\n") {
		t.Errorf("FormatReport() = %q", got)
	}
}
