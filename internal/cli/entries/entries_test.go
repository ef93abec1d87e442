package entries

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/moodcal/internal/cli"
	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/editor"
	"github.com/julianstephens/moodcal/internal/models"
	"github.com/julianstephens/moodcal/internal/storage"
	"github.com/julianstephens/moodcal/internal/vent"
)

var fixedNow = time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := storage.NewMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	var out bytes.Buffer
	ctx := cli.NewContext(store)
	ctx.Out = &out
	ctx.Err = &bytes.Buffer{}
	ctx.Now = func() time.Time { return fixedNow }
	settings := models.Settings{Timezone: "UTC", ReminderEnabled: true, ReminderTime: "21:00"}
	if err := storage.SaveSettings(store, settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}
	return ctx, &out
}

func strPtr(s string) *string { return &s }

func TestLogCmd(t *testing.T) {
	tests := []struct {
		name     string
		cmd      LogCmd
		wantErr  error
		wantMood models.Mood
		wantNote string
	}{
		{"mood only", LogCmd{Mood: "good"}, nil, models.MoodGood, "old note"},
		{"mood and note", LogCmd{Mood: "GREAT", Note: strPtr("shipped it")}, nil, models.MoodGreat, "shipped it"},
		{"clear note", LogCmd{Mood: "meh", Note: strPtr("")}, nil, models.MoodMeh, ""},
		{"note too long", LogCmd{Mood: "bad", Note: strPtr(strings.Repeat("x", constants.NoteMaxLen+1))}, editor.ErrNoteTooLong, models.MoodBad, "old note"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestContext(t)
			today := models.NewDay(2024, 3, 15)
			if err := ctx.Journal.Put(models.NewMoodEntry(today, models.MoodBad, "old note", fixedNow.Add(-time.Hour))); err != nil {
				t.Fatalf("Put() error = %v", err)
			}

			err := tt.cmd.Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			got, ok, err := ctx.Journal.Get(today)
			if err != nil || !ok {
				t.Fatalf("Get() = %v, %v", ok, err)
			}
			if got.Mood != tt.wantMood || got.Note != tt.wantNote {
				t.Errorf("entry = %v %q, want %v %q", got.Mood, got.Note, tt.wantMood, tt.wantNote)
			}
		})
	}
}

func TestLogCmd_UnknownMood(t *testing.T) {
	ctx, _ := setupTestContext(t)
	if err := (&LogCmd{Mood: "ecstatic"}).Run(ctx); err == nil {
		t.Fatal("expected an error for an unknown mood")
	}
	if _, ok, _ := ctx.Store.Get(constants.EntriesKey); ok {
		t.Error("journal was written for a rejected mood")
	}
}

func TestLogCmd_UsesConfiguredTimezone(t *testing.T) {
	ctx, _ := setupTestContext(t)
	// 18:30 UTC on the 15th is already the 16th in Tokyo.
	if err := storage.SaveSettings(ctx.Store, models.Settings{Timezone: "Asia/Tokyo", ReminderTime: "21:00"}); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	if err := (&LogCmd{Mood: "good"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, ok, _ := ctx.Journal.Get(models.NewDay(2024, 3, 16)); !ok {
		t.Error("entry was not written for the Tokyo calendar day")
	}
}

func TestShowCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := ctx.Journal.Put(models.NewMoodEntry(models.NewDay(2024, 3, 14), models.MoodMeh, "", fixedNow.Add(-24*time.Hour))); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	tests := []struct {
		name string
		date string
		want []string
	}{
		{"empty note", "yesterday", []string{"2024-03-14 (Thursday)", "So-so", "no note yet", "1 day ago", "read-only"}},
		{"nothing logged today", "", []string{"2024-03-15", "No mood logged.", "moodcal log"}},
		{"nothing logged in the past", "2024-03-01", []string{"No mood logged."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			if err := (&ShowCmd{Date: tt.date}).Run(ctx); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestExportCmd(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&ExportCmd{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "{}" {
		t.Errorf("empty export = %q, want {}", got)
	}

	stored := `{"2024-03-15":{"mood":"good","label":"Pretty good","note":"","createdAt":"2024-03-15T18:30:00.000Z"},"bogus":1}`
	if err := ctx.Store.Set(constants.EntriesKey, stored); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	out.Reset()
	if err := (&ExportCmd{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != stored {
		t.Errorf("export = %q, want the stored document unchanged", got)
	}
}

func TestVentCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	var pauses int
	cmd := &VentCmd{
		Text:  []string{"the", "deadline"},
		sleep: func(d time.Duration) { pauses++ },
	}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if pauses != constants.VentFrameCount {
		t.Errorf("pauses = %d, want %d", pauses, constants.VentFrameCount)
	}
	if !strings.Contains(out.String(), "Gone.") {
		t.Errorf("output = %q", out)
	}
	keys, _ := ctx.Store.Keys()
	for _, k := range keys {
		if v, _, _ := ctx.Store.Get(k); strings.Contains(v, "deadline") {
			t.Errorf("vent text was persisted under %s", k)
		}
	}
}

func TestVentCmd_EmptyText(t *testing.T) {
	ctx, _ := setupTestContext(t)
	err := (&VentCmd{Text: []string{"  "}, Instant: true}).Run(ctx)
	if !errors.Is(err, vent.ErrEmpty) {
		t.Errorf("Run() error = %v, want %v", err, vent.ErrEmpty)
	}
}
