package system

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/models"
)

func TestDebugDBPathCmd(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&DebugDBPathCmd{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got["path"] != ctx.Store.GetConfigPath() {
		t.Errorf("path = %q, want %q", got["path"], ctx.Store.GetConfigPath())
	}
}

func TestDebugDumpEntryCmd(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{"explicit date", "2024-03-14", false},
		{"yesterday alias", "yesterday", false},
		{"missing entry", "2024-03-01", true},
		{"invalid date", "14/03/2024", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := setupTestContext(t)
			entry := models.NewMoodEntry(models.NewDay(2024, 3, 14), models.MoodMeh, "long meeting", fixedNow)
			if err := ctx.Journal.Put(entry); err != nil {
				t.Fatalf("Put() error = %v", err)
			}

			err := (&DebugDumpEntryCmd{Date: tt.date}).Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			var got entryDump
			if err := json.Unmarshal(out.Bytes(), &got); err != nil {
				t.Fatalf("output is not JSON: %v\n%s", err, out)
			}
			want := entryDump{
				Date:      "2024-03-14",
				Mood:      "meh",
				Label:     models.MoodMeh.Label(),
				Note:      "long meeting",
				CreatedAt: "2024-03-15T21:30:00.000Z",
			}
			if got != want {
				t.Errorf("dump = %+v, want %+v", got, want)
			}
		})
	}
}

func TestDebugDumpSettingsCmd(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&DebugDumpSettingsCmd{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var got models.Settings
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Timezone != "UTC" || got.ReminderTime != "21:00" || !got.ReminderEnabled {
		t.Errorf("settings = %+v", got)
	}
}

func TestDebugKeysCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := ctx.Store.Set(constants.ThemeKey, "future"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := (&DebugKeysCmd{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, k := range []string{constants.SettingsKey, constants.ThemeKey} {
		if !strings.Contains(out.String(), k) {
			t.Errorf("output is missing %s:\n%s", k, out)
		}
	}
}
