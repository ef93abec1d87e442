package reports

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/moodcal/internal/analytics"
	"github.com/julianstephens/moodcal/internal/cli"
	"github.com/julianstephens/moodcal/internal/models"
	"github.com/julianstephens/moodcal/internal/storage"
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
	if err := storage.SaveSettings(store, models.Settings{Timezone: "UTC", ReminderTime: "21:00"}); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}
	return ctx, &out
}

func seed(t *testing.T, ctx *cli.Context, moods map[string]models.Mood) {
	t.Helper()
	for key, mood := range moods {
		day, err := models.ParseDay(key)
		if err != nil {
			t.Fatalf("ParseDay(%q) error = %v", key, err)
		}
		if err := ctx.Journal.Put(models.NewMoodEntry(day, mood, "", fixedNow)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}
}

func TestCalendarCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	seed(t, ctx, map[string]models.Mood{
		"2024-03-01": models.MoodGreat,
		"2024-03-15": models.MoodBad,
		"2024-02-29": models.MoodGood,
	})

	tests := []struct {
		name    string
		month   string
		want    []string
		notWant []string
	}{
		{
			name:    "current month",
			want:    []string{"March 2024", "Su   Mo", " 1😄", "15😣*", "2 of 31 days logged"},
			notWant: []string{"🙂"},
		},
		{
			name:  "previous month",
			month: "2024-02",
			want:  []string{"February 2024", "29🙂", "1 of 29 days logged"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			if err := (&CalendarCmd{Month: tt.month}).Run(ctx); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out.String(), w) {
					t.Errorf("output unexpectedly contains %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestCalendarCmd_InvalidMonth(t *testing.T) {
	ctx, _ := setupTestContext(t)
	if err := (&CalendarCmd{Month: "March"}).Run(ctx); err == nil {
		t.Error("expected an error for a malformed month")
	}
}

func TestRenderCell(t *testing.T) {
	day := models.NewDay(2024, 3, 5)
	tests := []struct {
		name string
		cell *analytics.DayCell
		want string
	}{
		{"blank", nil, "     "},
		{"not logged", &analytics.DayCell{Date: day}, " 5·  "},
		{"logged today", &analytics.DayCell{Date: day, HasEntry: true, IsToday: true, Entry: models.MoodEntry{Mood: models.MoodMeh}}, " 5😐*"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderCell(tt.cell); got != tt.want {
				t.Errorf("renderCell() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrendCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	seed(t, ctx, map[string]models.Mood{
		"2024-03-15": models.MoodGreat,
		"2024-03-10": models.MoodMeh,
		"2024-03-08": models.MoodBad, // outside the window
	})

	if err := (&TrendCmd{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want title plus 7 days:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "Sat Mar 09") || !strings.Contains(lines[1], "not logged") {
		t.Errorf("first day = %q", lines[1])
	}
	if !strings.HasPrefix(lines[7], "Fri Mar 15") || !strings.Contains(lines[7], strings.Repeat("█", barWidth)) {
		t.Errorf("today = %q", lines[7])
	}
	if strings.Contains(out.String(), "Rough day") {
		t.Error("a day outside the window was drawn")
	}
}

func TestStatsCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	seed(t, ctx, map[string]models.Mood{
		"2024-03-01": models.MoodGood,
		"2024-03-02": models.MoodGood,
		"2024-03-03": models.MoodBad,
		"2024-02-03": models.MoodBad,
	})

	tests := []struct {
		name  string
		month string
		want  []string
	}{
		{"current month", "", []string{"March 2024", "2 (66.7%)", "1 (33.3%)", "0 (0.0%)", "3 entries"}},
		{"empty month", "2023-12", []string{"December 2023", "No entries this month."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			if err := (&StatsCmd{Month: tt.month}).Run(ctx); err != nil {
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

func TestInsightsCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	seed(t, ctx, map[string]models.Mood{
		"2024-03-13": models.MoodBad,
		"2024-03-14": models.MoodBad,
		"2024-03-15": models.MoodMeh,
	})

	if err := (&InsightsCmd{Days: 3, JSON: true}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var got analytics.Summary
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Days != 3 || got.Logged != 3 || got.Streak != 3 {
		t.Errorf("summary = %+v", got)
	}
	if len(got.Insights) != 1 || got.Insights[0].Type != analytics.InsightRoughPatch {
		t.Errorf("insights = %+v, want one rough patch", got.Insights)
	}

	out.Reset()
	if err := (&InsightsCmd{Days: 0}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, w := range []string{"Last 7 days", "Streak:  3 day(s)", "Average: 1.3 / 4"} {
		if !strings.Contains(out.String(), w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}
