package analytics

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/julianstephens/moodcal/internal/journal"
	"github.com/julianstephens/moodcal/internal/models"
	"github.com/julianstephens/moodcal/internal/window"
)

type staticSource struct {
	snap journal.Snapshot
	err  error
}

func (s staticSource) All() (journal.Snapshot, error) {
	return s.snap, s.err
}

func day(s string) models.Day {
	d, err := models.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func snapOf(entries map[string]models.Mood) journal.Snapshot {
	snap := journal.Snapshot{}
	for date, mood := range entries {
		snap[date] = models.NewMoodEntry(day(date), mood, "", time.Time{})
	}
	return snap
}

func TestTrendSeries(t *testing.T) {
	src := staticSource{snap: snapOf(map[string]models.Mood{
		"2024-03-09": models.MoodBad,   // first day of the window
		"2024-03-12": models.MoodGreat, // mid window
		"2024-03-15": models.MoodMeh,   // today
		"2024-03-08": models.MoodGood,  // just outside
	})}

	points, err := TrendSeries(src, day("2024-03-15"))
	if err != nil {
		t.Fatalf("TrendSeries() error = %v", err)
	}
	if len(points) != 7 {
		t.Fatalf("len = %d, want 7", len(points))
	}

	wantScores := []int{1, 0, 0, 4, 0, 0, 2}
	for i, p := range points {
		if p.Score != wantScores[i] {
			t.Errorf("points[%d] (%s) score = %d, want %d", i, p.Date, p.Score, wantScores[i])
		}
		if p.Recorded != (wantScores[i] != 0) {
			t.Errorf("points[%d] Recorded = %v", i, p.Recorded)
		}
	}
	if points[0].Date != day("2024-03-09") || points[6].Date != day("2024-03-15") {
		t.Errorf("window = %s..%s", points[0].Date, points[6].Date)
	}
}

func TestTrendSeriesEmpty(t *testing.T) {
	points, err := TrendSeries(staticSource{snap: journal.Snapshot{}}, day("2024-01-03"))
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 7 || points[0].Date != day("2023-12-28") {
		t.Errorf("points = %+v", points)
	}
	for _, p := range points {
		if p.Recorded || p.Score != 0 {
			t.Errorf("unexpected recorded point %+v", p)
		}
	}
}

func TestMoodDistribution(t *testing.T) {
	src := staticSource{snap: snapOf(map[string]models.Mood{
		"2024-03-01": models.MoodBad,
		"2024-03-10": models.MoodGreat,
		"2024-02-28": models.MoodGood,
	})}

	dist, err := MoodDistribution(src, day("2024-03-15"))
	if err != nil {
		t.Fatalf("MoodDistribution() error = %v", err)
	}
	if dist.Total != 2 {
		t.Errorf("Total = %d, want 2", dist.Total)
	}

	want := []Share{
		{models.MoodBad, 1, 50.0},
		{models.MoodMeh, 0, 0.0},
		{models.MoodGood, 0, 0.0},
		{models.MoodGreat, 1, 50.0},
	}
	if len(dist.Shares) != len(want) {
		t.Fatalf("len(Shares) = %d", len(dist.Shares))
	}
	for i, w := range want {
		if dist.Shares[i] != w {
			t.Errorf("Shares[%d] = %+v, want %+v", i, dist.Shares[i], w)
		}
	}
	if got := dist.Share(models.MoodGreat).Count; got != 1 {
		t.Errorf("Share(great).Count = %d", got)
	}
}

// sixteenths logs one bad, one meh, one good and thirteen great days in March 2024.
func sixteenths() map[string]models.Mood {
	entries := map[string]models.Mood{
		"2024-03-01": models.MoodBad, "2024-03-02": models.MoodMeh, "2024-03-03": models.MoodGood,
	}
	for d := 4; d <= 16; d++ {
		entries[fmt.Sprintf("2024-03-%02d", d)] = models.MoodGreat
	}
	return entries
}

func TestMoodDistributionPercentSum(t *testing.T) {
	tests := []struct {
		name    string
		entries map[string]models.Mood
	}{
		{"thirds", map[string]models.Mood{
			"2024-03-01": models.MoodBad, "2024-03-02": models.MoodMeh, "2024-03-03": models.MoodGood,
		}},
		{"sevenths", map[string]models.Mood{
			"2024-03-01": models.MoodBad, "2024-03-02": models.MoodMeh, "2024-03-03": models.MoodGood,
			"2024-03-04": models.MoodGreat, "2024-03-05": models.MoodGreat, "2024-03-06": models.MoodGood,
			"2024-03-07": models.MoodBad,
		}},
		{"single", map[string]models.Mood{"2024-03-31": models.MoodMeh}},
		{"sixteenths", sixteenths()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, err := MoodDistribution(staticSource{snap: snapOf(tt.entries)}, day("2024-03-15"))
			if err != nil {
				t.Fatal(err)
			}
			sum := 0.0
			for _, s := range dist.Shares {
				sum += s.Percent
			}
			if math.Abs(sum-100) > 0.1+1e-9 {
				t.Errorf("percent sum = %v, want 100 ±0.1", sum)
			}
		})
	}
}

func TestPercentTenths(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		total  int
		want   []int
	}{
		{"empty month", []int{0, 0, 0, 0}, 0, []int{0, 0, 0, 0}},
		{"exact halves", []int{1, 0, 0, 1}, 2, []int{500, 0, 0, 500}},
		{"two thirds", []int{2, 1, 0, 0}, 3, []int{667, 333, 0, 0}},
		{"thirds tie goes to the first mood", []int{1, 1, 1, 0}, 3, []int{334, 333, 333, 0}},
		// Rounding each share alone gives 6.3+6.3+6.3+81.3 = 100.2.
		{"sixteenths", []int{1, 1, 1, 13}, 16, []int{63, 63, 62, 812}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentTenths(tt.counts, tt.total)
			sum := 0
			for i := range got {
				sum += got[i]
				if got[i] != tt.want[i] {
					t.Errorf("percentTenths(%v, %d) = %v, want %v", tt.counts, tt.total, got, tt.want)
					break
				}
			}
			if tt.total > 0 && sum != 1000 {
				t.Errorf("tenths sum = %d, want 1000", sum)
			}
		})
	}
}

func TestMoodDistributionEmptyMonth(t *testing.T) {
	src := staticSource{snap: snapOf(map[string]models.Mood{"2024-02-28": models.MoodGood})}
	dist, err := MoodDistribution(src, day("2024-03-15"))
	if err != nil {
		t.Fatal(err)
	}
	if dist.Total != 0 {
		t.Errorf("Total = %d", dist.Total)
	}
	for _, s := range dist.Shares {
		if s.Count != 0 || s.Percent != 0 || math.IsNaN(s.Percent) {
			t.Errorf("share %+v, want zero", s)
		}
	}
}

func TestSourceErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	if _, err := TrendSeries(staticSource{err: boom}, day("2024-03-15")); !errors.Is(err, boom) {
		t.Errorf("TrendSeries() error = %v", err)
	}
	if _, err := MoodDistribution(staticSource{err: boom}, day("2024-03-15")); !errors.Is(err, boom) {
		t.Errorf("MoodDistribution() error = %v", err)
	}
}

func TestMonthView(t *testing.T) {
	src := staticSource{snap: snapOf(map[string]models.Mood{
		"2024-03-01": models.MoodBad,
		"2024-03-15": models.MoodGood,
	})}
	month := window.Month{Year: 2024, Month: time.March}

	grid, err := MonthView(src, month, day("2024-03-15"))
	if err != nil {
		t.Fatalf("MonthView() error = %v", err)
	}
	// March 1st 2024 was a Friday.
	if grid.Leading != 5 {
		t.Errorf("Leading = %d, want 5", grid.Leading)
	}
	if len(grid.Cells) != 31 {
		t.Fatalf("len(Cells) = %d", len(grid.Cells))
	}
	if !grid.Cells[0].HasEntry || grid.Cells[0].Entry.Mood != models.MoodBad {
		t.Errorf("Cells[0] = %+v", grid.Cells[0])
	}
	today := grid.Cells[14]
	if !today.IsToday || !today.Editable || !today.HasEntry {
		t.Errorf("today cell = %+v", today)
	}
	for i, c := range grid.Cells {
		if i != 14 && (c.IsToday || c.Editable) {
			t.Errorf("Cells[%d] marked today or editable", i)
		}
	}

	weeks := grid.Weeks()
	if len(weeks) != 6 {
		t.Errorf("len(Weeks) = %d, want 6", len(weeks))
	}
	for _, w := range weeks {
		if len(w) != 7 {
			t.Errorf("week has %d cells", len(w))
		}
	}
	if weeks[0][4] != nil || weeks[0][5] == nil || weeks[0][5].Date != day("2024-03-01") {
		t.Error("first week misaligned")
	}
}

func TestMonthViewOtherMonthHasNoToday(t *testing.T) {
	grid, err := MonthView(staticSource{snap: journal.Snapshot{}}, window.Month{Year: 2024, Month: time.February}, day("2024-03-15"))
	if err != nil {
		t.Fatal(err)
	}
	if len(grid.Cells) != 29 {
		t.Errorf("len(Cells) = %d, want 29", len(grid.Cells))
	}
	for _, c := range grid.Cells {
		if c.IsToday || c.Editable {
			t.Errorf("cell %s should not be today", c.Date)
		}
	}
}
