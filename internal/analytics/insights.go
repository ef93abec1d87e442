package analytics

import (
	"fmt"
	"math"

	"github.com/julianstephens/moodcal/internal/journal"
	"github.com/julianstephens/moodcal/internal/models"
	"github.com/julianstephens/moodcal/internal/window"
)

// InsightType names a pattern found in recent entries
type InsightType string

const (
	InsightRoughPatch   InsightType = "rough_patch"
	InsightGoodRun      InsightType = "good_run"
	InsightMissingDays  InsightType = "missing_days"
	InsightTodayMissing InsightType = "today_missing"
)

// Insight is a short observation about recent entries
type Insight struct {
	Type   InsightType `json:"type"`
	Reason string      `json:"reason"`
}

// Summary describes the trailing window ending today
type Summary struct {
	Days     int       `json:"days"`
	Logged   int       `json:"logged"`
	Average  float64   `json:"average"`
	Streak   int       `json:"streak"`
	Insights []Insight `json:"insights,omitempty"`
}

// Insights summarises the last days days ending at now.
func Insights(src Source, now models.Day, days int) (Summary, error) {
	snap, err := snapshot(src)
	if err != nil {
		return Summary{}, err
	}
	return summarize(snap, now, days), nil
}

func summarize(snap journal.Snapshot, now models.Day, days int) Summary {
	summary := Summary{Days: days, Streak: streak(snap, now)}

	badCount, upbeatCount, scoreSum := 0, 0, 0
	for _, p := range trend(snap, window.Trailing(now, days)) {
		if !p.Recorded {
			continue
		}
		summary.Logged++
		scoreSum += p.Score
		switch p.Mood {
		case models.MoodBad:
			badCount++
		case models.MoodGood, models.MoodGreat:
			upbeatCount++
		}
	}

	if summary.Logged == 0 {
		if days > 0 {
			summary.Insights = append(summary.Insights, Insight{
				Type:   InsightMissingDays,
				Reason: fmt.Sprintf("No moods logged in the last %d days", days),
			})
		}
		return summary
	}

	summary.Average = math.Round(float64(scoreSum)/float64(summary.Logged)*10) / 10
	badPercent := float64(badCount) / float64(summary.Logged) * 100
	upbeatPercent := float64(upbeatCount) / float64(summary.Logged) * 100

	// More than half rough days reads as a rough patch
	if badPercent > 50 {
		summary.Insights = append(summary.Insights, Insight{
			Type:   InsightRoughPatch,
			Reason: fmt.Sprintf("%.0f%% of recent days were rough. Be gentle with yourself.", badPercent),
		})
	} else if upbeatPercent >= 70 {
		summary.Insights = append(summary.Insights, Insight{
			Type:   InsightGoodRun,
			Reason: fmt.Sprintf("%.0f%% of recent days were good or great.", upbeatPercent),
		})
	}

	if missing := days - summary.Logged; missing >= 3 {
		summary.Insights = append(summary.Insights, Insight{
			Type:   InsightMissingDays,
			Reason: fmt.Sprintf("%d of the last %d days have no mood logged", missing, days),
		})
	}

	if _, ok := snap.Lookup(now); !ok {
		summary.Insights = append(summary.Insights, Insight{
			Type:   InsightTodayMissing,
			Reason: "Today's mood hasn't been logged yet",
		})
	}

	return summary
}

// streak counts consecutive logged days ending today. A streak that ended
// yesterday is still alive until today is over.
func streak(snap journal.Snapshot, now models.Day) int {
	d := now
	if _, ok := snap.Lookup(d); !ok {
		d = d.AddDays(-1)
	}
	count := 0
	for count <= len(snap) {
		if _, ok := snap.Lookup(d); !ok {
			break
		}
		count++
		d = d.AddDays(-1)
	}
	return count
}
