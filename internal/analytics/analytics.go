// Package analytics derives the trend, distribution and calendar views from
// a journal snapshot. Every function reads one fresh snapshot.
package analytics

import (
	"fmt"
	"sort"

	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/journal"
	"github.com/julianstephens/moodcal/internal/models"
	"github.com/julianstephens/moodcal/internal/window"
)

// Source is anything that can produce a full journal snapshot.
type Source interface {
	All() (journal.Snapshot, error)
}

func snapshot(src Source) (journal.Snapshot, error) {
	snap, err := src.All()
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	return snap, nil
}

// TrendPoint is one day of the trend graph. Days without an entry have
// Recorded false and Score 0.
type TrendPoint struct {
	Date     models.Day
	Mood     models.Mood
	Score    int
	Recorded bool
}

// TrendSeries returns one point per day of the trailing week ending at now,
// oldest first.
func TrendSeries(src Source, now models.Day) ([]TrendPoint, error) {
	snap, err := snapshot(src)
	if err != nil {
		return nil, err
	}
	return trend(snap, window.Trailing(now, constants.TrendDays)), nil
}

func trend(snap journal.Snapshot, days []models.Day) []TrendPoint {
	points := make([]TrendPoint, len(days))
	for i, d := range days {
		points[i] = TrendPoint{Date: d}
		if e, ok := snap.Lookup(d); ok {
			points[i].Mood = e.Mood
			points[i].Score = e.Mood.Score()
			points[i].Recorded = true
		}
	}
	return points
}

// Share is one mood's slice of a distribution.
type Share struct {
	Mood    models.Mood
	Count   int
	Percent float64
}

// Distribution counts moods within one calendar month. Shares are always in
// severity order bad, meh, good, great.
type Distribution struct {
	Month  window.Month
	Total  int
	Shares []Share
}

// Share returns the slice for m.
func (d Distribution) Share(m models.Mood) Share {
	for _, s := range d.Shares {
		if s.Mood == m {
			return s
		}
	}
	return Share{Mood: m}
}

// MoodDistribution counts the entries in the month containing now.
func MoodDistribution(src Source, now models.Day) (Distribution, error) {
	return MonthDistribution(src, window.MonthOf(now))
}

// MonthDistribution counts the entries in month.
func MonthDistribution(src Source, month window.Month) (Distribution, error) {
	snap, err := snapshot(src)
	if err != nil {
		return Distribution{}, err
	}
	return distribution(snap, month), nil
}

func distribution(snap journal.Snapshot, month window.Month) Distribution {
	counts := make(map[models.Mood]int, len(models.AllMoods))
	total := 0
	for _, e := range snap {
		if !month.Contains(e.Date) {
			continue
		}
		counts[e.Mood]++
		total++
	}

	dist := Distribution{Month: month, Total: total, Shares: make([]Share, len(models.AllMoods))}
	raw := make([]int, len(models.AllMoods))
	for i, m := range models.AllMoods {
		raw[i] = counts[m]
	}
	for i, tenths := range percentTenths(raw, total) {
		m := models.AllMoods[i]
		dist.Shares[i] = Share{Mood: m, Count: counts[m], Percent: float64(tenths) / 10}
	}
	return dist
}

// percentTenths converts counts to percentages in tenths of a percent.
// Each share is its exact value rounded down or up to one decimal, and the
// shares always add up to 100.0: the tenths lost to flooring go to the
// largest remainders, earlier moods first on ties. A zero total gives zeros.
func percentTenths(counts []int, total int) []int {
	out := make([]int, len(counts))
	if total == 0 {
		return out
	}
	rem := make([]int, len(counts))
	left := 1000
	for i, c := range counts {
		out[i] = c * 1000 / total
		rem[i] = c * 1000 % total
		left -= out[i]
	}
	order := make([]int, len(counts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return rem[order[a]] > rem[order[b]] })
	for _, i := range order[:left] {
		out[i]++
	}
	return out
}
