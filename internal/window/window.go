// Package window holds the calendar rules that decide which day may be
// written and which days feed the trend and distribution views.
package window

import (
	"time"

	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/models"
)

// IsEditable reports whether target may be written when today is now. Only
// the current calendar day is ever writable.
func IsEditable(target, now models.Day) bool {
	return target == now
}

// Trailing returns size consecutive days ending at now, oldest first.
func Trailing(now models.Day, size int) []models.Day {
	if size < 1 {
		return []models.Day{}
	}
	days := make([]models.Day, size)
	for i := range days {
		days[i] = now.AddDays(i - (size - 1))
	}
	return days
}

// Week is the default trailing window used by the trend view.
func Week(now models.Day) []models.Day {
	return Trailing(now, constants.TrendDays)
}

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(now models.Day) Month {
	return Month{Year: now.Year, Month: now.Month}
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(constants.MonthFormat, s)
	if err != nil {
		return Month{}, err
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) Contains(d models.Day) bool {
	return d.Year == m.Year && d.Month == m.Month
}

// First returns the first day of the month.
func (m Month) First() models.Day {
	return models.NewDay(m.Year, m.Month, 1)
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return models.NewDay(m.Year, m.Month+1, 0).Day
}

// Add moves by n whole months.
func (m Month) Add(n int) Month {
	first := models.NewDay(m.Year, m.Month+time.Month(n), 1)
	return Month{Year: first.Year, Month: first.Month}
}

func (m Month) String() string {
	return m.First().Time(time.UTC).Format(constants.MonthFormat)
}
