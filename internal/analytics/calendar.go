package analytics

import (
	"time"

	"github.com/julianstephens/moodcal/internal/journal"
	"github.com/julianstephens/moodcal/internal/models"
	"github.com/julianstephens/moodcal/internal/window"
)

// DayCell is one day of a month grid.
type DayCell struct {
	Date     models.Day
	Entry    models.MoodEntry
	HasEntry bool
	IsToday  bool
	Editable bool
}

// MonthGrid lays a month out for a Sunday-first calendar. Leading is the
// number of blank cells before the first day.
type MonthGrid struct {
	Month   window.Month
	Leading int
	Cells   []DayCell
}

// Weeks splits the grid into rows of seven, padding with nil for blanks.
func (g MonthGrid) Weeks() [][]*DayCell {
	var weeks [][]*DayCell
	row := make([]*DayCell, 0, 7)
	for i := 0; i < g.Leading; i++ {
		row = append(row, nil)
	}
	for i := range g.Cells {
		row = append(row, &g.Cells[i])
		if len(row) == 7 {
			weeks = append(weeks, row)
			row = make([]*DayCell, 0, 7)
		}
	}
	if len(row) > 0 {
		for len(row) < 7 {
			row = append(row, nil)
		}
		weeks = append(weeks, row)
	}
	return weeks
}

// MonthView builds the calendar for month with today marked.
func MonthView(src Source, month window.Month, today models.Day) (MonthGrid, error) {
	snap, err := snapshot(src)
	if err != nil {
		return MonthGrid{}, err
	}
	return monthGrid(snap, month, today), nil
}

func monthGrid(snap journal.Snapshot, month window.Month, today models.Day) MonthGrid {
	first := month.First()
	grid := MonthGrid{
		Month:   month,
		Leading: int(first.Weekday() - time.Sunday),
		Cells:   make([]DayCell, month.Days()),
	}
	for i := range grid.Cells {
		d := first.AddDays(i)
		cell := DayCell{
			Date:     d,
			IsToday:  d == today,
			Editable: window.IsEditable(d, today),
		}
		if e, ok := snap.Lookup(d); ok {
			cell.Entry = e
			cell.HasEntry = true
		}
		grid.Cells[i] = cell
	}
	return grid
}
