package reports

import (
	"fmt"
	"strings"

	"github.com/julianstephens/moodcal/internal/analytics"
	"github.com/julianstephens/moodcal/internal/cli"
	"github.com/julianstephens/moodcal/internal/window"
)

const cellWidth = 5

type CalendarCmd struct {
	Month string `help:"Month to show (YYYY-MM). Defaults to the current month."`
}

// resolveMonth parses s, or returns the month containing today when s is empty.
func resolveMonth(ctx *cli.Context, s string) (window.Month, error) {
	if strings.TrimSpace(s) == "" {
		today, err := ctx.Today()
		if err != nil {
			return window.Month{}, err
		}
		return window.MonthOf(today), nil
	}
	return window.ParseMonth(s)
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	month, err := resolveMonth(ctx, c.Month)
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	grid, err := analytics.MonthView(ctx.Journal, month, today)
	if err != nil {
		return fmt.Errorf("failed to build calendar: %w", err)
	}

	styles := ctx.Theme().Styles()
	ctx.Println(styles.Title.Render(fmt.Sprintf("%s %d", month.Month, month.Year)))

	var header strings.Builder
	for _, wd := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		header.WriteString(fmt.Sprintf("%-*s", cellWidth, wd))
	}
	ctx.Println(strings.TrimRight(header.String(), " "))

	for _, week := range grid.Weeks() {
		var row strings.Builder
		for _, cell := range week {
			row.WriteString(renderCell(cell))
		}
		ctx.Println(strings.TrimRight(row.String(), " "))
	}

	logged := 0
	for _, cell := range grid.Cells {
		if cell.HasEntry {
			logged++
		}
	}
	ctx.Printf("\n%d of %d days logged\n", logged, len(grid.Cells))
	return nil
}

// renderCell is cellWidth columns wide. Emoji take two columns.
func renderCell(cell *analytics.DayCell) string {
	if cell == nil {
		return strings.Repeat(" ", cellWidth)
	}
	mark := "· "
	if cell.HasEntry {
		mark = cell.Entry.Mood.Emoji()
	}
	day := fmt.Sprintf("%2d", cell.Date.Day)
	if cell.IsToday {
		return day + mark + "*"
	}
	return day + mark + " "
}
