package entries

import (
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/moodcal/internal/cli"
	"github.com/julianstephens/moodcal/internal/window"
)

type ShowCmd struct {
	Date string `arg:"" optional:"" help:"Day to show (YYYY-MM-DD, 'today' or 'yesterday'). Defaults to today."`
}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	day, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	entry, ok, err := ctx.Journal.Get(day)
	if err != nil {
		return err
	}

	ctx.Printf("%s (%s)\n", day.Key(), day.Weekday())
	if !ok {
		ctx.Println("No mood logged.")
		if window.IsEditable(day, today) {
			ctx.Println("Log one with 'moodcal log MOOD'.")
		}
		return nil
	}

	note := entry.Note
	if note == "" {
		note = "no note yet"
	}
	ctx.Printf("  Mood:   %s\n", moodLine(entry.Mood))
	ctx.Printf("  Note:   %s\n", note)
	ctx.Printf("  Saved:  %s\n", humanize.RelTime(entry.CreatedAt, ctx.Now(), "ago", "from now"))
	if !window.IsEditable(day, today) {
		ctx.Println("  (read-only: only today's entry can be changed)")
	}
	return nil
}
