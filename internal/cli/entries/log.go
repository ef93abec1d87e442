package entries

import (
	"fmt"

	"github.com/julianstephens/moodcal/internal/cli"
	"github.com/julianstephens/moodcal/internal/editor"
	"github.com/julianstephens/moodcal/internal/models"
)

// LogCmd records today's mood. Without --note the stored note is kept.
type LogCmd struct {
	Mood string  `arg:"" help:"One of bad, meh, good, great."`
	Note *string `help:"Short note (up to 120 characters). Pass an empty string to clear it."`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	mood, err := models.ParseMood(c.Mood)
	if err != nil {
		return err
	}

	loc, err := ctx.Location()
	if err != nil {
		return err
	}
	ed := editor.New(ctx.Journal, ctx.Now, loc)
	today := ed.Today()
	if err := ed.Select(today, today); err != nil {
		return err
	}

	if err := ed.SetMood(mood); err != nil {
		return err
	}
	if c.Note != nil {
		if *c.Note == "" {
			err = ed.ClearNote()
		} else {
			err = ed.SetNote(*c.Note)
		}
		if err != nil {
			return err
		}
	}

	entry, err := ed.Commit()
	if err != nil {
		return err
	}
	ctx.Printf("✓ Logged %s %s for %s\n", entry.Mood.Emoji(), entry.Label, entry.Date.Key())
	if entry.Note != "" {
		ctx.Printf("  %q\n", entry.Note)
	}
	return nil
}

func moodLine(m models.Mood) string {
	return fmt.Sprintf("%s %s", m.Emoji(), m.Label())
}
