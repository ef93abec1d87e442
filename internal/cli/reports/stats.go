package reports

import (
	"fmt"
	"strings"

	"github.com/julianstephens/moodcal/internal/analytics"
	"github.com/julianstephens/moodcal/internal/cli"
)

// StatsCmd prints the mood distribution of one month.
type StatsCmd struct {
	Month string `help:"Month to summarise (YYYY-MM). Defaults to the current month."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	month, err := resolveMonth(ctx, c.Month)
	if err != nil {
		return err
	}
	dist, err := analytics.MonthDistribution(ctx.Journal, month)
	if err != nil {
		return fmt.Errorf("failed to build distribution: %w", err)
	}

	styles := ctx.Theme().Styles()
	ctx.Println(styles.Title.Render(fmt.Sprintf("%s %d", month.Month, month.Year)))
	if dist.Total == 0 {
		ctx.Println("No entries this month.")
		return nil
	}
	for _, s := range dist.Shares {
		filled := int(s.Percent / 100 * barWidth)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		ctx.Printf("%s %-12s %s %3d (%.1f%%)\n", s.Mood.Emoji(), s.Mood.Label(), styles.Mood[s.Mood].Render(bar), s.Count, s.Percent)
	}
	ctx.Printf("\n%d entries\n", dist.Total)
	return nil
}
