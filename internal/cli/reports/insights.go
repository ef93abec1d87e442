package reports

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/moodcal/internal/analytics"
	"github.com/julianstephens/moodcal/internal/cli"
	"github.com/julianstephens/moodcal/internal/constants"
)

type InsightsCmd struct {
	Days int  `help:"Size of the trailing window in days." default:"7"`
	JSON bool `help:"Print the summary as JSON."`
}

func (c *InsightsCmd) Run(ctx *cli.Context) error {
	days := c.Days
	if days < 1 {
		days = constants.TrendDays
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	summary, err := analytics.Insights(ctx.Journal, today, days)
	if err != nil {
		return fmt.Errorf("failed to build insights: %w", err)
	}

	if c.JSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	ctx.Printf("Last %d days\n", summary.Days)
	ctx.Printf("  Logged:  %d\n", summary.Logged)
	ctx.Printf("  Streak:  %d day(s)\n", summary.Streak)
	if summary.Logged > 0 {
		ctx.Printf("  Average: %.1f / 4\n", summary.Average)
	}
	if len(summary.Insights) == 0 {
		return nil
	}
	ctx.Println()
	for _, in := range summary.Insights {
		ctx.Printf("• %s\n", in.Reason)
	}
	return nil
}
