package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/moodcal/internal/analytics"
	"github.com/julianstephens/moodcal/internal/cli"
	"github.com/julianstephens/moodcal/internal/models"
)

const barWidth = 20

// TrendCmd draws the last seven days as a bar chart.
type TrendCmd struct{}

func (c *TrendCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	points, err := analytics.TrendSeries(ctx.Journal, today)
	if err != nil {
		return fmt.Errorf("failed to build trend: %w", err)
	}

	styles := ctx.Theme().Styles()
	ctx.Println(styles.Title.Render("Last 7 days"))
	top := models.AllMoods[len(models.AllMoods)-1].Score()
	for _, p := range points {
		label := p.Date.Time(time.UTC).Format("Mon Jan 02")
		if !p.Recorded {
			ctx.Printf("%s  %s\n", label, styles.Muted.Render("· not logged"))
			continue
		}
		filled := p.Score * barWidth / top
		bar := strings.Repeat("█", filled) + strings.Repeat(" ", barWidth-filled)
		ctx.Printf("%s  %s %s %s\n", label, styles.Mood[p.Mood].Render(bar), p.Mood.Emoji(), p.Mood.Label())
	}
	return nil
}
