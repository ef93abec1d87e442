package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/moodcal/internal/analytics"
	"github.com/julianstephens/moodcal/internal/models"
	"github.com/julianstephens/moodcal/internal/theme"
)

const barWidth = 24

type Model struct {
	viewport viewport.Model
	trend    []analytics.TrendPoint
	dist     *analytics.Distribution
	summary  *analytics.Summary
	styles   theme.Styles
	width    int
	height   int
}

func New(width, height int, styles theme.Styles) Model {
	return Model{
		viewport: viewport.New(width, height),
		styles:   styles,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.dist == nil {
		return "Nothing to analyse yet."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetStyles(styles theme.Styles) {
	m.styles = styles
	m.Render()
}

// SetData replaces every figure shown and redraws.
func (m *Model) SetData(trend []analytics.TrendPoint, dist analytics.Distribution, summary analytics.Summary) {
	m.trend = trend
	m.dist = &dist
	m.summary = &summary
	m.Render()
}

func (m *Model) Render() {
	if m.dist == nil {
		m.viewport.SetContent("Nothing to analyse yet.")
		return
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Last 7 days") + "\n")
	for _, p := range m.trend {
		label := m.styles.Muted.Render(p.Date.Time(time.UTC).Format("Mon Jan 02"))
		if !p.Recorded {
			b.WriteString(fmt.Sprintf("%s  %s\n", label, m.styles.Muted.Render("· not logged")))
			continue
		}
		bar := strings.Repeat("█", p.Score*barWidth/maxScore())
		b.WriteString(fmt.Sprintf("%s  %s %s\n", label, m.styles.Mood[p.Mood].Render(bar), p.Mood.Emoji()))
	}

	b.WriteString("\n" + m.styles.Title.Render(fmt.Sprintf("%s %d", m.dist.Month.Month, m.dist.Month.Year)) + "\n")
	if m.dist.Total == 0 {
		b.WriteString(m.styles.Muted.Render("No entries this month.") + "\n")
	}
	for _, s := range m.dist.Shares {
		filled := int(s.Percent / 100 * barWidth)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		b.WriteString(fmt.Sprintf("%s %-12s %s %3d (%4.1f%%)\n",
			s.Mood.Emoji(), s.Mood.Label(), m.styles.Mood[s.Mood].Render(bar), s.Count, s.Percent))
	}

	if m.summary != nil {
		b.WriteString("\n" + m.styles.Title.Render("Insights") + "\n")
		b.WriteString(fmt.Sprintf("Streak: %d day(s)   Logged: %d of %d   Average: %.1f\n",
			m.summary.Streak, m.summary.Logged, m.summary.Days, m.summary.Average))
		for _, in := range m.summary.Insights {
			b.WriteString(m.styles.Accent.Render("• ") + in.Reason + "\n")
		}
	}

	m.viewport.SetContent(b.String())
}

func maxScore() int {
	return models.AllMoods[len(models.AllMoods)-1].Score()
}
