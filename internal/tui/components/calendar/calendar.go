package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodcal/internal/analytics"
	"github.com/julianstephens/moodcal/internal/models"
	"github.com/julianstephens/moodcal/internal/theme"
	"github.com/julianstephens/moodcal/internal/window"
)

// SelectDayMsg asks for the day under the cursor to be opened.
type SelectDayMsg struct {
	Day models.Day
}

// EditDayMsg asks for the editor to open on the day under the cursor.
type EditDayMsg struct {
	Day models.Day
}

// MonthChangedMsg reports that the visible month moved and needs a new grid.
type MonthChangedMsg struct {
	Month window.Month
}

type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
	Open      key.Binding
	Edit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev week"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next week"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("[", "pgup"),
			key.WithHelp("[", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]", "pgdown"),
			key.WithHelp("]", "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open day"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit today"),
		),
	}
}

// Selection is what the side panel shows for the opened day.
type Selection struct {
	Day      models.Day
	Entry    models.MoodEntry
	HasEntry bool
	Editable bool
}

type Model struct {
	Keys      KeyMap
	grid      analytics.MonthGrid
	cursor    models.Day
	today     models.Day
	selection *Selection
	styles    theme.Styles
	width     int
	height    int
}

func New(grid analytics.MonthGrid, today models.Day, styles theme.Styles) Model {
	return Model{
		Keys:   DefaultKeyMap(),
		grid:   grid,
		cursor: today,
		today:  today,
		styles: styles,
	}
}

// SetGrid replaces the displayed month. The cursor moves into the month if it
// fell outside it.
func (m *Model) SetGrid(grid analytics.MonthGrid, today models.Day) {
	m.grid = grid
	m.today = today
	if !grid.Month.Contains(m.cursor) {
		if grid.Month.Contains(today) {
			m.cursor = today
		} else {
			m.cursor = grid.Month.First()
		}
	}
}

func (m *Model) SetSelection(sel *Selection) {
	m.selection = sel
}

func (m *Model) SetStyles(styles theme.Styles) {
	m.styles = styles
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Bindings lists the calendar keys for the help bar.
func (m Model) Bindings() []key.Binding {
	return []key.Binding{m.Keys.Left, m.Keys.Right, m.Keys.Up, m.Keys.Down, m.Keys.PrevMonth, m.Keys.NextMonth, m.Keys.Today, m.Keys.Open, m.Keys.Edit}
}

// Cursor is the highlighted day.
func (m Model) Cursor() models.Day {
	return m.cursor
}

// Month is the visible month.
func (m Model) Month() window.Month {
	return m.grid.Month
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.Keys.Left):
		return m.moveCursor(m.cursor.AddDays(-1))
	case key.Matches(keyMsg, m.Keys.Right):
		return m.moveCursor(m.cursor.AddDays(1))
	case key.Matches(keyMsg, m.Keys.Up):
		return m.moveCursor(m.cursor.AddDays(-7))
	case key.Matches(keyMsg, m.Keys.Down):
		return m.moveCursor(m.cursor.AddDays(7))
	case key.Matches(keyMsg, m.Keys.PrevMonth):
		return m.moveCursor(m.grid.Month.Add(-1).First())
	case key.Matches(keyMsg, m.Keys.NextMonth):
		return m.moveCursor(m.grid.Month.Add(1).First())
	case key.Matches(keyMsg, m.Keys.Today):
		return m.moveCursor(m.today)
	case key.Matches(keyMsg, m.Keys.Open):
		day := m.cursor
		return m, func() tea.Msg { return SelectDayMsg{Day: day} }
	case key.Matches(keyMsg, m.Keys.Edit):
		day := m.cursor
		return m, func() tea.Msg { return EditDayMsg{Day: day} }
	}
	return m, nil
}

func (m Model) moveCursor(to models.Day) (Model, tea.Cmd) {
	m.cursor = to
	month := window.MonthOf(to)
	if month == m.grid.Month {
		return m, nil
	}
	return m, func() tea.Msg { return MonthChangedMsg{Month: month} }
}

func (m Model) View() string {
	grid := m.viewGrid()
	panel := m.viewPanel()
	if m.width > 0 && m.width < 60 {
		return lipgloss.JoinVertical(lipgloss.Left, grid, "", panel)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, grid, "   ", panel)
}

func (m Model) viewGrid() string {
	var b strings.Builder
	first := m.grid.Month.First()
	title := fmt.Sprintf("%s %d", first.Month, first.Year)
	b.WriteString(m.styles.Title.Render(centre(title, 7*5)))
	b.WriteString("\n")

	for _, wd := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf(" %-4s", wd)))
	}
	b.WriteString("\n")

	for _, week := range m.grid.Weeks() {
		for _, cell := range week {
			b.WriteString(m.renderCell(cell))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCell(cell *analytics.DayCell) string {
	if cell == nil {
		return strings.Repeat(" ", 5)
	}
	mark := "·"
	if cell.HasEntry {
		mark = cell.Entry.Mood.Emoji()
	}
	text := fmt.Sprintf("%2d%s", cell.Date.Day, mark)

	style := m.styles.Text
	switch {
	case cell.Date == m.cursor:
		style = m.styles.Selected
	case cell.IsToday:
		style = m.styles.Today
	case cell.HasEntry:
		style = m.styles.Mood[cell.Entry.Mood]
	case m.today.Before(cell.Date):
		style = m.styles.Muted
	}
	// Emoji are two cells wide, the dot is one.
	pad := " "
	if !cell.HasEntry {
		pad = "  "
	}
	return " " + style.Render(text) + pad
}

func (m Model) viewPanel() string {
	sel := m.selection
	if sel == nil {
		return m.styles.Panel.Render(m.styles.Muted.Render("Press enter to open a day."))
	}

	lines := []string{m.styles.Title.Render(sel.Day.Time(time.UTC).Format("Monday, Jan 2 2006"))}
	if sel.HasEntry {
		lines = append(lines,
			m.styles.Mood[sel.Entry.Mood].Render(fmt.Sprintf("%s %s", sel.Entry.Mood.Emoji(), sel.Entry.Label)),
		)
		if sel.Entry.Note != "" {
			lines = append(lines, m.styles.Text.Render(wrap(sel.Entry.Note, 30)))
		} else {
			lines = append(lines, m.styles.Muted.Render("no note yet"))
		}
	} else {
		lines = append(lines, m.styles.Muted.Render("No mood logged."))
	}

	lines = append(lines, "")
	if sel.Editable {
		lines = append(lines, m.styles.Accent.Render("Press e to edit today's entry."))
	} else {
		lines = append(lines, m.styles.Muted.Render("Only today's entry can be changed."))
	}
	return m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func centre(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}
