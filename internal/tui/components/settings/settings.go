package settings

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodcal/internal/models"
	"github.com/julianstephens/moodcal/internal/theme"
)

type EditSettingsMsg struct{}

type Model struct {
	settings models.Settings
	styles   theme.Styles
	width    int
	height   int
}

var (
	labelStyle = lipgloss.NewStyle().
			Width(20)

	sectionStyle = lipgloss.NewStyle().
			MarginTop(1).
			MarginBottom(1)
)

func New(settings models.Settings, styles theme.Styles, width, height int) Model {
	return Model{
		settings: settings,
		styles:   styles,
		width:    width,
		height:   height,
	}
}

func (m *Model) SetSettings(settings models.Settings) {
	m.settings = settings
}

func (m *Model) SetStyles(styles theme.Styles) {
	m.styles = styles
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "e":
			return m, func() tea.Msg { return EditSettingsMsg{} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	label := func(s string) string {
		return m.styles.Muted.Render(labelStyle.Render(s))
	}
	value := func(s string) string {
		return m.styles.Text.Bold(true).Render(s)
	}

	reminder := "off"
	if m.settings.ReminderEnabled {
		reminder = "after " + m.settings.ReminderTime
	}

	var sections []string

	generalTitle := m.styles.Title.Render("General")
	generalContent := lipgloss.JoinVertical(
		lipgloss.Left,
		fmt.Sprintf("%s %s", label("Timezone:"), value(m.settings.Timezone)),
	)
	sections = append(sections, sectionStyle.Render(generalTitle+"\n"+generalContent))

	reminderTitle := m.styles.Title.Render("Daily reminder")
	reminderContent := lipgloss.JoinVertical(
		lipgloss.Left,
		fmt.Sprintf("%s %s", label("Reminder:"), value(reminder)),
	)
	sections = append(sections, sectionStyle.Render(reminderTitle+"\n"+reminderContent))

	helpText := m.styles.Muted.Italic(true).MarginTop(1).Render("Press 'e' to edit settings")
	sections = append(sections, helpText)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.width == 0 {
		return content
	}
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Left,
		lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 2).Render(content),
	)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
