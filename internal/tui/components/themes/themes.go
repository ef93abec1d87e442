package themes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodcal/internal/theme"
)

// ApplyThemeMsg asks for the theme to be saved and applied.
type ApplyThemeMsg struct {
	ID string
}

type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Apply key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "apply theme"),
		),
	}
}

type Model struct {
	Keys    KeyMap
	cursor  int
	current string
	styles  theme.Styles
}

// New places the cursor on the current theme.
func New(current theme.Theme, styles theme.Styles) Model {
	m := Model{Keys: DefaultKeyMap(), styles: styles}
	m.SetCurrent(current, styles)
	return m
}

// SetCurrent marks id as applied and restyles the list with it.
func (m *Model) SetCurrent(current theme.Theme, styles theme.Styles) {
	m.current = current.ID
	m.styles = styles
	for i, t := range theme.All {
		if t.ID == current.ID {
			m.cursor = i
		}
	}
}

func (m Model) Bindings() []key.Binding {
	return []key.Binding{m.Keys.Up, m.Keys.Down, m.Keys.Apply}
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
	case key.Matches(keyMsg, m.Keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.Keys.Down):
		if m.cursor < len(theme.All)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.Keys.Apply):
		id := theme.All[m.cursor].ID
		return m, func() tea.Msg { return ApplyThemeMsg{ID: id} }
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Themes") + "\n\n")
	for i, t := range theme.All {
		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.Accent.Render("▸ ")
		}
		var swatches []string
		for _, c := range t.Colors() {
			swatches = append(swatches, m.styles.Swatch(c).Render("  "))
		}
		name := fmt.Sprintf("%-10s", t.Name)
		if t.ID == m.current {
			name = m.styles.Title.Render(name) + m.styles.Muted.Render(" (current)")
		} else {
			name = m.styles.Text.Render(name)
		}
		b.WriteString(cursor + lipgloss.JoinHorizontal(lipgloss.Top, swatches...) + " " + name + "\n")
	}
	return b.String()
}
