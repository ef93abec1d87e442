package vent

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/theme"
	"github.com/julianstephens/moodcal/internal/vent"
)

const maxVentLen = 280

// FrameMsg advances a running animation. Run ties the tick to the animation
// that scheduled it so a stale tick from a finished run is ignored.
type FrameMsg struct {
	Run int
}

type KeyMap struct {
	Blow key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Blow: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "blow it away"),
		),
	}
}

type Model struct {
	Keys   KeyMap
	input  textarea.Model
	rng    *rand.Rand
	styles theme.Styles
	width  int

	anim  *vent.Animation
	frame int
	run   int
	err   error
}

func New(rng *rand.Rand, styles theme.Styles) Model {
	ta := textarea.New()
	ta.Placeholder = "What's bothering you? It won't be saved."
	ta.CharLimit = maxVentLen
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	return Model{
		Keys:   DefaultKeyMap(),
		input:  ta,
		rng:    rng,
		styles: styles,
	}
}

func (m Model) Bindings() []key.Binding {
	return []key.Binding{m.Keys.Blow}
}

// Focus gives the text box the cursor.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

func (m *Model) Blur() {
	m.input.Blur()
}

// Focused reports whether keystrokes go to the text box.
func (m Model) Focused() bool {
	return m.input.Focused()
}

// Playing reports whether an animation is on screen.
func (m Model) Playing() bool {
	return m.anim != nil
}

func (m *Model) SetStyles(styles theme.Styles) {
	m.styles = styles
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.input.SetWidth(width)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		if m.anim == nil || msg.Run != m.run {
			return m, nil
		}
		m.frame++
		if m.frame >= len(m.anim.Frames) {
			m.anim = nil
			m.frame = 0
			return m, m.input.Focus()
		}
		return m, m.tick()
	case tea.KeyMsg:
		if m.anim != nil {
			return m, nil
		}
		if key.Matches(msg, m.Keys.Blow) {
			return m.blow()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.err != nil && m.input.Value() != "" {
		m.err = nil
	}
	return m, cmd
}

func (m Model) blow() (Model, tea.Cmd) {
	width := m.width
	if width <= 0 {
		width = 60
	}
	anim, err := vent.Play(m.input.Value(), width, m.rng)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.input.Reset()
	m.input.Blur()
	m.anim = &anim
	m.frame = 0
	m.run++
	return m, m.tick()
}

func (m Model) tick() tea.Cmd {
	run := m.run
	return tea.Tick(constants.VentFrameInterval, func(time.Time) tea.Msg {
		return FrameMsg{Run: run}
	})
}

func (m Model) View() string {
	title := m.styles.Title.Render("Blow bad thoughts away")
	if m.anim != nil {
		return lipgloss.JoinVertical(lipgloss.Left, title, "", m.styles.Accent.Render(m.anim.Frames[m.frame]))
	}

	lines := []string{title, "", m.input.View()}
	if m.err != nil {
		lines = append(lines, m.styles.Error.Render(m.err.Error()))
	} else {
		lines = append(lines, m.styles.Muted.Render("Type it out, then press enter."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
