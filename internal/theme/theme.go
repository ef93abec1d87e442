// Package theme holds the fixed colour themes and the persisted choice.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/models"
	"github.com/julianstephens/moodcal/internal/storage"
)

// Theme is a named palette: two background shades and two accents.
type Theme struct {
	ID         string
	Name       string
	Background string
	Surface    string
	Accent     string
	AccentAlt  string
	Light      bool
}

// All lists every theme in display order.
var All = []Theme{
	{ID: "light", Name: "Light", Background: "#f8fafc", Surface: "#e2e8f0", Accent: "#0369a1", AccentAlt: "#0284c7", Light: true},
	{ID: "midnight", Name: "MidNight", Background: "#0f172a", Surface: "#020617", Accent: "#38bdf8", AccentAlt: "#0ea5e9"},
	{ID: "future", Name: "Future", Background: "#0a0e27", Surface: "#080b1a", Accent: "#00ff88", AccentAlt: "#00dd77"},
	{ID: "ruin", Name: "Ruin", Background: "#3d2817", Surface: "#2a1810", Accent: "#d4a574", AccentAlt: "#c9935e"},
	{ID: "crystal", Name: "Crystal", Background: "#0f1419", Surface: "#0a0d12", Accent: "#a78bfa", AccentAlt: "#9f7aea"},
}

// Colors returns the four palette colours in display order.
func (t Theme) Colors() []string {
	return []string{t.Background, t.Surface, t.Accent, t.AccentAlt}
}

// Lookup finds a theme by id, case-insensitively.
func Lookup(id string) (Theme, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, t := range All {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}

// Default is the theme used when nothing valid is stored.
func Default() Theme {
	t, _ := Lookup(constants.DefaultThemeID)
	return t
}

// Resolve returns the theme for id, falling back to the default.
func Resolve(id string) Theme {
	if t, ok := Lookup(id); ok {
		return t
	}
	return Default()
}

// IDs returns every theme id.
func IDs() []string {
	ids := make([]string, len(All))
	for i, t := range All {
		ids[i] = t.ID
	}
	return ids
}

// Load returns the stored theme. Unknown or missing ids give the default.
func Load(p storage.Provider) (Theme, error) {
	id, ok, err := p.Get(constants.ThemeKey)
	if err != nil {
		return Theme{}, fmt.Errorf("failed to read theme: %w", err)
	}
	if !ok {
		return Default(), nil
	}
	return Resolve(id), nil
}

// Save persists the theme id. Only known ids are accepted.
func Save(p storage.Provider, id string) (Theme, error) {
	t, ok := Lookup(id)
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (expected one of %s)", id, strings.Join(IDs(), ", "))
	}
	if err := p.Set(constants.ThemeKey, t.ID); err != nil {
		return Theme{}, fmt.Errorf("failed to save theme: %w", err)
	}
	return t, nil
}

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Title     lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Today     lipgloss.Style
	Selected  lipgloss.Style
	ActiveTab lipgloss.Style
	Tab       lipgloss.Style
	Panel     lipgloss.Style
	Error     lipgloss.Style
	Swatch    func(color string) lipgloss.Style
	Mood      map[models.Mood]lipgloss.Style
}

// Styles builds the style set for t.
func (t Theme) Styles() Styles {
	text := lipgloss.Color("#e5e7eb")
	muted := lipgloss.Color("#94a3b8")
	if t.Light {
		text = lipgloss.Color("#1e293b")
		muted = lipgloss.Color("#64748b")
	}
	accent := lipgloss.Color(t.Accent)

	return Styles{
		Title:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		Text:   lipgloss.NewStyle().Foreground(text),
		Muted:  lipgloss.NewStyle().Foreground(muted),
		Accent: lipgloss.NewStyle().Foreground(accent),
		Today: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			Underline(true),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Background)).
			Background(accent).
			Bold(true),
		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Background)).
			Background(accent).
			Padding(0, 1).
			Bold(true),
		Tab: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.AccentAlt)).
			Padding(0, 1),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		Swatch: func(color string) lipgloss.Style {
			return lipgloss.NewStyle().Background(lipgloss.Color(color))
		},
		Mood: map[models.Mood]lipgloss.Style{
			models.MoodBad:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")),
			models.MoodMeh:   lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24")),
			models.MoodGood:  lipgloss.NewStyle().Foreground(lipgloss.Color("#34d399")),
			models.MoodGreat: lipgloss.NewStyle().Foreground(accent),
		},
	}
}
