package models

import (
	"fmt"
	"strings"
)

// Mood is the recorded emotional state for a day. The zero value means no
// mood has been chosen yet.
type Mood int

const (
	MoodUnset Mood = iota
	MoodBad
	MoodMeh
	MoodGood
	MoodGreat
)

// AllMoods lists every selectable mood in severity order. Presentation code
// relies on this order staying fixed.
var AllMoods = []Mood{MoodBad, MoodMeh, MoodGood, MoodGreat}

type moodAttrs struct {
	name  string
	label string
	emoji string
}

// moodTable holds every per-mood attribute in one place, indexed by the enum.
var moodTable = [...]moodAttrs{
	MoodUnset: {name: "", label: "", emoji: ""},
	MoodBad:   {name: "bad", label: "Rough day", emoji: "😣"},
	MoodMeh:   {name: "meh", label: "So-so", emoji: "😐"},
	MoodGood:  {name: "good", label: "Pretty good", emoji: "🙂"},
	MoodGreat: {name: "great", label: "Great", emoji: "😄"},
}

// Valid reports whether m is one of the four selectable moods.
func (m Mood) Valid() bool {
	return m >= MoodBad && m <= MoodGreat
}

// Score maps the mood onto the 1..4 trend scale. Unset and unknown moods score 0.
func (m Mood) Score() int {
	if !m.Valid() {
		return 0
	}
	return int(m)
}

// String returns the wire name of the mood ("bad", "meh", "good", "great").
func (m Mood) String() string {
	if !m.Valid() {
		return ""
	}
	return moodTable[m].name
}

// Label returns the fixed display label derived from the mood.
func (m Mood) Label() string {
	if !m.Valid() {
		return ""
	}
	return moodTable[m].label
}

func (m Mood) Emoji() string {
	if !m.Valid() {
		return ""
	}
	return moodTable[m].emoji
}

// ParseMood resolves a wire name, case-insensitively.
func ParseMood(s string) (Mood, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range AllMoods {
		if moodTable[m].name == s {
			return m, nil
		}
	}
	return MoodUnset, fmt.Errorf("unknown mood %q (expected one of bad, meh, good, great)", s)
}

func (m Mood) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("cannot encode unset mood")
	}
	return []byte(m.String()), nil
}

func (m *Mood) UnmarshalText(b []byte) error {
	parsed, err := ParseMood(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
