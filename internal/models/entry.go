package models

import (
	"time"
	"unicode/utf8"

	"github.com/julianstephens/moodcal/internal/constants"
)

// MoodEntry is one journal record for exactly one calendar day.
type MoodEntry struct {
	Date      Day       `json:"-"` // the storage key carries the date
	Mood      Mood      `json:"mood"`
	Label     string    `json:"label"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"` // time of the last write
}

// NewMoodEntry builds an entry with the label derived from the mood.
func NewMoodEntry(day Day, mood Mood, note string, createdAt time.Time) MoodEntry {
	return MoodEntry{
		Date:      day,
		Mood:      mood,
		Label:     mood.Label(),
		Note:      note,
		CreatedAt: createdAt,
	}
}

// NoteLen counts characters, not bytes.
func NoteLen(note string) int {
	return utf8.RuneCountInString(note)
}

// NoteFits reports whether note is within the journal's note limit.
func NoteFits(note string) bool {
	return NoteLen(note) <= constants.NoteMaxLen
}
