// Package editor holds the in-progress edit for the selected calendar day.
package editor

import (
	"fmt"
	"time"

	"github.com/julianstephens/moodcal/internal/logger"
	"github.com/julianstephens/moodcal/internal/models"
	"github.com/julianstephens/moodcal/internal/window"
)

// Store is the slice of the journal the editor needs.
type Store interface {
	Get(day models.Day) (models.MoodEntry, bool, error)
	Put(entry models.MoodEntry) error
}

// Mode is the editor state.
type Mode int

const (
	Unselected Mode = iota
	ReadOnly
	Editable
)

func (m Mode) String() string {
	switch m {
	case ReadOnly:
		return "read-only"
	case Editable:
		return "editable"
	default:
		return "unselected"
	}
}

// Editor is not safe for concurrent use.
type Editor struct {
	store Store
	now   func() time.Time
	loc   *time.Location

	mode     Mode
	selected models.Day
	stored   *models.MoodEntry

	mood models.Mood
	note string
}

// New returns an editor with nothing selected. now supplies the clock used at
// commit time and loc decides which calendar day that clock falls on.
func New(store Store, now func() time.Time, loc *time.Location) *Editor {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Editor{store: store, now: now, loc: loc}
}

// Today is the current calendar day according to the editor's clock.
func (e *Editor) Today() models.Day {
	return models.DayOf(e.now().In(e.loc))
}

// Select makes day the active date and reinitialises the buffer. The stored
// entry, if any, is loaded for display. Editing is only possible when day is
// today. If the entry cannot be loaded the editor is left unselected.
func (e *Editor) Select(day, now models.Day) error {
	e.mode = Unselected
	e.selected = models.Day{}
	e.stored = nil
	e.mood = models.MoodUnset
	e.note = ""

	stored, ok, err := e.store.Get(day)
	if err != nil {
		return fmt.Errorf("failed to load entry for %s: %w", day, err)
	}
	e.selected = day
	if ok {
		e.stored = &stored
	}

	if window.IsEditable(day, now) {
		e.mode = Editable
		e.loadForEditing()
	} else {
		e.mode = ReadOnly
	}
	return nil
}

// loadForEditing copies the stored entry into the buffer, or leaves it blank.
func (e *Editor) loadForEditing() {
	if e.stored == nil {
		return
	}
	e.mood = e.stored.Mood
	e.note = e.stored.Note
}

func (e *Editor) Mode() Mode {
	return e.mode
}

// Selected returns the active date and whether one is set.
func (e *Editor) Selected() (models.Day, bool) {
	return e.selected, e.mode != Unselected
}

// Stored returns the persisted entry for the selected date as of Select.
func (e *Editor) Stored() (models.MoodEntry, bool) {
	if e.stored == nil {
		return models.MoodEntry{}, false
	}
	return *e.stored, true
}

// Buffer returns the candidate mood and note.
func (e *Editor) Buffer() (models.Mood, string) {
	return e.mood, e.note
}

func (e *Editor) checkEditable() error {
	switch e.mode {
	case Unselected:
		return ErrNoDateSelected
	case ReadOnly:
		return ErrReadOnly
	}
	return nil
}

func (e *Editor) SetMood(m models.Mood) error {
	if err := e.checkEditable(); err != nil {
		return err
	}
	if !m.Valid() {
		return ErrInvalidMood
	}
	e.mood = m
	return nil
}

// SetNote replaces the buffered note. A note over the limit is refused and the
// buffer keeps its previous value.
func (e *Editor) SetNote(note string) error {
	if err := e.checkEditable(); err != nil {
		return err
	}
	if !models.NoteFits(note) {
		return ErrNoteTooLong
	}
	e.note = note
	return nil
}

// ClearNote empties the buffered note. The stored entry is untouched until Commit.
func (e *Editor) ClearNote() error {
	if err := e.checkEditable(); err != nil {
		return err
	}
	e.note = ""
	return nil
}

// Commit writes the buffer as the entry for the selected date. The buffer is
// kept, so a second Commit writes the same values again.
func (e *Editor) Commit() (models.MoodEntry, error) {
	if e.mode == Unselected {
		return models.MoodEntry{}, ErrNoDateSelected
	}
	if e.mode == ReadOnly {
		return models.MoodEntry{}, ErrReadOnly
	}
	if !e.mood.Valid() {
		return models.MoodEntry{}, ErrNoMoodSelected
	}

	now := e.now()
	if !window.IsEditable(e.selected, models.DayOf(now.In(e.loc))) {
		// The day rolled over since Select.
		e.mode = ReadOnly
		return models.MoodEntry{}, ErrReadOnly
	}

	entry := models.NewMoodEntry(e.selected, e.mood, e.note, now.UTC().Truncate(time.Millisecond))
	if err := e.store.Put(entry); err != nil {
		return models.MoodEntry{}, fmt.Errorf("failed to save entry: %w", err)
	}
	e.stored = &entry
	logger.Info("Committed mood entry", "date", entry.Date.Key(), "mood", entry.Mood.String())
	return entry, nil
}
