package notifier

import (
	"fmt"
	"time"

	"github.com/julianstephens/moodcal/internal/models"
	"github.com/julianstephens/moodcal/internal/utils"
)

// EntryLookup is the part of the journal the reminder reads.
type EntryLookup interface {
	Get(day models.Day) (models.MoodEntry, bool, error)
}

// Reminder is the outcome of a reminder check.
type Reminder struct {
	Day    models.Day
	Due    bool
	Reason string // why no reminder is due
}

// Title and Message are what gets shown to the user when the reminder is due.
func (r Reminder) Title() string { return "moodcal" }

func (r Reminder) Message() string {
	return fmt.Sprintf("How are you feeling today? Nothing logged for %s yet.", r.Day.Key())
}

// CheckReminder decides whether the daily reminder should fire at now.
// It fires once reminder_time has passed in the configured timezone and
// today has no entry.
func CheckReminder(settings models.Settings, now time.Time, entries EntryLookup) (Reminder, error) {
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return Reminder{}, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	local := now.In(loc)
	r := Reminder{Day: models.DayOf(local)}

	if !settings.ReminderEnabled {
		r.Reason = "reminders are disabled"
		return r, nil
	}

	at, err := utils.ParseTimeToMinutes(settings.ReminderTime)
	if err != nil {
		return Reminder{}, fmt.Errorf("invalid reminder time %q: %w", settings.ReminderTime, err)
	}
	if utils.MinutesOfDay(local) < at {
		r.Reason = "before reminder time " + settings.ReminderTime
		return r, nil
	}

	_, ok, err := entries.Get(r.Day)
	if err != nil {
		return Reminder{}, err
	}
	if ok {
		r.Reason = "mood already logged today"
		return r, nil
	}

	r.Due = true
	return r, nil
}
