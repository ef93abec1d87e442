// Package validation checks stored settings and journal contents for problems
// that the read path tolerates silently.
package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/journal"
	"github.com/julianstephens/moodcal/internal/models"
	"github.com/julianstephens/moodcal/internal/theme"
	"github.com/julianstephens/moodcal/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidTimezone     ConflictType = "invalid_timezone"
	ConflictInvalidReminderTime ConflictType = "invalid_reminder_time"
	ConflictUnknownTheme        ConflictType = "unknown_theme"
	ConflictUnreadableJournal   ConflictType = "unreadable_journal"
	ConflictUnreadableRecord    ConflictType = "unreadable_record"
	ConflictQuarantinedJournal  ConflictType = "quarantined_journal"
	ConflictFutureEntry         ConflictType = "future_entry"
	ConflictNoteTooLong         ConflictType = "note_too_long"
)

// Severity tells doctor whether a conflict should fail the check.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// Conflict represents a single detected problem
type Conflict struct {
	Type        ConflictType
	Severity    Severity
	Description string
	Date        string // YYYY-MM-DD (if applicable)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors returns true if any conflict is an error rather than a warning
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Merge appends the conflicts of other.
func (vr *ValidationResult) Merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No problems detected."
	}

	var b strings.Builder
	b.WriteString("Problems detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator validates settings and journal data
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateSettings checks that stored settings can be used.
func (v *Validator) ValidateSettings(settings models.Settings) ValidationResult {
	var result ValidationResult
	if !utils.ValidateTimezone(settings.Timezone) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidTimezone,
			Severity:    SeverityError,
			Description: fmt.Sprintf("timezone %q is not a valid IANA timezone", settings.Timezone),
		})
	}
	if !utils.ValidateTimeFormat(settings.ReminderTime) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidReminderTime,
			Severity:    SeverityError,
			Description: fmt.Sprintf("reminder time %q is not in HH:MM format", settings.ReminderTime),
		})
	}
	return result
}

// ValidateTheme checks a stored theme id. An absent id is fine.
func (v *Validator) ValidateTheme(id string, present bool) ValidationResult {
	var result ValidationResult
	if !present {
		return result
	}
	if _, ok := theme.Lookup(id); !ok {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictUnknownTheme,
			Severity:    SeverityWarning,
			Description: fmt.Sprintf("stored theme %q is unknown, %q is used instead", id, constants.DefaultThemeID),
		})
	}
	return result
}

// ValidateJournal turns a journal report and snapshot into conflicts.
// Entries dated after today are reported because they cannot be edited.
func (v *Validator) ValidateJournal(report journal.Report, snap journal.Snapshot, today models.Day) ValidationResult {
	var result ValidationResult

	for _, p := range report.Problems {
		if p.Document() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnreadableJournal,
				Severity:    SeverityError,
				Description: fmt.Sprintf("journal is unreadable and reads as empty: %v", p.Err),
			})
			continue
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictUnreadableRecord,
			Severity:    SeverityWarning,
			Description: fmt.Sprintf("record %q is unreadable and is skipped: %v", p.Date, p.Err),
			Date:        p.Date,
		})
	}

	for _, key := range report.Quarantined {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictQuarantinedJournal,
			Severity:    SeverityWarning,
			Description: fmt.Sprintf("a previously unreadable journal was saved under %q", key),
		})
	}

	for _, entry := range snap.Sorted() {
		if today.Before(entry.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureEntry,
				Severity:    SeverityWarning,
				Description: fmt.Sprintf("entry for %s is in the future", entry.Date.Key()),
				Date:        entry.Date.Key(),
			})
		}
		if !models.NoteFits(entry.Note) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNoteTooLong,
				Severity:    SeverityWarning,
				Description: fmt.Sprintf("note for %s has %d characters (limit %d)", entry.Date.Key(), models.NoteLen(entry.Note), constants.NoteMaxLen),
				Date:        entry.Date.Key(),
			})
		}
	}

	return result
}
