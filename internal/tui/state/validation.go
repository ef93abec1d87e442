package state

import (
	"fmt"

	"github.com/julianstephens/moodcal/internal/storage"
	"github.com/julianstephens/moodcal/internal/validation"
)

// UpdateValidationStatus runs validation and updates the warning message
func (m *Model) UpdateValidationStatus() {
	report, err := m.Journal.Verify()
	if err != nil {
		// Store errors prevent validation - show generic message
		m.ValidationWarning = "⚠ Validation unavailable"
		m.ValidationConflicts = nil
		return
	}

	snap, err := m.Journal.All()
	if err != nil {
		m.ValidationWarning = "⚠ Validation unavailable"
		m.ValidationConflicts = nil
		return
	}

	validator := validation.New()
	result := validator.ValidateJournal(report, snap, m.Today())

	if settings, err := storage.GetSettings(m.Store); err == nil {
		result.Merge(validator.ValidateSettings(settings))
	}

	m.ValidationConflicts = result.Conflicts
	if len(result.Conflicts) > 0 {
		m.ValidationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.ValidationWarning = ""
	}
}
