package editor

// ValidationError is a user-correctable problem with the current edit.
// Compare with errors.Is against the sentinel values below.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrNoDateSelected = &ValidationError{Code: "no_date_selected", Message: "select a date first"}
	ErrReadOnly       = &ValidationError{Code: "read_only", Message: "only today's entry can be changed"}
	ErrNoMoodSelected = &ValidationError{Code: "no_mood_selected", Message: "choose a mood before saving"}
	ErrNoteTooLong    = &ValidationError{Code: "note_too_long", Message: "note is longer than 120 characters"}
	ErrInvalidMood    = &ValidationError{Code: "invalid_mood", Message: "unknown mood"}
)
