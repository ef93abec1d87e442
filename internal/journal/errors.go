package journal

import (
	"errors"
	"fmt"
)

// ErrInvalidEntry is returned by Put for entries that could never be read back.
var ErrInvalidEntry = errors.New("invalid mood entry")

// ParseError describes persisted journal data that could not be decoded.
// Date is empty when the whole document is unreadable.
type ParseError struct {
	Key  string
	Date string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Date == "" {
		return fmt.Sprintf("journal %q is unreadable: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("journal %q record %q is unreadable: %v", e.Key, e.Date, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Document reports whether the error covers the whole document.
func (e *ParseError) Document() bool {
	return e.Date == ""
}
