package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/keyring"
	"github.com/julianstephens/moodcal/internal/logger"
	"github.com/julianstephens/moodcal/internal/migration"
)

// ErrNotInitialized is returned by stores that have no backing data yet.
var ErrNotInitialized = stderrors.New("storage not initialized")

// Hint returns a short remedy for errors the user can fix themselves, or "".
func Hint(err error) string {
	switch {
	case stderrors.Is(err, ErrNotInitialized):
		return fmt.Sprintf("run '%s init' first", constants.AppName)
	case stderrors.Is(err, migration.ErrSchemaTooNew):
		return fmt.Sprintf("this journal was written by a newer %s; upgrade to open it", constants.AppName)
	case stderrors.Is(err, migration.ErrMissingTable):
		return fmt.Sprintf("restore a snapshot with '%s backup restore'", constants.AppName)
	case stderrors.Is(err, keyring.ErrNotFound):
		return fmt.Sprintf("store one with '%s keyring set'", constants.AppName)
	case stderrors.Is(err, keyring.ErrUnavailable):
		return "set " + constants.EnvDBConnection + " instead"
	default:
		return ""
	}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	if hint := Hint(err); hint != "" {
		return fmt.Sprintf("Error: %v (%s)", err, hint)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
