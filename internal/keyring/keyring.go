// Package keyring keeps the PostgreSQL journal connection string in the OS
// keyring and decides which connection string a run uses.
package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/moodcal/internal/constants"
)

var (
	ErrNotFound    = errors.New("no connection string in the OS keyring")
	ErrUnavailable = errors.New("OS keyring is not available")
	ErrEmpty       = errors.New("connection string cannot be empty")
)

// Source names where a connection string came from.
type Source string

const (
	SourceEnv     Source = "environment"
	SourceKeyring Source = "keyring"
	SourceConfig  Source = "config"
)

// Describe is the human wording used by status output.
func (s Source) Describe() string {
	switch s {
	case SourceEnv:
		return constants.EnvDBConnection
	case SourceKeyring:
		return "OS keyring"
	default:
		return "--config"
	}
}

// Get returns the stored connection string.
func Get() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return "", ErrNotFound
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return connStr, nil
}

// Save replaces the stored connection string.
func Save(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return ErrEmpty
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Delete removes the stored connection string.
func Delete() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return ErrNotFound
	case err != nil:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Available reports whether the OS keyring answers at all.
func Available() bool {
	_, err := keyring.Get(constants.AppName, "availability-check")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// Resolution is the connection string a run will use and where it came from.
// KeyringErr is set when the keyring could not be read and was skipped.
type Resolution struct {
	ConnStr    string
	Source     Source
	KeyringErr error
}

// Resolve applies the precedence MOODCAL_DB_CONNECTION, then the keyring,
// then configured.
func Resolve(configured string) Resolution {
	if env := strings.TrimSpace(os.Getenv(constants.EnvDBConnection)); env != "" {
		return Resolution{ConnStr: env, Source: SourceEnv}
	}
	stored, err := Get()
	if err == nil {
		return Resolution{ConnStr: stored, Source: SourceKeyring}
	}
	res := Resolution{ConnStr: configured, Source: SourceConfig}
	if !errors.Is(err, ErrNotFound) {
		res.KeyringErr = err
	}
	return res
}
