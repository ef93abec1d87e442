package storage

import (
	"errors"
	"fmt"

	apperrors "github.com/julianstephens/moodcal/internal/errors"
)

// Provider is a synchronous string-keyed key-value store. Values are opaque
// strings; callers own their encoding.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Key-value access
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

// ErrNotLoaded is returned when a store is used before Init or Load.
var ErrNotLoaded = errors.New("storage not loaded")

// NotInitialized wraps the shared not-initialized sentinel with a location.
func NotInitialized(location string) error {
	return fmt.Errorf("%w at %s", apperrors.ErrNotInitialized, location)
}
