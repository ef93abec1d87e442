package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/keyring"
	"github.com/julianstephens/moodcal/internal/logger"
	"github.com/julianstephens/moodcal/internal/storage"
	"github.com/julianstephens/moodcal/internal/storage/diskstore"
	"github.com/julianstephens/moodcal/internal/storage/postgres"
	"github.com/julianstephens/moodcal/internal/storage/sqlite"
)

// Store location schemes accepted by --config. Anything else is a SQLite path.
const (
	SchemeJSON     = "json://"
	SchemeDiskv    = "diskv://"
	SchemeMemory   = "memory://"
	SchemePostgres = "postgres://"
	SchemePostgreQ = "postgresql://"
)

// ErrEmbeddedCredentials is returned for --config values that carry a password.
var ErrEmbeddedCredentials = errors.New("PostgreSQL connection strings with embedded credentials are not allowed on the command line; use the OS keyring ('moodcal keyring set'), MOODCAL_DB_CONNECTION, or a .pgpass file")

// IsPostgres reports whether config names a PostgreSQL server.
func IsPostgres(config string) bool {
	return strings.HasPrefix(config, SchemePostgres) || strings.HasPrefix(config, SchemePostgreQ)
}

// ResolvePostgres reports the PostgreSQL connection a run with config would
// use. The environment variable selects PostgreSQL on its own; otherwise config
// must name a server and the environment or keyring may replace it.
func ResolvePostgres(config string) (keyring.Resolution, bool) {
	if IsPostgres(config) {
		return keyring.Resolve(config), true
	}
	if env := strings.TrimSpace(os.Getenv(constants.EnvDBConnection)); env != "" {
		return keyring.Resolution{ConnStr: env, Source: keyring.SourceEnv}, true
	}
	return keyring.Resolution{}, false
}

// OpenStore picks the storage backend for config without touching it.
func OpenStore(config string) (storage.Provider, error) {
	res, ok := ResolvePostgres(config)
	if !ok {
		return openLocation(config)
	}
	if res.KeyringErr != nil {
		logger.Warn("Skipping OS keyring", "error", res.KeyringErr)
	}
	if res.Source == keyring.SourceConfig {
		return openLocation(config)
	}
	logger.Debug("Using PostgreSQL connection string", "source", res.Source)
	return postgres.New(res.ConnStr), nil
}

// OpenSource opens a store named explicitly, such as the source of a data
// migration. No environment or keyring lookup is done.
func OpenSource(location string) (storage.Provider, error) {
	return openLocation(location)
}

func openLocation(location string) (storage.Provider, error) {
	switch {
	case IsPostgres(location):
		if ok, err := postgres.ValidateConnString(location); !ok {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, ErrEmbeddedCredentials
			}
			return nil, err
		}
		return postgres.New(location), nil
	case strings.HasPrefix(location, SchemeMemory):
		return storage.NewMemoryStore(), nil
	case strings.HasPrefix(location, SchemeJSON):
		path, err := expand(strings.TrimPrefix(location, SchemeJSON))
		if err != nil {
			return nil, err
		}
		return storage.NewJSONStore(path), nil
	case strings.HasPrefix(location, SchemeDiskv):
		path, err := expand(strings.TrimPrefix(location, SchemeDiskv))
		if err != nil {
			return nil, err
		}
		return diskstore.NewStore(path), nil
	default:
		path, err := expand(location)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path), nil
	}
}

func expand(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("storage path cannot be empty")
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand %q: %w", path, err)
	}
	return expanded, nil
}
