// Package diskstore stores each key as its own file in a directory.
package diskstore

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/peterbourgon/diskv/v3"

	"github.com/julianstephens/moodcal/internal/storage"
)

const (
	dataDirName = "data"
	tempDirName = "tmp"
)

type Store struct {
	basePath string
	d        *diskv.Diskv
}

func NewStore(basePath string) *Store {
	return &Store{basePath: basePath}
}

func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Join(s.basePath, dataDirName), 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	if err := s.Load(); err != nil {
		return err
	}
	return storage.EnsureDefaultSettings(s)
}

func (s *Store) Load() error {
	if s.d != nil {
		return nil
	}
	if _, err := os.Stat(filepath.Join(s.basePath, dataDirName)); os.IsNotExist(err) {
		return storage.NotInitialized(s.basePath)
	}

	// TempDir makes every Write a rename into place.
	s.d = diskv.New(diskv.Options{
		BasePath:          filepath.Join(s.basePath, dataDirName),
		TempDir:           filepath.Join(s.basePath, tempDirName),
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		FilePerm:          0600,
		PathPerm:          0700,
	})
	return nil
}

func (s *Store) Close() error {
	s.d = nil
	return nil
}

func (s *Store) Get(key string) (string, bool, error) {
	if s.d == nil {
		return "", false, storage.ErrNotLoaded
	}
	if !s.d.Has(key) {
		return "", false, nil
	}
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(val), true, nil
}

func (s *Store) Set(key, value string) error {
	if s.d == nil {
		return storage.ErrNotLoaded
	}
	return s.d.Write(key, []byte(value))
}

func (s *Store) Keys() ([]string, error) {
	if s.d == nil {
		return nil, storage.ErrNotLoaded
	}
	cancel := make(chan struct{})
	defer close(cancel)

	var keys []string
	for key := range s.d.Keys(cancel) {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) GetConfigPath() string {
	return s.basePath
}

// keyToPathTransform stores every key as a flat, filename-safe file.
func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: base64.RawURLEncoding.EncodeToString([]byte(key)),
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	key, err := base64.RawURLEncoding.DecodeString(pathKey.FileName)
	if err != nil {
		return pathKey.FileName
	}
	return string(key)
}
