package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/moodcal/internal/cli"
	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/storage"
	"github.com/julianstephens/moodcal/internal/storage/diskstore"
	"github.com/julianstephens/moodcal/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source store (path, json://, diskv:// or PostgreSQL connection string) to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	if err := storage.EnsureDefaultSettings(ctx.Store); err != nil {
		return fmt.Errorf("failed to save default settings: %w", err)
	}
	ctx.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}

	return nil
}

// reset removes a file-backed store so Init starts from nothing. Server and
// in-memory stores have no file to remove.
func (c *InitCmd) reset(ctx *cli.Context) error {
	switch ctx.Store.(type) {
	case *sqlite.Store, *storage.JSONStore, *diskstore.Store:
	default:
		return fmt.Errorf("--force is only supported for file-backed stores")
	}
	dbPath := ctx.Store.GetConfigPath()

	if c.Source != "" {
		absDbPath, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDbPath
		}
		absSource, err := filepath.Abs(c.Source)
		if err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	info, err := os.Stat(dbPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if info.IsDir() {
		err = os.RemoveAll(dbPath)
	} else {
		err = os.Remove(dbPath)
	}
	if err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	ctx.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}

// migrateData copies every key from the source store. Keys are opaque here,
// so the journal, theme, settings and quarantined documents all move as-is.
func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	sourceStore, err := cli.OpenSource(sourcePath)
	if err != nil {
		return err
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	keys, err := sourceStore.Keys()
	if err != nil {
		return fmt.Errorf("failed to list source keys: %w", err)
	}

	copied := 0
	for _, key := range keys {
		value, ok, err := sourceStore.Get(key)
		if err != nil {
			return fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		if !ok {
			continue
		}
		if err := ctx.Store.Set(key, value); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
		copied++
		if strings.HasPrefix(key, constants.CorruptKeyPrefix) {
			ctx.Printf("  Copied quarantined journal %s\n", key)
		}
	}
	ctx.Printf("  Migrated %d keys\n", copied)

	return nil
}
