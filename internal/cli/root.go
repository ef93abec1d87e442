package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/moodcal/internal/backup"
	"github.com/julianstephens/moodcal/internal/journal"
	"github.com/julianstephens/moodcal/internal/logger"
	"github.com/julianstephens/moodcal/internal/models"
	"github.com/julianstephens/moodcal/internal/storage"
	"github.com/julianstephens/moodcal/internal/storage/sqlite"
	"github.com/julianstephens/moodcal/internal/theme"
	"github.com/julianstephens/moodcal/internal/utils"
)

type Context struct {
	Store   storage.Provider
	Journal *journal.Store
	Now     func() time.Time
	Out     io.Writer
	Err     io.Writer
	Config  string // --config value the store was opened from

	warned bool
}

// NewContext wires the journal to store. Unreadable journal data is reported
// once per run on Err.
func NewContext(store storage.Provider) *Context {
	c := &Context{
		Store: store,
		Now:   time.Now,
		Out:   os.Stdout,
		Err:   os.Stderr,
	}
	c.Journal = journal.New(store,
		journal.WithParseErrorHandler(c.warnParseError),
		journal.WithClock(func() time.Time { return c.Now() }),
	)
	return c
}

// QuietJournal reads the same store without the parse warning.
func (c *Context) QuietJournal() *journal.Store {
	return journal.New(c.Store, journal.WithClock(func() time.Time { return c.Now() }))
}

func (c *Context) warnParseError(perr *journal.ParseError) {
	if c.warned {
		return
	}
	c.warned = true
	w := c.Err
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "⚠ Some journal data could not be read and was skipped (run 'moodcal doctor' for details).\n")
}

func (c *Context) stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.stdout(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.stdout(), args...)
}

// Settings returns the stored settings with defaults applied.
func (c *Context) Settings() (models.Settings, error) {
	settings, err := storage.GetSettings(c.Store)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// Location is the configured timezone.
func (c *Context) Location() (*time.Location, error) {
	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	return loc, nil
}

// Today is the current calendar day in the configured timezone.
func (c *Context) Today() (models.Day, error) {
	loc, err := c.Location()
	if err != nil {
		return models.Day{}, err
	}
	return models.DayOf(c.Now().In(loc)), nil
}

// ParseDate accepts YYYY-MM-DD, "today", "yesterday", or an empty string for today.
func (c *Context) ParseDate(s string) (models.Day, error) {
	today, err := c.Today()
	if err != nil {
		return models.Day{}, err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}
	return models.ParseDay(s)
}

// Theme returns the stored theme, or the default when it cannot be read.
func (c *Context) Theme() theme.Theme {
	t, err := theme.Load(c.Store)
	if err != nil {
		logger.Warn("Failed to load theme, using default", "error", err)
		return theme.Default()
	}
	return t
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors.
// Only the SQLite store is file-backed in a way the backup manager understands.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
