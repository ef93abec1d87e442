package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/moodcal/internal/cli"
	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/logger"
	"github.com/julianstephens/moodcal/internal/notifier"
)

// sender is the part of the notifier NotifyCmd uses.
type sender interface {
	Notify(ctx context.Context, title, text string) error
}

// NotifyCmd sends the daily reminder when today has no entry. It is meant to
// run from cron, so it is idempotent per day.
type NotifyCmd struct {
	DryRun bool `help:"Print the reminder to stdout instead of sending it."`
	Tray   bool `help:"Try a running moodcal-tray companion before the desktop notification." env:"MOODCAL_NOTIFY_TRAY"`

	sender sender `kong:"-"`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	reminder, err := notifier.CheckReminder(settings, ctx.Now(), ctx.Journal)
	if err != nil {
		return err
	}
	if !reminder.Due {
		if c.DryRun {
			ctx.Printf("No reminder: %s.\n", reminder.Reason)
		}
		return nil
	}

	sent, _, err := ctx.Store.Get(constants.ReminderSentKey)
	if err != nil {
		return fmt.Errorf("failed to read reminder state: %w", err)
	}
	if sent == reminder.Day.Key() {
		if c.DryRun {
			ctx.Println("No reminder: already sent today.")
		}
		return nil
	}

	if c.DryRun {
		ctx.Printf("[DRY RUN] %s: %s\n", reminder.Title(), reminder.Message())
		return nil
	}

	s := c.sender
	if s == nil {
		n := notifier.New()
		n.Tray = c.Tray
		s = n
	}
	if err := s.Notify(context.Background(), reminder.Title(), reminder.Message()); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	logger.Info("Sent mood reminder", "date", reminder.Day.Key())

	if err := ctx.Store.Set(constants.ReminderSentKey, reminder.Day.Key()); err != nil {
		return fmt.Errorf("failed to record reminder: %w", err)
	}
	return nil
}
