package settings

import (
	"fmt"

	"github.com/julianstephens/moodcal/internal/cli"
	"github.com/julianstephens/moodcal/internal/storage"
	"github.com/julianstephens/moodcal/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone        *string `help:"IANA timezone used to decide what 'today' is, or 'Local'."`
	ReminderEnabled *bool   `help:"Enable or disable the daily reminder."`
	ReminderTime    *string `help:"Time (HH:MM) after which the reminder fires."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Timezone:              %s\n", settings.Timezone)
		ctx.Println("\nReminder Settings:")
		ctx.Printf("  Reminder Enabled:      %v\n", settings.ReminderEnabled)
		ctx.Printf("  Reminder Time:         %s\n", settings.ReminderTime)
		ctx.Printf("\nTheme:                   %s\n", ctx.Theme().Name)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.ReminderEnabled != nil {
		settings.ReminderEnabled = *c.ReminderEnabled
		updated = true
	}
	if c.ReminderTime != nil {
		settings.ReminderTime = *c.ReminderTime
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	result := validation.New().ValidateSettings(settings)
	if result.HasErrors() {
		return fmt.Errorf("invalid settings: %s", result.Conflicts[0].Description)
	}
	if err := storage.SaveSettings(ctx.Store, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}
