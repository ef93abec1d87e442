package system

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/moodcal/internal/cli"
	"github.com/julianstephens/moodcal/internal/constants"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpEntry    *DebugDumpEntryCmd    `cmd:"" help:"Dump a mood entry as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings data as JSON."`
	Keys         *DebugKeysCmd         `cmd:"" help:"List every stored key."`
}

func printJSON(ctx *cli.Context, v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpEntryCmd struct {
	Date string `arg:"" help:"Date of the entry to dump (YYYY-MM-DD, 'today' or 'yesterday')."`
}

type entryDump struct {
	Date      string `json:"date"`
	Mood      string `json:"mood"`
	Label     string `json:"label"`
	Note      string `json:"note"`
	CreatedAt string `json:"createdAt"`
}

func (cmd *DebugDumpEntryCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	day, err := ctx.ParseDate(cmd.Date)
	if err != nil {
		return err
	}

	entry, ok, err := ctx.Journal.Get(day)
	if err != nil {
		return fmt.Errorf("failed to get entry: %w", err)
	}
	if !ok {
		return fmt.Errorf("no entry found for date: %s", day.Key())
	}

	return printJSON(ctx, entryDump{
		Date:      entry.Date.Key(),
		Mood:      entry.Mood.String(),
		Label:     entry.Label,
		Note:      entry.Note,
		CreatedAt: entry.CreatedAt.UTC().Format(constants.TimestampFormat),
	})
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	return printJSON(ctx, settings)
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	keys, err := ctx.Store.Keys()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	ctx.Println(strings.Join(keys, "\n"))
	return nil
}
