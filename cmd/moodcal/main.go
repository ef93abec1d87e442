package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"

	"github.com/julianstephens/moodcal/internal/cli"
	"github.com/julianstephens/moodcal/internal/cli/backups"
	"github.com/julianstephens/moodcal/internal/cli/entries"
	"github.com/julianstephens/moodcal/internal/cli/reports"
	"github.com/julianstephens/moodcal/internal/cli/settings"
	"github.com/julianstephens/moodcal/internal/cli/system"
	"github.com/julianstephens/moodcal/internal/constants"
	apperrors "github.com/julianstephens/moodcal/internal/errors"
	"github.com/julianstephens/moodcal/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite path, json://FILE, diskv://DIR, memory://, or a PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use MOODCAL_DB_CONNECTION, .pgpass, or the OS keyring instead." type:"string" default:"${default_config}"`
	Debug   bool   `help:"Log at debug level and mirror the log to stderr."`

	Init     system.InitCmd       `cmd:"" help:"Initialize moodcal storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Log      entries.LogCmd       `cmd:"" help:"Record today's mood."`
	Show     entries.ShowCmd      `cmd:"" help:"Show the entry for a day."`
	Export   entries.ExportCmd    `cmd:"" help:"Print the stored journal document."`
	Vent     entries.VentCmd      `cmd:"" help:"Blow a bad thought away. Nothing is saved."`
	Calendar reports.CalendarCmd  `cmd:"" help:"Show a month calendar."`
	Trend    reports.TrendCmd     `cmd:"" help:"Show the last seven days."`
	Stats    reports.StatsCmd     `cmd:"" help:"Show the mood distribution for a month."`
	Insights reports.InsightsCmd  `cmd:"" help:"Summarise recent entries."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Theme    struct {
		List settings.ThemeListCmd `cmd:"" help:"List themes." default:"1"`
		Set  settings.ThemeSetCmd  `cmd:"" help:"Choose a theme."`
	} `cmd:"" help:"Manage the colour theme."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show where the connection string comes from." default:"1"`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
	DebugCmd system.DebugCmd  `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Notify   system.NotifyCmd `cmd:"" hidden:"" help:"Send the daily reminder (used by cron)."`
}

// selfLoading commands open the store themselves, possibly before it exists
// or while its schema is out of date.
var selfLoading = map[string]bool{
	"init":    true,
	"migrate": true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A terminal mood journal: one mood a day, a calendar, and a place to vent"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	logCfg := logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir(CLI.Config),
		Level:     os.Getenv(constants.EnvLogLevel),
	}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	store, err := cli.OpenStore(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	appCtx := cli.NewContext(store)
	appCtx.Config = CLI.Config

	if sel := ctx.Selected(); sel != nil && !selfLoading[rootCommand(sel)] {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}

// rootCommand returns the top-level command name for node.
func rootCommand(node *kong.Node) string {
	for node.Parent != nil && node.Parent.Type == kong.CommandNode {
		node = node.Parent
	}
	return node.Name
}

// configDir is where the log file lives: next to a file-backed store, or in
// the default config directory for server and in-memory stores.
func configDir(config string) string {
	base := constants.DefaultConfigPath
	switch {
	case strings.HasPrefix(config, cli.SchemeJSON):
		base = strings.TrimPrefix(config, cli.SchemeJSON)
	case strings.Contains(config, "://"):
	case config != "":
		base = config
	}
	expanded, err := homedir.Expand(base)
	if err != nil {
		expanded = base
	}
	return filepath.Dir(expanded)
}
