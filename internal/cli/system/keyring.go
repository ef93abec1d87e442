package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/moodcal/internal/cli"
	"github.com/julianstephens/moodcal/internal/keyring"
	"github.com/julianstephens/moodcal/internal/storage/postgres"
)

// KeyringSetCmd saves the journal's PostgreSQL connection string in the OS keyring.
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string (URL or key=value DSN)."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// The keyring is encrypted, so a password is tolerated here but not on --config.
		ctx.Println("⚠️  The connection string includes a password. It is kept as-is in the OS keyring.")
	}

	if err := keyring.Save(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string: %w", err)
	}

	ctx.Printf("✓ Saved %s to the OS keyring\n", postgres.Redact(cmd.ConnectionString))
	ctx.Println("  It replaces any PostgreSQL --config value unless MOODCAL_DB_CONNECTION is set.")
	return nil
}

type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.Get()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string in the OS keyring; use 'moodcal keyring set' to store one")
	}
	if err != nil {
		return err
	}
	ctx.Println(postgres.Redact(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.Delete(); err != nil {
		return err
	}
	ctx.Println("✓ Connection string deleted from the OS keyring")
	return nil
}

// KeyringStatusCmd shows the keyring state and which journal store this run resolves to.
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	available := keyring.Available()
	if available {
		ctx.Println("OS keyring:   available")
		stored, err := keyring.Get()
		switch {
		case err == nil:
			ctx.Printf("Stored:       %s\n", postgres.Redact(stored))
		case errors.Is(err, keyring.ErrNotFound):
			ctx.Println("Stored:       none")
		default:
			ctx.Printf("Stored:       unreadable (%v)\n", err)
		}
	} else {
		ctx.Println("OS keyring:   not available on this system")
	}

	res, ok := cli.ResolvePostgres(ctx.Config)
	if ok {
		ctx.Printf("Journal:      PostgreSQL from %s (%s)\n", res.Source.Describe(), postgres.Redact(res.ConnStr))
	} else {
		ctx.Printf("Journal:      %s (not PostgreSQL, keyring unused)\n", ctx.Config)
	}

	if !available {
		return keyring.ErrUnavailable
	}
	return nil
}
