// Package cli wires the mebawear binary: the HTTP server plus the small
// administrative commands (seeding, invite creation, admin bootstrap)
// that used to be one-off scripts.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/felipemebarak500-lgtm/mebawear/internal/config"
	"github.com/felipemebarak500-lgtm/mebawear/internal/store"
)

// NewRootCommand creates the root command for the mebawear CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mebawear",
		Short:         "MebaWear storefront server and admin tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewSeedCommand())
	cmd.AddCommand(NewInviteCommand())
	cmd.AddCommand(NewAdminCommand())

	return cmd
}

// openStore loads the environment and opens the configured database.
// Shared by every subcommand.
func openStore() (config.Config, *store.Store, error) {
	config.LoadDotenv()
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, st, nil
}
