package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felipemebarak500-lgtm/mebawear/internal/store"
)

// NewSeedCommand creates the seed command: launch catalog plus the first
// invitation code, skipping tables that already hold rows.
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the launch catalog and first invite code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Seed(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "seed applied")
			return nil
		},
	}
}

// NewInviteCommand creates invite management commands.
func NewInviteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Manage invitation codes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <code>",
		Short: "Create a new single-use invitation code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			inv, err := st.CreateInvite(cmd.Context(), args[0])
			if errors.Is(err, store.ErrInviteExists) {
				return fmt.Errorf("invite code %q already exists", args[0])
			} else if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "invite created: %s\n", inv.Code)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <code>",
		Short: "Show an invitation code and its redemption state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			inv, err := st.GetInvite(cmd.Context(), args[0])
			if errors.Is(err, store.ErrInviteNotFound) {
				return fmt.Errorf("no invite code %q", args[0])
			} else if err != nil {
				return err
			}
			if inv.Used {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: used by %s at %s\n",
					inv.Code, *inv.UsedBy, inv.UsedAt.Format("2006-01-02 15:04:05"))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: unused\n", inv.Code)
			}
			return nil
		},
	})

	return cmd
}

// NewAdminCommand creates the admin bootstrap command. Replaces the old
// create-admin script; bypasses invite gating but still hashes the
// password like every other account.
func NewAdminCommand() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}

	create := &cobra.Command{
		Use:   "create <username>",
		Short: "Create an account without an invite code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			u, err := st.CreateAdmin(cmd.Context(), args[0], password)
			if errors.Is(err, store.ErrUsernameTaken) {
				return fmt.Errorf("username %q already exists", args[0])
			} else if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user created: %s (%s)\n", u.Username, u.ID)
			return nil
		},
	}
	create.Flags().StringVar(&password, "password", "", "password for the new account (required)")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}
