package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newOwnerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owner",
		Short: "Inspect or mint owner identities",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "new",
			Short: "Print a fresh owner id",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), uuid.NewString())
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the owner commands act as",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if app.Owner == "" {
					return fmt.Errorf("no owner configured; pass --owner or set ITEMTRACKER_OWNER")
				}
				fmt.Fprintln(cmd.OutOrStdout(), app.Owner)
				return nil
			},
		},
	)

	return cmd
}
