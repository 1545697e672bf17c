package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"devchatClient/internal/guard"
	"devchatClient/internal/models"
)

func (c *CLI) adminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "User administration (ADMIN and SUPERADMIN)",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "pending",
			Short: "List accounts waiting for verification",
			Args:  cobra.NoArgs,
			RunE: c.guarded(guard.Admin, func(cmd *cobra.Command, args []string, sess models.Session) error {
				users, err := c.Services.Admin.Pending(cmd.Context())
				if err != nil {
					return err
				}
				printUsers(c.Out, users)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "users",
			Short: "List all accounts",
			Args:  cobra.NoArgs,
			RunE: c.guarded(guard.Admin, func(cmd *cobra.Command, args []string, sess models.Session) error {
				users, err := c.Services.Admin.Users(cmd.Context(), sess.Role)
				if err != nil {
					return err
				}
				printUsers(c.Out, users)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "verify <userId>",
			Short: "Verify a pending account",
			Args:  cobra.ExactArgs(1),
			RunE: c.guarded(guard.Admin, func(cmd *cobra.Command, args []string, sess models.Session) error {
				id, err := parseID("user", args[0])
				if err != nil {
					return err
				}
				if err := c.Services.Admin.Verify(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintln(c.Out, "User verified successfully!")
				return nil
			}),
		},
	)
	return cmd
}
