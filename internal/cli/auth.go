package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"devchatClient/internal/api"
	"devchatClient/internal/models"
	"devchatClient/internal/session"
)

// validationError joins the field messages in a stable order.
func validationError(err error) error {
	fields := models.FieldErrors(err)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	messages := make([]string, 0, len(keys))
	for _, k := range keys {
		messages = append(messages, fields[k])
	}
	return errors.New(strings.Join(messages, "; "))
}

func (c *CLI) loginCommand() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to DevChat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			req := models.LoginRequest{}
			if req.Username, err = c.prompt("Username", username); err != nil {
				return err
			}
			if req.Password, err = c.promptSecret("Password"); err != nil {
				return err
			}
			if err := c.validate.Struct(req); err != nil {
				return validationError(err)
			}

			state, err := c.Services.Auth.Login(cmd.Context(), c.namespace(cmd), req)
			if err != nil {
				return errors.New(api.Message(err, "Login failed"))
			}

			fmt.Fprintln(c.Out, "Welcome back to DevChat!")
			printSession(c.Out, state)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account name")
	return cmd
}

func (c *CLI) registerCommand() *cobra.Command {
	var username, email, role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			req := models.RegisterRequest{Role: models.Role(strings.ToUpper(role))}
			if req.Username, err = c.prompt("Username", username); err != nil {
				return err
			}
			if req.Email, err = c.prompt("Email", email); err != nil {
				return err
			}
			if req.Password, err = c.promptSecret("Password"); err != nil {
				return err
			}
			if err := c.validate.Struct(req); err != nil {
				return validationError(err)
			}

			state, err := c.Services.Auth.Register(cmd.Context(), c.namespace(cmd), req)
			if err != nil {
				return errors.New(api.Message(err, "Registration failed"))
			}

			fmt.Fprintln(c.Out, "Registration successful! Welcome to DevChat!")
			if !state.Session.Verified {
				fmt.Fprintln(c.Out, "Your account is pending admin verification.")
			}
			printSession(c.Out, state)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&role, "role", "r", string(models.RoleUser), "USER or DEV")
	return cmd
}

func (c *CLI) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session of this profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.Services.Auth.Logout(cmd.Context(), c.namespace(cmd)); err != nil {
				return err
			}
			fmt.Fprintln(c.Out, "You have been signed out.")
			return nil
		},
	}
}

func (c *CLI) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state := session.FromContext(cmd.Context())
			if !state.Hydrated {
				return errors.New("session storage is unavailable, try again shortly")
			}
			if !state.Session.IsAuthenticated() {
				fmt.Fprintf(c.Out, "Not logged in (profile %s)\n", state.Namespace)
				return nil
			}
			printSession(c.Out, state)
			return nil
		},
	}
}
