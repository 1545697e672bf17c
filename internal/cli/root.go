// Package cli is the terminal client for DevChat. It runs on the same
// services and session store as the web client; the storage namespace is the
// profile name.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"devchatClient/internal/api"
	"devchatClient/internal/config"
	"devchatClient/internal/guard"
	"devchatClient/internal/logger"
	"devchatClient/internal/models"
	"devchatClient/internal/service"
	"devchatClient/internal/session"
)

var ErrSessionExpired = errors.New("session expired, please log in")

type CLI struct {
	Services *service.Service
	Store    *session.Store
	Cfg      *config.Config

	In  io.Reader
	Out io.Writer

	validate *validator.Validate
	reader   *bufio.Reader
	profile  string
}

func New(services *service.Service, store *session.Store, cfg *config.Config, in io.Reader, out io.Writer) *CLI {
	return &CLI{
		Services: services,
		Store:    store,
		Cfg:      cfg,
		In:       in,
		Out:      out,
		validate: models.NewValidator(),
	}
}

// NewRootCommand builds the devchat command tree.
func (c *CLI) NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "devchat",
		Short:         "Terminal client for the DevChat forum",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.hydrate(cmd)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetIn(c.In)
	root.SetOut(c.Out)
	root.SetErr(c.Out)

	root.PersistentFlags().StringVarP(&c.profile, "profile", "p", c.Cfg.CLIProfile, "session profile to use")

	root.AddCommand(
		c.loginCommand(),
		c.registerCommand(),
		c.logoutCommand(),
		c.whoamiCommand(),
		c.threadsCommand(),
		c.messagesCommand(),
		c.voteCommand(),
		c.adminCommand(),
	)
	return root
}

// hydrate reads the profile's session and attaches it to the command context.
// A storage failure leaves the state unhydrated; guarded commands then refuse
// to run.
func (c *CLI) hydrate(cmd *cobra.Command) error {
	ctx := cmd.Context()
	state, err := c.Store.Hydrate(ctx, c.profile)
	if err != nil {
		logger.Log.Warn("session hydration failed", zap.String("profile", c.profile), zap.Error(err))
	}
	cmd.SetContext(session.NewContext(ctx, state))
	return nil
}

type runFunc func(cmd *cobra.Command, args []string, sess models.Session) error

// guarded runs fn only when the profile's session satisfies req, the same
// predicates the web views use.
func (c *CLI) guarded(req guard.Requirement, fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		state := session.FromContext(cmd.Context())

		switch guard.Evaluate(state.Hydrated, state.Session, req).State {
		case guard.Loading:
			return errors.New("session storage is unavailable, try again shortly")
		case guard.Anonymous:
			return errors.New("not logged in, run `devchat login` first")
		case guard.Unprivileged:
			return fmt.Errorf("your role %s cannot run this command", state.Session.Role)
		}

		return c.explain(fn(cmd, args, state.Session))
	}
}

// explain turns API failures into the messages shown to the user.
func (c *CLI) explain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, api.ErrUnauthorized):
		return ErrSessionExpired
	default:
		var apiErr *api.Error
		if errors.As(err, &apiErr) || errors.Is(err, api.ErrNetwork) {
			return errors.New(api.Message(err, "request failed"))
		}
		return err
	}
}

func (c *CLI) namespace(cmd *cobra.Command) string {
	return session.FromContext(cmd.Context()).Namespace
}
