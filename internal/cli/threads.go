package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"devchatClient/internal/guard"
	"devchatClient/internal/models"
)

func parseID(kind, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, raw)
	}
	return id, nil
}

func (c *CLI) threadsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "threads",
		Aliases: []string{"thread"},
		Short:   "Browse and manage discussions",
	}
	cmd.AddCommand(
		c.threadsListCommand(),
		c.threadsShowCommand(),
		c.threadsCreateCommand(),
		c.threadsDeleteCommand(),
	)
	return cmd
}

func (c *CLI) threadsListCommand() *cobra.Command {
	var keyword string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List threads, optionally filtered by keyword",
		Args:  cobra.NoArgs,
		RunE: c.guarded(guard.Protected, func(cmd *cobra.Command, args []string, sess models.Session) error {
			threads, err := c.Services.Thread.List(cmd.Context(), keyword)
			if err != nil {
				return err
			}
			printThreads(c.Out, threads)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&keyword, "search", "s", "", "search keyword")
	return cmd
}

func (c *CLI) threadsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a thread with its replies",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(guard.Protected, func(cmd *cobra.Command, args []string, sess models.Session) error {
			id, err := parseID("thread", args[0])
			if err != nil {
				return err
			}

			detail, err := c.Services.Thread.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			printThread(c.Out, detail.Thread, detail.Messages)
			return nil
		}),
	}
}

func (c *CLI) threadsCreateCommand() *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Post a new help request",
		Args:  cobra.NoArgs,
		RunE: c.guarded(guard.User, func(cmd *cobra.Command, args []string, sess models.Session) error {
			var err error
			req := models.ThreadRequest{}
			if req.Title, err = c.prompt("Title", strings.TrimSpace(title)); err != nil {
				return err
			}
			if req.Content, err = c.prompt("Content", strings.TrimSpace(content)); err != nil {
				return err
			}
			if req.Title == "" || req.Content == "" {
				return errors.New("Title and content are required")
			}
			if err := c.validate.Struct(req); err != nil {
				return validationError(err)
			}

			thread, err := c.Services.Thread.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.Out, "Thread created successfully! (#%d)\n", thread.ID)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "thread title")
	cmd.Flags().StringVarP(&content, "content", "m", "", "thread body")
	return cmd
}

func (c *CLI) threadsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a thread you own",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(guard.Protected, func(cmd *cobra.Command, args []string, sess models.Session) error {
			id, err := parseID("thread", args[0])
			if err != nil {
				return err
			}
			if err := c.Services.Thread.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(c.Out, "Thread deleted successfully")
			return nil
		}),
	}
}
