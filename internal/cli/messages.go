package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"devchatClient/internal/api"
	"devchatClient/internal/guard"
	"devchatClient/internal/models"
)

func (c *CLI) messagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"message"},
		Short:   "Reply to threads",
	}
	cmd.AddCommand(c.messagesReplyCommand(), c.messagesDeleteCommand())
	return cmd
}

func (c *CLI) messagesReplyCommand() *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "reply <threadId>",
		Short: "Post a reply to a thread",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(guard.Protected, func(cmd *cobra.Command, args []string, sess models.Session) error {
			if !models.CanCreateMessage(sess.Role) {
				return errors.New("Only developers and admins can reply to threads.")
			}
			threadID, err := parseID("thread", args[0])
			if err != nil {
				return err
			}

			text, err := c.prompt("Message", strings.TrimSpace(content))
			if err != nil {
				return err
			}
			if text == "" {
				return errors.New("Please enter a message")
			}

			message, err := c.Services.Message.Reply(cmd.Context(), threadID, text)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.Out, "Reply posted successfully! (#%d)\n", message.ID)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&content, "content", "m", "", "reply text")
	return cmd
}

func (c *CLI) messagesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a message you wrote",
		Args:  cobra.ExactArgs(1),
		RunE: c.guarded(guard.Protected, func(cmd *cobra.Command, args []string, sess models.Session) error {
			id, err := parseID("message", args[0])
			if err != nil {
				return err
			}
			if err := c.Services.Message.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(c.Out, "Message deleted successfully")
			return nil
		}),
	}
}

func (c *CLI) voteCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "vote <messageId> up|down",
		Short:     "Upvote or downvote a message; repeating a vote removes it",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"up", "down"},
		RunE: c.guarded(guard.Protected, func(cmd *cobra.Command, args []string, sess models.Session) error {
			id, err := parseID("message", args[0])
			if err != nil {
				return err
			}

			var voteType models.VoteType
			switch strings.ToLower(args[1]) {
			case "up":
				voteType = models.VoteUpvote
			case "down":
				voteType = models.VoteDownvote
			default:
				return fmt.Errorf("vote must be up or down, got %q", args[1])
			}

			current, err := c.Services.Vote.Counts(cmd.Context(), id)
			if err != nil {
				return err
			}

			next, err := c.Services.Vote.Cast(cmd.Context(), id, current, voteType)
			if err != nil && (errors.Is(err, api.ErrUnauthorized) || c.Cfg.VoteRollback) {
				return err
			}
			printVotes(c.Out, next)
			return nil
		}),
	}
}
