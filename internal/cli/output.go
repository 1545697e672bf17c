package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"devchatClient/internal/models"
	"devchatClient/internal/session"
	"devchatClient/internal/vote"
)

func ago(ts models.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return humanize.Time(ts.Time)
}

func printSession(w io.Writer, state session.State) {
	name := state.Session.Subject()
	if name == "" {
		name = "(unknown)"
	}
	verified := "verified"
	if !state.Session.Verified {
		verified = "pending verification"
	}
	fmt.Fprintf(w, "%s, %s, %s (profile %s)\n", name, state.Session.Role, verified, state.Namespace)
}

func printThreads(w io.Writer, threads []models.Thread) {
	if len(threads) == 0 {
		fmt.Fprintln(w, "No threads found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tREPLIES\tCREATED")
	for _, t := range threads {
		fmt.Fprintf(tw, "%d\t%s\t%s (%s)\t%d\t%s\n",
			t.ID, t.Title, t.AuthorName, t.AuthorRole, t.MessageCount, ago(t.CreatedAt))
	}
	tw.Flush()
}

func printThread(w io.Writer, thread models.Thread, messages []models.Message) {
	fmt.Fprintf(w, "#%d %s\n", thread.ID, thread.Title)
	fmt.Fprintf(w, "by %s (%s), %s\n\n", thread.AuthorName, thread.AuthorRole, ago(thread.CreatedAt))
	fmt.Fprintln(w, thread.Content)

	fmt.Fprintf(w, "\n%d %s\n", len(messages), pluralize(len(messages), "reply", "replies"))
	for _, m := range messages {
		fmt.Fprintf(w, "\n[%d] %s (%s), %s\n", m.ID, m.AuthorName, m.AuthorRole, ago(m.CreatedAt))
		fmt.Fprintln(w, m.Content)
		printVotes(w, vote.FromMessage(m))
	}
}

func printVotes(w io.Writer, s vote.State) {
	mine := ""
	switch s.UserVote {
	case models.VoteUpvote:
		mine = ", you upvoted"
	case models.VoteDownvote:
		mine = ", you downvoted"
	}
	fmt.Fprintf(w, "score %d (+%d/-%d%s)\n", s.Score(), s.Upvotes, s.Downvotes, mine)
}

func printUsers(w io.Writer, users []models.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tROLE\tVERIFIED\tJOINED")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\t%s\n", u.ID, u.Username, u.Email, u.Role, u.Verified, ago(u.CreatedAt))
	}
	tw.Flush()
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
