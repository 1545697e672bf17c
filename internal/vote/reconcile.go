// Package vote computes the local effect of a vote click on a message.
package vote

import (
	"fmt"

	"devchatClient/internal/models"
)

// State is the local copy of a message's vote counters and the viewer's own
// vote. The score is never stored; see Score.
type State struct {
	Upvotes   int             `json:"upvotes"`
	Downvotes int             `json:"downvotes"`
	UserVote  models.VoteType `json:"userVote"`
}

func FromMessage(m models.Message) State {
	return State{Upvotes: m.Upvotes, Downvotes: m.Downvotes, UserVote: m.UserVote}
}

func FromCounts(c models.VoteCounts) State {
	return State{Upvotes: c.Upvotes, Downvotes: c.Downvotes, UserVote: c.UserVote}
}

func (s State) Score() int {
	return s.Upvotes - s.Downvotes
}

// Apply returns the state after the viewer clicks voteType:
//   - same as the current vote: retract it
//   - opposite of the current vote: flip it
//   - no current vote: add it
//
// Counters are never driven below zero, which can only happen when the local
// copy is already out of step with the server.
func Apply(s State, voteType models.VoteType) (State, error) {
	if voteType != models.VoteUpvote && voteType != models.VoteDownvote {
		return s, fmt.Errorf("unsupported vote type %q", voteType)
	}

	next := s
	switch s.UserVote {
	case voteType:
		next.adjust(voteType, -1)
		next.UserVote = models.VoteNone
	case voteType.Opposite():
		next.adjust(s.UserVote, -1)
		next.adjust(voteType, +1)
		next.UserVote = voteType
	default:
		next.adjust(voteType, +1)
		next.UserVote = voteType
	}
	return next, nil
}

func (s *State) adjust(voteType models.VoteType, delta int) {
	switch voteType {
	case models.VoteUpvote:
		s.Upvotes = max(s.Upvotes+delta, 0)
	case models.VoteDownvote:
		s.Downvotes = max(s.Downvotes+delta, 0)
	}
}
