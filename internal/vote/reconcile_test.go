package vote

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devchatClient/internal/models"
)

func TestApply(t *testing.T) {
	cases := []struct {
		name   string
		start  State
		click  models.VoteType
		expect State
	}{
		{
			name:   "retract upvote",
			start:  State{Upvotes: 3, UserVote: models.VoteUpvote},
			click:  models.VoteUpvote,
			expect: State{Upvotes: 2},
		},
		{
			name:   "flip up to down",
			start:  State{Upvotes: 2, Downvotes: 0, UserVote: models.VoteUpvote},
			click:  models.VoteDownvote,
			expect: State{Upvotes: 1, Downvotes: 1, UserVote: models.VoteDownvote},
		},
		{
			name:   "flip down to up",
			start:  State{Upvotes: 0, Downvotes: 5, UserVote: models.VoteDownvote},
			click:  models.VoteUpvote,
			expect: State{Upvotes: 1, Downvotes: 4, UserVote: models.VoteUpvote},
		},
		{
			name:   "add downvote",
			start:  State{Upvotes: 1},
			click:  models.VoteDownvote,
			expect: State{Upvotes: 1, Downvotes: 1, UserVote: models.VoteDownvote},
		},
		{
			name:   "retract on stale zero counter stays at zero",
			start:  State{UserVote: models.VoteDownvote},
			click:  models.VoteDownvote,
			expect: State{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Apply(tc.start, tc.click)
			require.NoError(t, err)
			assert.Equal(t, tc.expect, got)
		})
	}
}

func TestApply_RejectsUnknownType(t *testing.T) {
	start := State{Upvotes: 1, UserVote: models.VoteUpvote}

	got, err := Apply(start, models.VoteNone)

	assert.Error(t, err)
	assert.Equal(t, start, got)
}

func TestApply_ScoreInvariantOverClickSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	clicks := []models.VoteType{models.VoteUpvote, models.VoteDownvote}

	for run := 0; run < 200; run++ {
		s := State{Upvotes: rng.Intn(5), Downvotes: rng.Intn(5)}
		for step := 0; step < 30; step++ {
			prev := s
			next, err := Apply(s, clicks[rng.Intn(len(clicks))])
			require.NoError(t, err)

			assert.Equal(t, next.Upvotes-next.Downvotes, next.Score())
			assert.GreaterOrEqual(t, next.Upvotes, 0)
			assert.GreaterOrEqual(t, next.Downvotes, 0)

			// one click moves the score by at most two
			delta := next.Score() - prev.Score()
			assert.LessOrEqual(t, delta, 2)
			assert.GreaterOrEqual(t, delta, -2)
			s = next
		}
	}
}

func TestApply_DoubleClickRestoresState(t *testing.T) {
	start := State{Upvotes: 4, Downvotes: 2}

	once, err := Apply(start, models.VoteUpvote)
	require.NoError(t, err)
	twice, err := Apply(once, models.VoteUpvote)
	require.NoError(t, err)

	assert.Equal(t, start, twice)
}

func TestFromMessage(t *testing.T) {
	s := FromMessage(models.Message{Upvotes: 5, Downvotes: 2, UserVote: models.VoteDownvote})
	assert.Equal(t, 3, s.Score())
	assert.Equal(t, models.VoteDownvote, s.UserVote)
}
