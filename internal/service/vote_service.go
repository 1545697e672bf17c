package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"devchatClient/internal/config"
	"devchatClient/internal/logger"
	"devchatClient/internal/metrics"
	"devchatClient/internal/models"
	"devchatClient/internal/vote"
)

type VoteService interface {
	// Cast applies the click to current locally, then sends it. The returned
	// state is what the widget should show even when err is not nil.
	Cast(ctx context.Context, messageID int64, current vote.State, voteType models.VoteType) (vote.State, error)
	Counts(ctx context.Context, messageID int64) (vote.State, error)
}

type voteService struct {
	gateway  Gateway
	rollback bool
}

func NewVoteService(gateway Gateway, cfg *config.Config) VoteService {
	return &voteService{
		gateway:  gateway,
		rollback: cfg.VoteRollback,
	}
}

func (s *voteService) Cast(ctx context.Context, messageID int64, current vote.State, voteType models.VoteType) (vote.State, error) {
	next, err := vote.Apply(current, voteType)
	if err != nil {
		return current, err
	}

	_, err = s.gateway.Vote(ctx, models.VoteRequest{MessageID: messageID, VoteType: voteType})
	if err == nil {
		return next, nil
	}

	metrics.VoteFailures.Inc()
	logger.Log.Warn("vote failed",
		zap.Int64("message_id", messageID),
		zap.String("vote_type", string(voteType)),
		zap.Bool("rolled_back", s.rollback),
		zap.Error(err),
	)

	if s.rollback {
		return current, fmt.Errorf("vote on message %d: %w", messageID, err)
	}
	return next, fmt.Errorf("vote on message %d: %w", messageID, err)
}

func (s *voteService) Counts(ctx context.Context, messageID int64) (vote.State, error) {
	counts, err := s.gateway.VoteCounts(ctx, messageID)
	if err != nil {
		return vote.State{}, err
	}
	return vote.FromCounts(counts), nil
}
