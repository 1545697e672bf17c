package api

import (
	"context"
	"fmt"
	"net/http"

	"devchatClient/internal/models"
)

func (c *Client) Vote(ctx context.Context, req models.VoteRequest) (models.VoteResult, error) {
	var result models.VoteResult
	err := c.do(ctx, http.MethodPost, "/votes", req, &result)
	return result, err
}

func (c *Client) VoteCounts(ctx context.Context, messageID int64) (models.VoteCounts, error) {
	var counts models.VoteCounts
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/votes/%d/counts", messageID), nil, &counts)
	return counts, err
}
