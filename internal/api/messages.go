package api

import (
	"context"
	"fmt"
	"net/http"

	"devchatClient/internal/models"
)

func (c *Client) ListMessages(ctx context.Context, threadID int64) ([]models.Message, error) {
	var messages []models.Message
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/messages/thread/%d", threadID), nil, &messages)
	return messages, err
}

func (c *Client) CreateMessage(ctx context.Context, req models.MessageRequest) (*models.Message, error) {
	var message models.Message
	if err := c.do(ctx, http.MethodPost, "/messages", req, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (c *Client) UpdateMessage(ctx context.Context, id int64, req models.MessageRequest) (*models.Message, error) {
	var message models.Message
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/messages/%d", id), req, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (c *Client) DeleteMessage(ctx context.Context, id int64) error {
	var ack string
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/messages/%d", id), nil, &ack)
}
