package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"devchatClient/internal/models"
)

func (c *Client) ListThreads(ctx context.Context) ([]models.Thread, error) {
	var threads []models.Thread
	err := c.do(ctx, http.MethodGet, "/threads", nil, &threads)
	return threads, err
}

func (c *Client) GetThread(ctx context.Context, id int64) (*models.Thread, error) {
	var thread models.Thread
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/threads/%d", id), nil, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

func (c *Client) SearchThreads(ctx context.Context, keyword string) ([]models.Thread, error) {
	var threads []models.Thread
	err := c.do(ctx, http.MethodGet, "/threads/search?keyword="+url.QueryEscape(keyword), nil, &threads)
	return threads, err
}

func (c *Client) CreateThread(ctx context.Context, req models.ThreadRequest) (*models.Thread, error) {
	var thread models.Thread
	if err := c.do(ctx, http.MethodPost, "/threads", req, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

func (c *Client) UpdateThread(ctx context.Context, id int64, req models.ThreadRequest) (*models.Thread, error) {
	var thread models.Thread
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/threads/%d", id), req, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

func (c *Client) DeleteThread(ctx context.Context, id int64) error {
	var ack string
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/threads/%d", id), nil, &ack)
}
