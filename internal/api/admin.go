package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"devchatClient/internal/models"
)

func (c *Client) PendingUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, http.MethodGet, "/admin/pending-users", nil, &users)
	return users, err
}

func (c *Client) VerifyUser(ctx context.Context, userID int64) error {
	var ack string
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/admin/verify/%d", userID), nil, &ack)
}

// AllUsers is the SUPERADMIN listing.
func (c *Client) AllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, http.MethodGet, "/admin/users", nil, &users)
	return users, err
}

// ListUsers is the older listing other admins fall back to.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, http.MethodGet, "/users", nil, &users)
	return users, err
}

func (c *Client) GetUser(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
