// Package api is the gateway to the DevChat REST API. Every call picks the
// bearer token from the session carried by its context, and a 401 answer
// clears that session.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"devchatClient/internal/logger"
	"devchatClient/internal/metrics"
	"devchatClient/internal/session"
)

// maxBodySize bounds how much of a response is read.
const maxBodySize = 4 << 20

// UnauthorizedFunc is called with the namespace whose token was rejected.
type UnauthorizedFunc func(ctx context.Context, namespace string)

type Client struct {
	baseURL        string
	httpClient     *http.Client
	onUnauthorized UnauthorizedFunc
}

func NewClient(baseURL string, timeout time.Duration, onUnauthorized UnauthorizedFunc) *Client {
	return &Client{
		baseURL:        baseURL,
		httpClient:     &http.Client{Timeout: timeout},
		onUnauthorized: onUnauthorized,
	}
}

// WithHTTPClient replaces the transport, used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	state := session.FromContext(ctx)
	if state.Session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+state.Session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveAPI(method, 0)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrNetwork, ctxErr)
		}
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()
	metrics.ObserveAPI(method, resp.StatusCode)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		logger.Log.Info("api rejected session token",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("namespace", state.Namespace),
		)
		if c.onUnauthorized != nil && state.Namespace != "" {
			c.onUnauthorized(ctx, state.Namespace)
		}
		return newError(resp.StatusCode, raw)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return newError(resp.StatusCode, raw)
	}

	return decode(raw, out)
}

// decode fills out from a 2xx body. Some endpoints answer with plain text;
// a *string target accepts that as-is.
func decode(raw []byte, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	err := json.Unmarshal(raw, out)
	if err == nil {
		return nil
	}

	if s, ok := out.(*string); ok {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			*s = string(raw)
			return nil
		}
	}
	return fmt.Errorf("decode response: %w", err)
}
