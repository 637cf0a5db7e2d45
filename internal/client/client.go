// Package client is a typed HTTP client for the rollcall API, used by the
// CLI subcommands.
package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	fastshot "github.com/opus-domini/fast-shot"

	"github.com/mergington/rollcall/internal/store"
)

// APIError is a structured error response from the server.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
}

type Client struct {
	http fastshot.ClientHttpMethods
}

// New creates a client for the server at baseURL, e.g. "http://127.0.0.1:4140".
func New(baseURL string) *Client {
	return &Client{
		http: fastshot.NewClient(baseURL).
			Config().SetTimeout(15 * time.Second).
			Build(),
	}
}

// Activities fetches the full activity registry.
func (c *Client) Activities(ctx context.Context) (map[string]store.Activity, error) {
	resp, err := c.http.GET("/activities").
		Context().Set(ctx).
		Send()
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	if resp.Status().Code() != http.StatusOK {
		return nil, apiError(resp)
	}
	var out map[string]store.Activity
	if err := resp.Body().AsJSON(&out); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	return out, nil
}

// Signup registers email for the activity and returns the server's
// confirmation message.
func (c *Client) Signup(ctx context.Context, activity, email string) (string, error) {
	return c.rosterPost(ctx, activity, "signup", email)
}

// Unregister removes email from the activity's roster and returns the
// server's confirmation message.
func (c *Client) Unregister(ctx context.Context, activity, email string) (string, error) {
	return c.rosterPost(ctx, activity, "unregister", email)
}

func (c *Client) rosterPost(ctx context.Context, activity, action, email string) (string, error) {
	path := "/activities/" + url.PathEscape(activity) + "/" + action
	resp, err := c.http.POST(path).
		Context().Set(ctx).
		Query().AddParam("email", email).
		Send()
	if err != nil {
		return "", fmt.Errorf("%s: %w", action, err)
	}
	if resp.Status().Code() != http.StatusOK {
		return "", apiError(resp)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := resp.Body().AsJSON(&body); err != nil {
		return "", fmt.Errorf("decode %s response: %w", action, err)
	}
	return body.Message, nil
}

func apiError(resp *fastshot.Response) error {
	var body struct {
		Detail string `json:"detail"`
	}
	_ = resp.Body().AsJSON(&body)
	detail := body.Detail
	if detail == "" {
		detail = http.StatusText(resp.Status().Code())
	}
	return &APIError{StatusCode: resp.Status().Code(), Detail: detail}
}
