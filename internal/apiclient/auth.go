package apiclient

import (
	"context"
	"fmt"

	"github.com/straye-as/sales-intelligence/internal/domain"
)

// Login authenticates and stores the returned token in the session
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return c.authenticate(ctx, "/auth/login", req)
}

// Register creates an account and stores the returned token in the session
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return c.authenticate(ctx, "/auth/register", req)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := c.post(ctx, path, body, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, &DecodeError{URL: c.endpoint(path, nil), Err: fmt.Errorf("response has no access_token")}
	}
	if err := c.session.Set(ctx, resp.AccessToken); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentUser returns the user the held token belongs to
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
