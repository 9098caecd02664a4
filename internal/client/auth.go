package client

import (
	"context"
	"fmt"
	"net/http"

	"homebite/internal/model"
)

// Signup creates an account, persists the returned token and returns the
// new user's profile.
func (c *Client) Signup(ctx context.Context, req model.SignupRequest) (*model.UserDTO, error) {
	var out model.TokenResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/signup", body: req}, &out); err != nil {
		return nil, err
	}
	if err := c.persist(ctx, out.AccessToken); err != nil {
		return nil, err
	}
	c.logger.Info().Str("user_id", out.User.ID.String()).Msg("signed up")
	return &out.User, nil
}

// Login authenticates with email and password, persists the returned token
// and returns the user's profile. A rejected login leaves no token behind.
func (c *Client) Login(ctx context.Context, email, password string) (*model.UserDTO, error) {
	var out model.TokenResponse
	req := model.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: req}, &out); err != nil {
		return nil, err
	}
	if err := c.persist(ctx, out.AccessToken); err != nil {
		return nil, err
	}
	c.logger.Info().Str("user_id", out.User.ID.String()).Msg("logged in")
	return &out.User, nil
}

// Me returns the profile of the token's owner.
func (c *Client) Me(ctx context.Context) (*model.UserDTO, error) {
	var out model.UserDTO
	if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me", authorized: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) persist(ctx context.Context, token string) error {
	if token == "" {
		return newError(CodeDecodingFailed, "response carried no access token", nil)
	}
	if c.session == nil {
		return nil
	}
	if err := c.session.Authenticate(ctx, token); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	return nil
}
