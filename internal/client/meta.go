package client

import (
	"context"
	"net/http"

	"homebite/internal/model"
)

// ListCampuses returns the known campuses.
func (c *Client) ListCampuses(ctx context.Context) ([]model.Campus, error) {
	var out []model.Campus
	if err := c.do(ctx, request{method: http.MethodGet, path: "/meta/campuses"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTags returns the suggested dish tags.
func (c *Client) ListTags(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, request{method: http.MethodGet, path: "/meta/tags"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Chat sends a prompt to the assistant endpoint and returns its reply.
func (c *Client) Chat(ctx context.Context, prompt string) (string, error) {
	var out model.ChatResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/ai/chat", body: model.ChatRequest{Prompt: prompt}}, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}

// RequestChef posts a hire-a-chef request built from the buyer's pantry.
func (c *Client) RequestChef(ctx context.Context, req model.HireChefRequest) (bool, error) {
	var out model.HireChefResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/hire-chef", body: req, authorized: true}, &out); err != nil {
		return false, err
	}
	return out.OK, nil
}
