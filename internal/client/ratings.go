package client

import (
	"context"
	"net/http"
	"net/url"

	"homebite/internal/model"

	"github.com/google/uuid"
)

// AddRating submits the authenticated user's rating of a dish.
func (c *Client) AddRating(ctx context.Context, req model.RatingCreateRequest) (*model.RatingDTO, error) {
	var out model.RatingDTO
	if err := c.do(ctx, request{method: http.MethodPost, path: "/ratings", body: req, authorized: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRatings returns the ratings of a dish, newest first.
func (c *Client) ListRatings(ctx context.Context, dishID uuid.UUID) ([]model.RatingDTO, error) {
	query := url.Values{"dish_id": {dishID.String()}}
	var out []model.RatingDTO
	if err := c.do(ctx, request{method: http.MethodGet, path: "/ratings", rawQuery: query.Encode()}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
