package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"homebite/internal/model"

	"github.com/google/uuid"
)

// DishQuery filters ListDishes. Zero fields are omitted.
type DishQuery struct {
	CampusID *uuid.UUID
	Query    string
	Tags     []string
}

// Encode renders the query string. Tags are comma-joined with the commas
// left literal, so tags=vegan,spicy reaches the server as written.
func (q DishQuery) Encode() string {
	var parts []string
	if q.CampusID != nil {
		parts = append(parts, "campus_id="+url.QueryEscape(q.CampusID.String()))
	}
	if q.Query != "" {
		parts = append(parts, "q="+url.QueryEscape(q.Query))
	}
	if len(q.Tags) > 0 {
		tags := make([]string, 0, len(q.Tags))
		for _, t := range q.Tags {
			if t == "" {
				continue
			}
			tags = append(tags, url.QueryEscape(t))
		}
		if len(tags) > 0 {
			parts = append(parts, "tags="+strings.Join(tags, ","))
		}
	}
	return strings.Join(parts, "&")
}

// ListDishes returns the dishes matching q.
func (c *Client) ListDishes(ctx context.Context, q DishQuery) ([]model.DishDTO, error) {
	var out []model.DishDTO
	if err := c.do(ctx, request{method: http.MethodGet, path: "/dishes", rawQuery: q.Encode()}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDish publishes a dish owned by the authenticated cook.
func (c *Client) CreateDish(ctx context.Context, req model.DishCreateRequest) (*model.DishDTO, error) {
	var out model.DishDTO
	if err := c.do(ctx, request{method: http.MethodPost, path: "/dishes", body: req, authorized: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
