package client

import (
	"context"
	"net/http"
	"net/url"

	"homebite/internal/model"
)

// OrderScope selects which side of an order ListOrders returns.
type OrderScope string

const (
	AsBuyer OrderScope = "buyer"
	AsCook  OrderScope = "cook"
)

// CreateOrder places an order for the authenticated buyer.
func (c *Client) CreateOrder(ctx context.Context, req model.OrderCreateRequest) (*model.OrderDTO, error) {
	var out model.OrderDTO
	if err := c.do(ctx, request{method: http.MethodPost, path: "/orders", body: req, authorized: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListOrders returns the authenticated user's orders as buyer or cook.
func (c *Client) ListOrders(ctx context.Context, as OrderScope) ([]model.OrderDTO, error) {
	if as == "" {
		as = AsBuyer
	}
	query := url.Values{"as": {string(as)}}
	var out []model.OrderDTO
	if err := c.do(ctx, request{method: http.MethodGet, path: "/orders", rawQuery: query.Encode(), authorized: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
