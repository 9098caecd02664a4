package viewmodel

import (
	"context"
	"time"

	"homebite/internal/client"
	"homebite/internal/model"
	"homebite/internal/sample"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAPI is a mock implementation of every API interface the
// view-models accept.
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) ListDishes(ctx context.Context, q client.DishQuery) ([]model.DishDTO, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DishDTO), args.Error(1)
}

func (m *MockAPI) CreateDish(ctx context.Context, req model.DishCreateRequest) (*model.DishDTO, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DishDTO), args.Error(1)
}

func (m *MockAPI) Chat(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockAPI) ListOrders(ctx context.Context, as client.OrderScope) ([]model.OrderDTO, error) {
	args := m.Called(ctx, as)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderDTO), args.Error(1)
}

func (m *MockAPI) CreateOrder(ctx context.Context, req model.OrderCreateRequest) (*model.OrderDTO, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderDTO), args.Error(1)
}

func (m *MockAPI) ListRatings(ctx context.Context, dishID uuid.UUID) ([]model.RatingDTO, error) {
	args := m.Called(ctx, dishID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RatingDTO), args.Error(1)
}

func (m *MockAPI) AddRating(ctx context.Context, req model.RatingCreateRequest) (*model.RatingDTO, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RatingDTO), args.Error(1)
}

var testNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

func testCatalog() *sample.Catalog {
	return sample.Default(testNow)
}

func fixedClock() time.Time {
	return testNow
}

var errOffline = &client.Error{Code: client.CodeTransportFailure, Message: "offline"}

func floatPtr(f float64) *float64 {
	return &f
}

func strPtr(s string) *string {
	return &s
}
