package handler

import (
	"context"
	"net/http"

	"homebite/internal/middleware"
	"homebite/internal/model"
	"homebite/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, req *model.SignupRequest) (*model.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TokenResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TokenResponse), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID uuid.UUID) (*model.UserDTO, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserDTO), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// MockDishService is a mock implementation of DishService.
type MockDishService struct {
	mock.Mock
}

func (m *MockDishService) List(ctx context.Context, filter repository.DishFilter) ([]model.DishDTO, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DishDTO), args.Error(1)
}

func (m *MockDishService) Create(ctx context.Context, cookID uuid.UUID, req *model.DishCreateRequest) (*model.DishDTO, error) {
	args := m.Called(ctx, cookID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DishDTO), args.Error(1)
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, buyerID uuid.UUID, req *model.OrderCreateRequest) (*model.OrderDTO, error) {
	args := m.Called(ctx, buyerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderDTO), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, userID uuid.UUID, as string) ([]model.OrderDTO, error) {
	args := m.Called(ctx, userID, as)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderDTO), args.Error(1)
}

// MockRatingService is a mock implementation of RatingService.
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) Create(ctx context.Context, userID uuid.UUID, req *model.RatingCreateRequest) (*model.RatingDTO, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RatingDTO), args.Error(1)
}

func (m *MockRatingService) ListByDish(ctx context.Context, dishID uuid.UUID) ([]model.RatingDTO, error) {
	args := m.Called(ctx, dishID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RatingDTO), args.Error(1)
}

// MockMetaService is a mock implementation of MetaService.
type MockMetaService struct {
	mock.Mock
}

func (m *MockMetaService) Campuses(ctx context.Context) ([]model.Campus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Campus), args.Error(1)
}

func (m *MockMetaService) Tags(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMetaService) Chat(ctx context.Context, prompt string) (*model.ChatResponse, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChatResponse), args.Error(1)
}

func (m *MockMetaService) HireChef(ctx context.Context, userID uuid.UUID, req *model.HireChefRequest) (*model.HireChefResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HireChefResponse), args.Error(1)
}

// asUser attaches an authenticated account to the request, as BearerAuth would.
func asUser(r *http.Request, id uuid.UUID) *http.Request {
	return r.WithContext(middleware.WithUserID(r.Context(), id))
}
