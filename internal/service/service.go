package service

import (
	"context"

	"homebite/internal/model"
	"homebite/internal/repository"

	"github.com/google/uuid"
)

// Order listing perspectives.
const (
	AsBuyer = "buyer"
	AsCook  = "cook"
)

// AuthService defines account and token operations.
type AuthService interface {
	// Signup registers an account and issues its first access token.
	Signup(ctx context.Context, req *model.SignupRequest) (*model.TokenResponse, error)

	// Login verifies credentials and issues an access token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error)

	// Me returns the account identified by userID.
	Me(ctx context.Context, userID uuid.UUID) (*model.UserDTO, error)

	// Authenticate resolves a bearer token to the ID of an existing account.
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

// DishService defines operations for dish listings.
type DishService interface {
	// List retrieves dishes matching filter with their average rating.
	List(ctx context.Context, filter repository.DishFilter) ([]model.DishDTO, error)

	// Create publishes a new dish cooked by cookID.
	Create(ctx context.Context, cookID uuid.UUID, req *model.DishCreateRequest) (*model.DishDTO, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// CreateOrder places an order for buyerID, pricing each item from its dish.
	CreateOrder(ctx context.Context, buyerID uuid.UUID, req *model.OrderCreateRequest) (*model.OrderDTO, error)

	// List retrieves the orders userID placed (AsBuyer) or must cook (AsCook).
	List(ctx context.Context, userID uuid.UUID, as string) ([]model.OrderDTO, error)
}

// RatingService defines operations for dish ratings.
type RatingService interface {
	// Create records userID's rating of a dish.
	Create(ctx context.Context, userID uuid.UUID, req *model.RatingCreateRequest) (*model.RatingDTO, error)

	// ListByDish retrieves the ratings of a dish, newest first.
	ListByDish(ctx context.Context, dishID uuid.UUID) ([]model.RatingDTO, error)
}

// MetaService serves reference data and the assistant endpoints.
type MetaService interface {
	Campuses(ctx context.Context) ([]model.Campus, error)
	Tags(ctx context.Context) ([]string, error)

	// Chat answers a free-form prompt.
	Chat(ctx context.Context, prompt string) (*model.ChatResponse, error)

	// HireChef accepts a request for a cook to prepare the buyer's pantry.
	HireChef(ctx context.Context, userID uuid.UUID, req *model.HireChefRequest) (*model.HireChefResponse, error)
}
