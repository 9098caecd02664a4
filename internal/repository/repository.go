package repository

import (
	"context"

	"homebite/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UserRecord is a stored account together with its password hash.
type UserRecord struct {
	User         model.UserDTO
	PasswordHash []byte
}

// DishFilter narrows a dish listing. Zero values match everything.
type DishFilter struct {
	CampusID *uuid.UUID
	Query    string
	Tags     []string
}

// UserRepository defines the interface for account data access operations.
type UserRepository interface {
	// Create stores a new account. Returns model.ErrEmailRegistered when the
	// email is already taken.
	Create(ctx context.Context, rec *UserRecord) error

	// GetByEmail retrieves an account by email, case-insensitively.
	// Returns nil when no account matches.
	GetByEmail(ctx context.Context, email string) (*UserRecord, error)

	// GetByID retrieves an account by its ID. Returns nil when not found.
	GetByID(ctx context.Context, id uuid.UUID) (*UserRecord, error)
}

// DishRepository defines the interface for dish data access operations.
type DishRepository interface {
	// List retrieves dishes matching filter, newest first.
	List(ctx context.Context, filter DishFilter) ([]model.DishDTO, error)

	// GetByID retrieves a single dish. Returns nil when not found.
	GetByID(ctx context.Context, id uuid.UUID) (*model.DishDTO, error)

	// Create stores a new dish.
	Create(ctx context.Context, dish *model.DishDTO) error

	// Tags returns every tag used by any dish, sorted by name.
	Tags(ctx context.Context) ([]string, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// Create stores a new order with its items.
	Create(ctx context.Context, order *model.OrderDTO) error

	// ListByBuyer retrieves orders placed by buyerID, newest first.
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]model.OrderDTO, error)

	// ListByCook retrieves orders for dishes cooked by cookID, newest first.
	ListByCook(ctx context.Context, cookID uuid.UUID) ([]model.OrderDTO, error)
}

// RatingRepository defines the interface for rating data access operations.
type RatingRepository interface {
	// Create stores a rating. Returns model.ErrAlreadyRated when the user
	// has already rated the dish.
	Create(ctx context.Context, rating *model.RatingDTO) error

	// ListByDish retrieves the ratings of a dish, newest first.
	ListByDish(ctx context.Context, dishID uuid.UUID) ([]model.RatingDTO, error)

	// Average returns the mean score of a dish and whether it has any ratings.
	Average(ctx context.Context, dishID uuid.UUID) (float64, bool, error)
}

// CampusRepository defines the interface for campus lookups.
type CampusRepository interface {
	// List retrieves all campuses sorted by name.
	List(ctx context.Context) ([]model.Campus, error)
}

// Repositories groups the stores backing the marketplace API.
type Repositories struct {
	Users    UserRepository
	Dishes   DishRepository
	Orders   OrderRepository
	Ratings  RatingRepository
	Campuses CampusRepository
}

// NewMemory creates empty in-memory repositories serving campuses.
func NewMemory(campuses []model.Campus, logger zerolog.Logger) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(logger),
		Dishes:   NewDishRepository(logger),
		Orders:   NewOrderRepository(logger),
		Ratings:  NewRatingRepository(logger),
		Campuses: NewCampusRepository(campuses),
	}
}
