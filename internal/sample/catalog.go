// Package sample provides the built-in demo catalogue and loaders for
// catalogue fixtures stored on disk or in S3.
package sample

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"homebite/internal/model"

	"github.com/google/uuid"
)

// Catalog is a self-contained set of demo data.
type Catalog struct {
	User    model.User     `json:"user"`
	Dishes  []model.Dish   `json:"dishes"`
	Ratings []model.Rating `json:"ratings"`
	Orders  []model.Order  `json:"orders"`
}

// Loader defines the interface for loading catalogue fixtures.
type Loader interface {
	// Load reads the fixture at path and returns its catalogue.
	Load(ctx context.Context, path string) (*Catalog, error)
}

// Origin is the map centre the demo dishes are clustered around
// (College Station, TX).
var Origin = model.Coordinate{Latitude: 30.6133793, Longitude: -96.3436677}

// Fixed identities so that fixtures, seeded servers and clients agree.
var (
	UserID        = uuid.MustParse("5b0c7a52-9a3e-4c1f-8d2b-1e6f3a9c0d11")
	RossiID       = uuid.MustParse("a3f1e2d4-6b7c-4d8e-9f01-2a3b4c5d6e7f")
	PatelID       = uuid.MustParse("c8d9e0f1-2a3b-4c5d-8e6f-7a8b9c0d1e2f")
	BasilTofuID   = uuid.MustParse("0e1f2a3b-4c5d-4e6f-8a7b-9c0d1e2f3a4b")
	PomodoroID    = uuid.MustParse("1f2a3b4c-5d6e-4f7a-8b9c-0d1e2f3a4b5c")
	BarterCurryID = uuid.MustParse("2a3b4c5d-6e7f-4a8b-9c0d-1e2f3a4b5c6d")
	ratingOne     = uuid.MustParse("3b4c5d6e-7f8a-4b9c-8d1e-2f3a4b5c6d7e")
	ratingTwo     = uuid.MustParse("4c5d6e7f-8a9b-4c0d-9e2f-3a4b5c6d7e8f")
	orderSoon     = uuid.MustParse("5d6e7f8a-9b0c-4d1e-8f3a-4b5c6d7e8f9a")
	orderDone     = uuid.MustParse("6e7f8a9b-0c1d-4e2f-9a4b-5c6d7e8f9a0b")
	raterOne      = uuid.MustParse("7f8a9b0c-1d2e-4f3a-8b5c-6d7e8f9a0b1c")
	raterTwo      = uuid.MustParse("8a9b0c1d-2e3f-4a4b-9c6d-7e8f9a0b1c2d")
)

// Default returns the built-in catalogue. Order pickup times are relative
// to now: one four hours ahead, one two days past.
func Default(now time.Time) *Catalog {
	user := model.User{
		ID:                  UserID,
		Name:                "Ava Lee",
		Email:               "ava@uni.edu",
		University:          "Campus U",
		Roles:               []model.UserRole{model.RoleCustomer, model.RoleCook, model.RoleSeller},
		DietaryRestrictions: []string{"Vegetarian"},
		CuisinePreferences:  []string{"Thai", "Italian"},
		Rating:              float(4.8),
	}

	dishes := []model.Dish{
		{
			ID:             BasilTofuID,
			Title:          "Spicy Basil Tofu",
			Description:    "Homestyle Thai basil tofu with jasmine rice.",
			Ingredients:    []string{"tofu", "basil", "garlic", "chili"},
			Price:          float(9.0),
			Tags:           []string{"spicy", "thai", "veg"},
			Cuisine:        "Thai",
			Dietary:        []string{"Vegetarian"},
			DistanceMeters: float(320),
			CookID:         UserID,
			CookName:       "Ava Lee",
			CookRating:     float(4.8),
			Coordinate:     &model.Coordinate{Latitude: 30.6140, Longitude: -96.3430},
		},
		{
			ID:             PomodoroID,
			Title:          "Pasta al Pomodoro",
			Description:    "Classic pasta with bright tomato sauce.",
			Ingredients:    []string{"tomato", "pasta", "basil", "parmesan"},
			Price:          float(8.5),
			Tags:           []string{"italian"},
			Cuisine:        "Italian",
			Dietary:        []string{"Vegetarian"},
			DistanceMeters: float(680),
			CookID:         RossiID,
			CookName:       "M. Rossi",
			CookRating:     float(4.6),
			Coordinate:     &model.Coordinate{Latitude: 30.6125, Longitude: -96.3450},
		},
		{
			ID:             BarterCurryID,
			Title:          "Barter Curry",
			Description:    "Help chop and share a cozy curry.",
			Ingredients:    []string{"potato", "carrot", "curry paste"},
			Barter:         true,
			Tags:           []string{"share", "homestyle"},
			Cuisine:        "Indian",
			Dietary:        []string{"Vegan"},
			DistanceMeters: float(850),
			CookID:         PatelID,
			CookName:       "J. Patel",
			CookRating:     float(4.9),
			Coordinate:     &model.Coordinate{Latitude: 30.6118, Longitude: -96.3415},
		},
	}

	now = now.UTC().Truncate(time.Second)
	ratings := []model.Rating{
		{ID: ratingOne, RaterID: raterOne, RateeID: UserID, Stars: 5, Comment: str("Delicious and on time!"), CreatedAt: now.Add(-72 * time.Hour)},
		{ID: ratingTwo, RaterID: raterTwo, RateeID: UserID, Stars: 4, Comment: str("Tasty, a bit spicy."), CreatedAt: now.Add(-24 * time.Hour)},
	}

	orders := []model.Order{
		{
			ID:          orderSoon,
			DishID:      dishes[0].ID,
			BuyerID:     UserID,
			SellerID:    dishes[0].CookID,
			ScheduledAt: now.Add(4 * time.Hour),
			Status:      model.OrderStatusConfirmed,
			TotalPrice:  float(9.0),
		},
		{
			ID:          orderDone,
			DishID:      dishes[1].ID,
			BuyerID:     UserID,
			SellerID:    dishes[1].CookID,
			ScheduledAt: now.Add(-48 * time.Hour),
			Status:      model.OrderStatusCompleted,
			TotalPrice:  float(8.5),
		},
	}

	return &Catalog{User: user, Dishes: dishes, Ratings: ratings, Orders: orders}
}

// Validate checks that every rating is in range and every dish is titled.
func (c *Catalog) Validate() error {
	for i, d := range c.Dishes {
		if d.Title == "" {
			return fmt.Errorf("dish %d: %w", i, model.ErrMissingTitle)
		}
	}
	for i, r := range c.Ratings {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("rating %d: %w", i, err)
		}
	}
	return nil
}

// Encode writes c as JSON, gzip-compressed when compress is set.
func (c *Catalog) Encode(w io.Writer, compress bool) error {
	if !compress {
		return json.NewEncoder(w).Encode(c)
	}
	gz := gzip.NewWriter(w)
	if err := json.NewEncoder(gz).Encode(c); err != nil {
		gz.Close()
		return fmt.Errorf("failed to encode catalogue: %w", err)
	}
	return gz.Close()
}

// decode reads a catalogue, gunzipping first when compressed is set.
func decode(r io.Reader, compressed bool) (*Catalog, error) {
	if compressed {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode catalogue: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func float(f float64) *float64 {
	return &f
}

func str(s string) *string {
	return &s
}
