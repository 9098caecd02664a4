package model

import (
	"github.com/google/uuid"
)

// DefaultCurrency is used for every listing and order.
const DefaultCurrency = "USD"

// UserDTO is the wire form of a user account.
type UserDTO struct {
	ID        uuid.UUID  `json:"id"`
	FullName  *string    `json:"full_name,omitempty"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	AvatarURL *string    `json:"avatar_url,omitempty"`
	CampusID  *uuid.UUID `json:"campus_id,omitempty"`
}

// SignupRequest is the payload of POST /auth/signup.
type SignupRequest struct {
	FullName *string    `json:"full_name,omitempty"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     string     `json:"role"`
	CampusID *uuid.UUID `json:"campus_id,omitempty"`
}

// LoginRequest is the payload of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by the auth endpoints.
type TokenResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        UserDTO `json:"user"`
}

// DishDTO is the wire form of a dish listing.
type DishDTO struct {
	ID              uuid.UUID  `json:"id"`
	CookID          uuid.UUID  `json:"cook_id"`
	CookName        *string    `json:"cook_name,omitempty"`
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	Price           *float64   `json:"price,omitempty"`
	Barter          bool       `json:"barter"`
	Currency        string     `json:"currency"`
	Available       bool       `json:"available"`
	AvailableQty    *int       `json:"available_qty,omitempty"`
	PrepTimeMinutes *int       `json:"prep_time_minutes,omitempty"`
	PickupLocation  *string    `json:"pickup_location,omitempty"`
	CampusID        *uuid.UUID `json:"campus_id,omitempty"`
	Images          []string   `json:"images"`
	Tags            []string   `json:"tags"`
	Cuisine         *string    `json:"cuisine,omitempty"`
	Dietary         []string   `json:"dietary"`
	Ingredients     []string   `json:"ingredients"`
	Latitude        *float64   `json:"latitude,omitempty"`
	Longitude       *float64   `json:"longitude,omitempty"`
	AvgRating       *float64   `json:"avg_rating,omitempty"`
}

// DishImage is an image reference attached to a new dish.
type DishImage struct {
	URL       string `json:"url"`
	SortOrder *int   `json:"sort_order,omitempty"`
}

// DishCreateRequest is the payload of POST /dishes.
type DishCreateRequest struct {
	Title           string      `json:"title"`
	Description     *string     `json:"description,omitempty"`
	Price           *float64    `json:"price,omitempty"`
	Barter          bool        `json:"barter"`
	Currency        string      `json:"currency"`
	Available       bool        `json:"available"`
	AvailableQty    *int        `json:"available_qty,omitempty"`
	PrepTimeMinutes *int        `json:"prep_time_minutes,omitempty"`
	PickupLocation  *string     `json:"pickup_location,omitempty"`
	CampusID        *uuid.UUID  `json:"campus_id,omitempty"`
	Images          []DishImage `json:"images"`
	Tags            []string    `json:"tags"`
	Cuisine         *string     `json:"cuisine,omitempty"`
	Dietary         []string    `json:"dietary"`
	Ingredients     []string    `json:"ingredients"`
	Latitude        *float64    `json:"latitude,omitempty"`
	Longitude       *float64    `json:"longitude,omitempty"`
}

// OrderItemIn is a line item in an order request.
type OrderItemIn struct {
	DishID              uuid.UUID `json:"dish_id"`
	Quantity            int       `json:"quantity"`
	SpecialInstructions *string   `json:"special_instructions,omitempty"`
}

// OrderItemOut is a priced line item in an order response.
type OrderItemOut struct {
	ID                  uuid.UUID  `json:"id"`
	DishID              *uuid.UUID `json:"dish_id,omitempty"`
	Quantity            int        `json:"quantity"`
	UnitPrice           float64    `json:"unit_price"`
	TotalPrice          float64    `json:"total_price"`
	SpecialInstructions *string    `json:"special_instructions,omitempty"`
}

// OrderCreateRequest is the payload of POST /orders.
type OrderCreateRequest struct {
	Items           []OrderItemIn `json:"items"`
	ScheduledPickup *Timestamp    `json:"scheduled_pickup,omitempty"`
	PickupNotes     *string       `json:"pickup_notes,omitempty"`
	PickupLocation  *string       `json:"pickup_location,omitempty"`
	Currency        string        `json:"currency"`
}

// OrderDTO is the wire form of an order.
type OrderDTO struct {
	ID              uuid.UUID      `json:"id"`
	BuyerID         uuid.UUID      `json:"buyer_id"`
	CookID          *uuid.UUID     `json:"cook_id,omitempty"`
	Status          string         `json:"status"`
	Total           float64        `json:"total"`
	Currency        string         `json:"currency"`
	ScheduledPickup *Timestamp     `json:"scheduled_pickup,omitempty"`
	PickupNotes     *string        `json:"pickup_notes,omitempty"`
	PickupLocation  *string        `json:"pickup_location,omitempty"`
	Items           []OrderItemOut `json:"items"`
	CreatedAt       *Timestamp     `json:"created_at,omitempty"`
}

// RatingCreateRequest is the payload of POST /ratings.
type RatingCreateRequest struct {
	DishID  uuid.UUID `json:"dish_id"`
	Score   int       `json:"score"`
	Comment *string   `json:"comment,omitempty"`
}

// RatingDTO is the wire form of a rating.
type RatingDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	DishID    uuid.UUID `json:"dish_id"`
	Score     int       `json:"score"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
}

// Campus is a university campus dishes can be scoped to.
type Campus struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address *string   `json:"address,omitempty"`
}

// ChatRequest is the payload of POST /ai/chat.
type ChatRequest struct {
	Prompt string `json:"prompt"`
}

// ChatResponse is returned by POST /ai/chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// HireChefRequest asks nearby cooks to cook from the buyer's pantry.
type HireChefRequest struct {
	Title        string   `json:"title"`
	Tags         []string `json:"tags"`
	Pantry       []string `json:"pantry"`
	ImagesBase64 []string `json:"imagesBase64"`
}

// HireChefResponse acknowledges a hire-a-chef request.
type HireChefResponse struct {
	OK bool `json:"ok"`
}
