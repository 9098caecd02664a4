package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestDishFromDTO(t *testing.T) {
	dto := DishDTO{
		ID:          uuid.New(),
		CookID:      uuid.New(),
		Title:       "Pasta al Pomodoro",
		Description: strPtr("Classic pasta."),
		Price:       floatPtr(8.5),
		Currency:    "USD",
		Available:   true,
		Images:      []string{"https://img/1.jpg", "https://img/2.jpg"},
		Tags:        []string{"italian"},
		AvgRating:   floatPtr(4.6),
		Latitude:    floatPtr(30.61),
		Longitude:   floatPtr(-96.34),
	}

	dish := DishFromDTO(dto)

	assert.Equal(t, dto.ID, dish.ID)
	assert.Equal(t, dto.CookID, dish.CookID)
	assert.Equal(t, "Classic pasta.", dish.Description)
	assert.Equal(t, "https://img/1.jpg", *dish.PhotoURL)
	assert.Equal(t, 4.6, *dish.CookRating)
	assert.Equal(t, &Coordinate{Latitude: 30.61, Longitude: -96.34}, dish.Coordinate)
	assert.Empty(t, dish.Cuisine)
	assert.NotNil(t, dish.Dietary)
}

func TestDishDTO_DecodesMinimalVariant(t *testing.T) {
	payload := `{
		"id": "4f8d9c1e-0b7a-4c55-9a55-111111111111",
		"cook_id": "4f8d9c1e-0b7a-4c55-9a55-222222222222",
		"title": "Tacos",
		"description": null,
		"price": 6,
		"currency": "USD",
		"available": true,
		"available_qty": null,
		"prep_time_minutes": 20,
		"pickup_location": "Dorm A",
		"campus_id": null,
		"images": [],
		"tags": ["mexican"]
	}`

	var dto DishDTO
	require.NoError(t, json.Unmarshal([]byte(payload), &dto))
	assert.Nil(t, dto.AvgRating)
	assert.Equal(t, 20, *dto.PrepTimeMinutes)

	dish := DishFromDTO(dto)
	assert.Equal(t, "$6.00", dish.DisplayPrice())
	assert.Nil(t, dish.PhotoURL)
	assert.Equal(t, []string{"mexican"}, dish.Tags)
}

func TestDishToDTO_RoundTrip(t *testing.T) {
	photo := "https://img/tofu.jpg"
	dish := Dish{
		ID:          uuid.New(),
		Title:       "Barter Curry",
		Description: "Help chop and share a cozy curry.",
		Ingredients: []string{"potato"},
		Barter:      true,
		PhotoURL:    &photo,
		Tags:        []string{"share"},
		Cuisine:     "Indian",
		Dietary:     []string{"Vegan"},
		CookID:      uuid.New(),
		CookName:    "J. Patel",
		CookRating:  floatPtr(4.9),
		Coordinate:  &Coordinate{Latitude: 30.6118, Longitude: -96.3415},
	}

	data, err := json.Marshal(DishToDTO(dish))
	require.NoError(t, err)

	var dto DishDTO
	require.NoError(t, json.Unmarshal(data, &dto))
	assert.Equal(t, dish, DishFromDTO(dto))
}

func TestDishToCreateRequest(t *testing.T) {
	photo := "https://img/a.jpg"
	req := DishToCreateRequest(Dish{Title: "Soup", Price: floatPtr(4), PhotoURL: &photo})

	assert.Equal(t, "Soup", req.Title)
	assert.Nil(t, req.Description)
	assert.Equal(t, DefaultCurrency, req.Currency)
	assert.True(t, req.Available)
	require.Len(t, req.Images, 1)
	assert.Equal(t, 0, *req.Images[0].SortOrder)
	assert.NotNil(t, req.Tags)
}

func TestOrderFromDTO(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	dishID := uuid.New()
	cookID := uuid.New()
	pickup := NewTimestamp(now.Add(4 * time.Hour))

	t.Run("Full order", func(t *testing.T) {
		order := OrderFromDTO(OrderDTO{
			ID:              uuid.New(),
			BuyerID:         uuid.New(),
			CookID:          &cookID,
			Status:          "confirmed",
			Total:           9,
			ScheduledPickup: &pickup,
			Items:           []OrderItemOut{{ID: uuid.New(), DishID: &dishID, Quantity: 1}},
		}, now)

		assert.Equal(t, dishID, order.DishID)
		assert.Equal(t, cookID, order.SellerID)
		assert.Equal(t, OrderStatusConfirmed, order.Status)
		assert.True(t, order.ScheduledAt.Equal(pickup.Time))
		assert.Equal(t, 9.0, *order.TotalPrice)
	})

	t.Run("Missing optional fields", func(t *testing.T) {
		order := OrderFromDTO(OrderDTO{ID: uuid.New(), Status: "weird"}, now)

		assert.Equal(t, uuid.Nil, order.DishID)
		assert.Equal(t, uuid.Nil, order.SellerID)
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.Equal(t, now, order.ScheduledAt)
	})
}

func TestRatingFromDTO(t *testing.T) {
	ratee := uuid.New()
	dto := RatingDTO{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		DishID:    uuid.New(),
		Score:     4,
		Comment:   strPtr("Tasty"),
		CreatedAt: NewTimestamp(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)),
	}

	r := RatingFromDTO(dto, ratee)
	assert.Equal(t, dto.UserID, r.RaterID)
	assert.Equal(t, ratee, r.RateeID)
	assert.Equal(t, 4, r.Stars)
	assert.NoError(t, r.Validate())
}

func TestUserFromDTO(t *testing.T) {
	u := UserFromDTO(UserDTO{ID: uuid.New(), FullName: strPtr("Ava"), Email: "ava@uni.edu", Role: "cook"})
	assert.Equal(t, "Ava", u.Name)
	assert.Equal(t, []UserRole{RoleCook}, u.Roles)

	u = UserFromDTO(UserDTO{ID: uuid.New(), Email: "x@uni.edu", Role: "admin"})
	assert.Empty(t, u.Roles)
	assert.Equal(t, "", u.Name)
}

func TestWireRole(t *testing.T) {
	for _, r := range AllRoles {
		parsed, ok := RoleFromWire(WireRole(r))
		require.True(t, ok)
		assert.Equal(t, r, parsed)
	}
}
