package model

import (
	"time"

	"github.com/google/uuid"
)

// DishFromDTO maps a wire dish to the domain model.
func DishFromDTO(d DishDTO) Dish {
	dish := Dish{
		ID:          d.ID,
		Title:       d.Title,
		Description: deref(d.Description),
		Ingredients: nonNil(d.Ingredients),
		Price:       d.Price,
		Barter:      d.Barter,
		Tags:        nonNil(d.Tags),
		Cuisine:     deref(d.Cuisine),
		Dietary:     nonNil(d.Dietary),
		CookID:      d.CookID,
		CookName:    deref(d.CookName),
		CookRating:  d.AvgRating,
	}
	if len(d.Images) > 0 {
		photo := d.Images[0]
		dish.PhotoURL = &photo
	}
	if d.Latitude != nil && d.Longitude != nil {
		dish.Coordinate = &Coordinate{Latitude: *d.Latitude, Longitude: *d.Longitude}
	}
	return dish
}

// DishToDTO maps a domain dish to its wire form.
func DishToDTO(d Dish) DishDTO {
	dto := DishDTO{
		ID:          d.ID,
		CookID:      d.CookID,
		CookName:    optional(d.CookName),
		Title:       d.Title,
		Description: optional(d.Description),
		Price:       d.Price,
		Barter:      d.Barter,
		Currency:    DefaultCurrency,
		Available:   true,
		Images:      []string{},
		Tags:        nonNil(d.Tags),
		Cuisine:     optional(d.Cuisine),
		Dietary:     nonNil(d.Dietary),
		Ingredients: nonNil(d.Ingredients),
		AvgRating:   d.CookRating,
	}
	if d.PhotoURL != nil {
		dto.Images = []string{*d.PhotoURL}
	}
	if d.Coordinate != nil {
		dto.Latitude = &d.Coordinate.Latitude
		dto.Longitude = &d.Coordinate.Longitude
	}
	return dto
}

// DishToCreateRequest builds the create payload for a drafted dish.
func DishToCreateRequest(d Dish) DishCreateRequest {
	req := DishCreateRequest{
		Title:       d.Title,
		Description: optional(d.Description),
		Price:       d.Price,
		Barter:      d.Barter,
		Currency:    DefaultCurrency,
		Available:   true,
		Images:      []DishImage{},
		Tags:        nonNil(d.Tags),
		Cuisine:     optional(d.Cuisine),
		Dietary:     nonNil(d.Dietary),
		Ingredients: nonNil(d.Ingredients),
	}
	if d.PhotoURL != nil {
		first := 0
		req.Images = append(req.Images, DishImage{URL: *d.PhotoURL, SortOrder: &first})
	}
	if d.Coordinate != nil {
		req.Latitude = &d.Coordinate.Latitude
		req.Longitude = &d.Coordinate.Longitude
	}
	return req
}

// OrderFromDTO maps a wire order to the domain model. An order without a
// scheduled pickup is treated as scheduled at now; an order without items
// gets a nil dish id.
func OrderFromDTO(o OrderDTO, now time.Time) Order {
	order := Order{
		ID:          o.ID,
		BuyerID:     o.BuyerID,
		ScheduledAt: now,
		Status:      ParseOrderStatus(o.Status),
	}
	total := o.Total
	order.TotalPrice = &total
	if len(o.Items) > 0 && o.Items[0].DishID != nil {
		order.DishID = *o.Items[0].DishID
	}
	if o.CookID != nil {
		order.SellerID = *o.CookID
	}
	if o.ScheduledPickup != nil {
		order.ScheduledAt = o.ScheduledPickup.Time
	}
	return order
}

// RatingFromDTO maps a wire rating to the domain model. The wire form is
// keyed by dish, so the rated party is supplied by the caller.
func RatingFromDTO(r RatingDTO, rateeID uuid.UUID) Rating {
	return Rating{
		ID:        r.ID,
		RaterID:   r.UserID,
		RateeID:   rateeID,
		Stars:     r.Score,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.Time,
	}
}

// UserFromDTO maps a wire user to the domain model. The wire role is a
// single lowercase value; an unknown role yields no roles.
func UserFromDTO(u UserDTO) User {
	user := User{
		ID:                  u.ID,
		Name:                deref(u.FullName),
		Email:               u.Email,
		PhotoURL:            u.AvatarURL,
		Roles:               []UserRole{},
		DietaryRestrictions: []string{},
		CuisinePreferences:  []string{},
	}
	if role, ok := RoleFromWire(u.Role); ok {
		user.Roles = append(user.Roles, role)
	}
	return user
}

// RoleFromWire parses a lowercase wire role.
func RoleFromWire(s string) (UserRole, bool) {
	switch s {
	case "customer", "buyer":
		return RoleCustomer, true
	case "cook":
		return RoleCook, true
	case "seller":
		return RoleSeller, true
	}
	return "", false
}

// WireRole renders a role the way the API expects it.
func WireRole(r UserRole) string {
	switch r {
	case RoleCook:
		return "cook"
	case RoleSeller:
		return "seller"
	default:
		return "customer"
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
