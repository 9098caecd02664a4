package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// BarterLabel is shown in place of a price for cook-for-share listings.
const BarterLabel = "Cook for share"

// NoPriceLabel is shown when a dish has neither a price nor barter enabled.
const NoPriceLabel = "—"

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Dish represents a home-cooked dish listed by a cook.
type Dish struct {
	ID             uuid.UUID
	Title          string
	Description    string
	Ingredients    []string
	Price          *float64
	Barter         bool
	PhotoURL       *string
	Tags           []string
	Cuisine        string
	Dietary        []string
	DistanceMeters *float64
	CookID         uuid.UUID
	CookName       string
	CookRating     *float64
	Coordinate     *Coordinate
}

// DisplayPrice renders the price column of a dish card.
func (d Dish) DisplayPrice() string {
	if d.Price != nil {
		return fmt.Sprintf("$%.2f", *d.Price)
	}
	if d.Barter {
		return BarterLabel
	}
	return NoPriceLabel
}

// dishJSON is the flattened JSON form of a Dish.
type dishJSON struct {
	ID             *uuid.UUID `json:"id,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Ingredients    []string   `json:"ingredients"`
	Price          *float64   `json:"price,omitempty"`
	Barter         bool       `json:"barter"`
	PhotoURL       *string    `json:"photoURL,omitempty"`
	Tags           []string   `json:"tags"`
	Cuisine        string     `json:"cuisine"`
	Dietary        []string   `json:"dietary"`
	DistanceMeters *float64   `json:"distanceMeters,omitempty"`
	CookID         *uuid.UUID `json:"cookId,omitempty"`
	CookName       string     `json:"cookName"`
	CookRating     *float64   `json:"cookRating,omitempty"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
}

// MarshalJSON encodes the coordinate as top-level latitude/longitude keys.
// Nil lists encode as null so that decoding restores them as nil.
func (d Dish) MarshalJSON() ([]byte, error) {
	out := dishJSON{
		ID:             &d.ID,
		Title:          d.Title,
		Description:    d.Description,
		Ingredients:    d.Ingredients,
		Price:          d.Price,
		Barter:         d.Barter,
		PhotoURL:       d.PhotoURL,
		Tags:           d.Tags,
		Cuisine:        d.Cuisine,
		Dietary:        d.Dietary,
		DistanceMeters: d.DistanceMeters,
		CookID:         &d.CookID,
		CookName:       d.CookName,
		CookRating:     d.CookRating,
	}
	if d.Coordinate != nil {
		out.Latitude = &d.Coordinate.Latitude
		out.Longitude = &d.Coordinate.Longitude
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a Dish, tolerating missing optional keys.
// A missing id or cookId is replaced with a fresh one; missing or null
// lists stay nil.
func (d *Dish) UnmarshalJSON(data []byte) error {
	var in dishJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*d = Dish{
		ID:             uuid.New(),
		Title:          in.Title,
		Description:    in.Description,
		Ingredients:    in.Ingredients,
		Price:          in.Price,
		Barter:         in.Barter,
		PhotoURL:       in.PhotoURL,
		Tags:           in.Tags,
		Cuisine:        in.Cuisine,
		Dietary:        in.Dietary,
		DistanceMeters: in.DistanceMeters,
		CookID:         uuid.New(),
		CookName:       in.CookName,
		CookRating:     in.CookRating,
	}
	if in.ID != nil {
		d.ID = *in.ID
	}
	if in.CookID != nil {
		d.CookID = *in.CookID
	}
	if in.Latitude != nil && in.Longitude != nil {
		d.Coordinate = &Coordinate{Latitude: *in.Latitude, Longitude: *in.Longitude}
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
