package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinStars = 1
	MaxStars = 5
)

// Rating is a star review left by one user for another.
type Rating struct {
	ID        uuid.UUID `json:"id"`
	RaterID   uuid.UUID `json:"raterId"`
	RateeID   uuid.UUID `json:"rateeId"`
	Stars     int       `json:"stars"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidStars reports whether stars is within the allowed range.
func ValidStars(stars int) bool {
	return stars >= MinStars && stars <= MaxStars
}

// Validate checks the rating invariants.
func (r Rating) Validate() error {
	if !ValidStars(r.Stars) {
		return ErrInvalidStars
	}
	return nil
}
