package model

import (
	"github.com/google/uuid"
)

// UserRole is a capability a user picks during onboarding.
type UserRole string

const (
	RoleCustomer UserRole = "Customer"
	RoleCook     UserRole = "Cook"
	RoleSeller   UserRole = "Seller"
)

// AllRoles lists the roles in display order.
var AllRoles = []UserRole{RoleCustomer, RoleCook, RoleSeller}

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case RoleCustomer, RoleCook, RoleSeller:
		return true
	}
	return false
}

// User represents a marketplace account.
type User struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	University          string     `json:"university"`
	PhotoURL            *string    `json:"photoURL,omitempty"`
	Roles               []UserRole `json:"roles"`
	DietaryRestrictions []string   `json:"dietaryRestrictions"`
	CuisinePreferences  []string   `json:"cuisinePreferences"`
	Rating              *float64   `json:"rating,omitempty"`
}

// HasRole reports whether the user holds role.
func (u User) HasRole(role UserRole) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// CanSell reports whether the user may publish dishes.
func (u User) CanSell() bool {
	return u.HasRole(RoleCook) || u.HasRole(RoleSeller)
}
