package service

import (
	"context"
	"fmt"
	"strings"

	"homebite/internal/model"
	"homebite/internal/repository"
	"homebite/internal/sample"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SampleCampusID is the campus every seeded dish belongs to.
var SampleCampusID = uuid.MustParse("9b0c1d2e-3f4a-4b5c-8d6e-7f8a9b0c1d2e")

// DefaultCampuses returns the campuses served by the local API.
func DefaultCampuses() []model.Campus {
	address := "400 Bizzell St, College Station, TX"
	return []model.Campus{
		{ID: SampleCampusID, Name: "Texas A&M University", Address: &address},
		{ID: uuid.MustParse("ab1c2d3e-4f5a-4b6c-9d7e-8f9a0b1c2d3e"), Name: "Blinn College"},
	}
}

// Seed loads catalog into repos. Every seeded account, the catalogue user
// and each cook, signs in with password.
func Seed(ctx context.Context, repos *repository.Repositories, catalog *sample.Catalog, password string, logger zerolog.Logger) error {
	log := logger.With().Str("component", "seed").Logger()

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	campus := SampleCampusID
	owner := catalog.User
	role := model.RoleCustomer
	if owner.CanSell() {
		role = model.RoleCook
	}

	accounts := []model.UserDTO{{
		ID:        owner.ID,
		FullName:  optionalString(owner.Name),
		Email:     owner.Email,
		Role:      model.WireRole(role),
		AvatarURL: owner.PhotoURL,
		CampusID:  &campus,
	}}

	seen := map[uuid.UUID]bool{owner.ID: true}
	for _, d := range catalog.Dishes {
		if seen[d.CookID] {
			continue
		}
		seen[d.CookID] = true
		accounts = append(accounts, model.UserDTO{
			ID:       d.CookID,
			FullName: optionalString(d.CookName),
			Email:    cookEmail(d.CookName, d.CookID),
			Role:     model.WireRole(model.RoleCook),
			CampusID: &campus,
		})
	}

	for _, u := range accounts {
		if err := repos.Users.Create(ctx, &repository.UserRecord{User: u, PasswordHash: hash}); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
	}

	prices := make(map[uuid.UUID]float64, len(catalog.Dishes))
	cookDish := make(map[uuid.UUID]uuid.UUID, len(catalog.Dishes))
	for _, d := range catalog.Dishes {
		dto := model.DishToDTO(d)
		dto.AvgRating = nil
		dto.CampusID = &campus
		if err := repos.Dishes.Create(ctx, &dto); err != nil {
			return fmt.Errorf("failed to seed dish %s: %w", d.Title, err)
		}
		if d.Price != nil {
			prices[d.ID] = *d.Price
		}
		if _, ok := cookDish[d.CookID]; !ok {
			cookDish[d.CookID] = d.ID
		}
	}

	// Catalogue ratings review a cook; the API rates dishes, so each lands
	// on the cook's first dish.
	for _, r := range catalog.Ratings {
		dishID, ok := cookDish[r.RateeID]
		if !ok {
			continue
		}
		rating := &model.RatingDTO{
			ID:        r.ID,
			UserID:    r.RaterID,
			DishID:    dishID,
			Score:     r.Stars,
			Comment:   r.Comment,
			CreatedAt: model.NewTimestamp(r.CreatedAt),
		}
		if err := repos.Ratings.Create(ctx, rating); err != nil {
			return fmt.Errorf("failed to seed rating: %w", err)
		}
	}

	for _, o := range catalog.Orders {
		dishID := o.DishID
		cookID := o.SellerID
		pickup := model.NewTimestamp(o.ScheduledAt)
		unit := prices[o.DishID]
		total := unit
		if o.TotalPrice != nil {
			total = *o.TotalPrice
		}
		order := &model.OrderDTO{
			ID:              o.ID,
			BuyerID:         o.BuyerID,
			CookID:          &cookID,
			Status:          string(o.Status),
			Total:           total,
			Currency:        model.DefaultCurrency,
			ScheduledPickup: &pickup,
			Items: []model.OrderItemOut{{
				DishID:     &dishID,
				Quantity:   1,
				UnitPrice:  unit,
				TotalPrice: total,
			}},
			CreatedAt: &pickup,
		}
		if err := repos.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("failed to seed order: %w", err)
		}
	}

	log.Info().
		Int("users", len(accounts)).
		Int("dishes", len(catalog.Dishes)).
		Int("ratings", len(catalog.Ratings)).
		Int("orders", len(catalog.Orders)).
		Msg("sample catalogue seeded")

	return nil
}

// cookEmail derives a stable address for a seeded cook, e.g. "m.rossi@homebite.local".
func cookEmail(name string, id uuid.UUID) string {
	local := strings.ToLower(strings.Join(strings.Fields(name), ""))
	if local == "" {
		local = id.String()[:8]
	}
	return local + "@homebite.local"
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
