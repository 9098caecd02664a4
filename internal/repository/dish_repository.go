package repository

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"homebite/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// dishRepository implements DishRepository in memory. Dishes are kept in
// insertion order and listed newest first.
type dishRepository struct {
	mu     sync.RWMutex
	order  []uuid.UUID
	dishes map[uuid.UUID]model.DishDTO
	logger zerolog.Logger
}

// NewDishRepository creates an empty in-memory dish repository.
func NewDishRepository(logger zerolog.Logger) DishRepository {
	return &dishRepository{
		dishes: make(map[uuid.UUID]model.DishDTO),
		logger: logger.With().Str("repository", "dish").Logger(),
	}
}

// List retrieves dishes matching filter.
func (r *dishRepository) List(ctx context.Context, filter DishFilter) ([]model.DishDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))

	r.mu.RLock()
	defer r.mu.RUnlock()

	dishes := make([]model.DishDTO, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		d := r.dishes[r.order[i]]
		if !matches(d, filter.CampusID, query, filter.Tags) {
			continue
		}
		dishes = append(dishes, cloneDish(d))
	}

	r.logger.Debug().
		Str("query", query).
		Int("tags", len(filter.Tags)).
		Int("count", len(dishes)).
		Msg("listed dishes")

	return dishes, nil
}

// GetByID retrieves a single dish.
func (r *dishRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.DishDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.dishes[id]
	if !ok {
		return nil, nil
	}
	d = cloneDish(d)
	return &d, nil
}

// Create stores a new dish, assigning an ID when it has none.
func (r *dishRepository) Create(ctx context.Context, dish *model.DishDTO) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dish.ID == uuid.Nil {
		dish.ID = uuid.New()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.dishes[dish.ID]; !exists {
		r.order = append(r.order, dish.ID)
	}
	r.dishes[dish.ID] = cloneDish(*dish)
	return nil
}

// Tags returns every tag in use, lowercased and sorted.
func (r *dishRepository) Tags(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, d := range r.dishes {
		for _, tag := range d.Tags {
			seen[strings.ToLower(tag)] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

// matches applies the listing filter: campus equality, case-insensitive
// substring on title or description, and any-of on tags.
func matches(d model.DishDTO, campusID *uuid.UUID, query string, tags []string) bool {
	if campusID != nil && (d.CampusID == nil || *d.CampusID != *campusID) {
		return false
	}

	if query != "" {
		description := ""
		if d.Description != nil {
			description = *d.Description
		}
		if !strings.Contains(strings.ToLower(d.Title), query) &&
			!strings.Contains(strings.ToLower(description), query) {
			return false
		}
	}

	if len(tags) == 0 {
		return true
	}
	for _, want := range tags {
		for _, have := range d.Tags {
			if strings.EqualFold(want, have) {
				return true
			}
		}
	}
	return false
}

func cloneDish(d model.DishDTO) model.DishDTO {
	d.Images = slices.Clone(d.Images)
	d.Tags = slices.Clone(d.Tags)
	d.Dietary = slices.Clone(d.Dietary)
	d.Ingredients = slices.Clone(d.Ingredients)
	return d
}
