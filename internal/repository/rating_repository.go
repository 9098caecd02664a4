package repository

import (
	"context"
	"sync"

	"homebite/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ratingKey struct {
	user uuid.UUID
	dish uuid.UUID
}

// ratingRepository implements RatingRepository in memory.
type ratingRepository struct {
	mu      sync.RWMutex
	ratings []model.RatingDTO
	rated   map[ratingKey]struct{}
	logger  zerolog.Logger
}

// NewRatingRepository creates an empty in-memory rating repository.
func NewRatingRepository(logger zerolog.Logger) RatingRepository {
	return &ratingRepository{
		rated:  make(map[ratingKey]struct{}),
		logger: logger.With().Str("repository", "rating").Logger(),
	}
}

// Create stores a rating, one per user and dish.
func (r *ratingRepository) Create(ctx context.Context, rating *model.RatingDTO) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := ratingKey{user: rating.UserID, dish: rating.DishID}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.rated[key]; dup {
		return model.ErrAlreadyRated
	}
	if rating.ID == uuid.Nil {
		rating.ID = uuid.New()
	}

	r.rated[key] = struct{}{}
	r.ratings = append(r.ratings, *rating)
	return nil
}

// ListByDish retrieves the ratings of a dish.
func (r *ratingRepository) ListByDish(ctx context.Context, dishID uuid.UUID) ([]model.RatingDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ratings := []model.RatingDTO{}
	for i := len(r.ratings) - 1; i >= 0; i-- {
		if r.ratings[i].DishID == dishID {
			ratings = append(ratings, r.ratings[i])
		}
	}
	return ratings, nil
}

// Average returns the mean score of a dish.
func (r *ratingRepository) Average(ctx context.Context, dishID uuid.UUID) (float64, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	sum, n := 0, 0
	for _, rating := range r.ratings {
		if rating.DishID == dishID {
			sum += rating.Score
			n++
		}
	}
	if n == 0 {
		return 0, false, nil
	}
	return float64(sum) / float64(n), true, nil
}
