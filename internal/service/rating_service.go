package service

import (
	"context"
	"fmt"
	"time"

	"homebite/internal/model"
	"homebite/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ratingService implements RatingService.
type ratingService struct {
	ratings repository.RatingRepository
	dishes  repository.DishRepository
	now     func() time.Time
	logger  zerolog.Logger
}

// NewRatingService creates a new rating service.
func NewRatingService(ratings repository.RatingRepository, dishes repository.DishRepository, logger zerolog.Logger) RatingService {
	return &ratingService{
		ratings: ratings,
		dishes:  dishes,
		now:     time.Now,
		logger:  logger.With().Str("service", "rating").Logger(),
	}
}

// Create records userID's rating of a dish. A user rates a dish once.
func (s *ratingService) Create(ctx context.Context, userID uuid.UUID, req *model.RatingCreateRequest) (*model.RatingDTO, error) {
	if req == nil || req.DishID == uuid.Nil {
		return nil, model.ErrMissingDishID
	}
	if !model.ValidStars(req.Score) {
		return nil, model.ErrInvalidStars
	}

	dish, err := s.dishes.GetByID(ctx, req.DishID)
	if err != nil {
		return nil, fmt.Errorf("failed to get dish: %w", err)
	}
	if dish == nil {
		return nil, model.ErrDishNotFound
	}

	rating := &model.RatingDTO{
		ID:        uuid.New(),
		UserID:    userID,
		DishID:    req.DishID,
		Score:     req.Score,
		Comment:   req.Comment,
		CreatedAt: model.NewTimestamp(s.now()),
	}

	if err := s.ratings.Create(ctx, rating); err != nil {
		s.logger.Warn().Err(err).
			Str("user_id", userID.String()).
			Str("dish_id", req.DishID.String()).
			Msg("rating rejected")
		return nil, err
	}

	return rating, nil
}

// ListByDish retrieves the ratings of a dish.
func (s *ratingService) ListByDish(ctx context.Context, dishID uuid.UUID) ([]model.RatingDTO, error) {
	if dishID == uuid.Nil {
		return nil, model.ErrMissingDishID
	}
	ratings, err := s.ratings.ListByDish(ctx, dishID)
	if err != nil {
		s.logger.Error().Err(err).Str("dish_id", dishID.String()).Msg("failed to list ratings")
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return ratings, nil
}
