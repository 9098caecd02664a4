package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"homebite/internal/model"
	"homebite/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// dishService implements DishService.
type dishService struct {
	dishes  repository.DishRepository
	ratings repository.RatingRepository
	users   repository.UserRepository
	logger  zerolog.Logger
}

// NewDishService creates a new dish service.
func NewDishService(
	dishes repository.DishRepository,
	ratings repository.RatingRepository,
	users repository.UserRepository,
	logger zerolog.Logger,
) DishService {
	return &dishService{
		dishes:  dishes,
		ratings: ratings,
		users:   users,
		logger:  logger.With().Str("service", "dish").Logger(),
	}
}

// List retrieves dishes matching filter with their average rating.
func (s *dishService) List(ctx context.Context, filter repository.DishFilter) ([]model.DishDTO, error) {
	dishes, err := s.dishes.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list dishes")
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}

	for i := range dishes {
		avg, rated, err := s.ratings.Average(ctx, dishes[i].ID)
		if err != nil {
			s.logger.Error().Err(err).Str("dish_id", dishes[i].ID.String()).Msg("failed to average ratings")
			return nil, fmt.Errorf("failed to average ratings: %w", err)
		}
		if rated {
			dishes[i].AvgRating = &avg
		}
	}

	return dishes, nil
}

// Create publishes a new dish cooked by cookID.
func (s *dishService) Create(ctx context.Context, cookID uuid.UUID, req *model.DishCreateRequest) (*model.DishDTO, error) {
	if req == nil || strings.TrimSpace(req.Title) == "" {
		return nil, model.ErrMissingTitle
	}
	if !req.Barter && (req.Price == nil || *req.Price <= 0) {
		return nil, model.ErrInvalidPrice
	}

	cook, err := s.users.GetByID(ctx, cookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cook: %w", err)
	}
	if cook == nil {
		return nil, model.ErrUserNotFound
	}

	currency := req.Currency
	if currency == "" {
		currency = model.DefaultCurrency
	}

	dish := &model.DishDTO{
		ID:              uuid.New(),
		CookID:          cookID,
		CookName:        cook.User.FullName,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Price:           req.Price,
		Barter:          req.Barter,
		Currency:        currency,
		Available:       req.Available,
		AvailableQty:    req.AvailableQty,
		PrepTimeMinutes: req.PrepTimeMinutes,
		PickupLocation:  req.PickupLocation,
		CampusID:        req.CampusID,
		Images:          imageURLs(req.Images),
		Tags:            nonNilStrings(req.Tags),
		Cuisine:         req.Cuisine,
		Dietary:         nonNilStrings(req.Dietary),
		Ingredients:     nonNilStrings(req.Ingredients),
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
	}
	if dish.CampusID == nil {
		dish.CampusID = cook.User.CampusID
	}

	if err := s.dishes.Create(ctx, dish); err != nil {
		s.logger.Error().Err(err).Str("cook_id", cookID.String()).Msg("failed to create dish")
		return nil, fmt.Errorf("failed to create dish: %w", err)
	}

	s.logger.Info().
		Str("dish_id", dish.ID.String()).
		Str("cook_id", cookID.String()).
		Msg("dish published")

	return dish, nil
}

// imageURLs orders images by sort order, keeping request order for ties
// and for images without one.
func imageURLs(images []model.DishImage) []string {
	type indexed struct {
		url   string
		order int
	}
	sorted := make([]indexed, 0, len(images))
	for i, img := range images {
		if img.URL == "" {
			continue
		}
		order := len(images) + i
		if img.SortOrder != nil {
			order = *img.SortOrder
		}
		sorted = append(sorted, indexed{url: img.URL, order: order})
	}
	slices.SortStableFunc(sorted, func(a, b indexed) int { return a.order - b.order })

	urls := make([]string, len(sorted))
	for i, img := range sorted {
		urls[i] = img.url
	}
	return urls
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
