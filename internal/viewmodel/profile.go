package viewmodel

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"homebite/internal/model"
	"homebite/internal/observe"
	"homebite/internal/sample"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RatingAPI is the part of the API client the profile uses.
type RatingAPI interface {
	ListRatings(ctx context.Context, dishID uuid.UUID) ([]model.RatingDTO, error)
	AddRating(ctx context.Context, req model.RatingCreateRequest) (*model.RatingDTO, error)
}

// Profile backs the ratings section of the profile screen.
type Profile struct {
	mu       sync.RWMutex
	api      RatingAPI
	catalog  *sample.Catalog
	ratings  []model.Rating
	notifier observe.Notifier
	logger   zerolog.Logger
}

// NewProfile creates a profile with no ratings.
func NewProfile(api RatingAPI, catalog *sample.Catalog, logger zerolog.Logger) *Profile {
	if catalog == nil {
		catalog = sample.Default(time.Now())
	}
	return &Profile{
		api:     api,
		catalog: catalog,
		ratings: []model.Rating{},
		logger:  logger.With().Str("viewmodel", "profile").Logger(),
	}
}

// Subscribe returns a channel signalled on every state change.
func (p *Profile) Subscribe() (<-chan struct{}, func()) {
	return p.notifier.Subscribe()
}

// LoadMock shows the sample ratings.
func (p *Profile) LoadMock() {
	p.set(p.catalog.Ratings)
}

// LoadFromAPI shows the ratings of dish, crediting them to its cook. On
// failure the sample ratings are shown and the error is returned.
func (p *Profile) LoadFromAPI(ctx context.Context, dish model.Dish) Result[[]model.Rating] {
	dtos, err := p.api.ListRatings(ctx, dish.ID)
	if err != nil {
		p.logger.Warn().Err(err).Msg("failed to load ratings, showing sample data")
		p.LoadMock()
		return Result[[]model.Rating]{Data: p.Ratings(), Source: SourceSample, Err: err}
	}

	ratings := make([]model.Rating, 0, len(dtos))
	for _, r := range dtos {
		ratings = append(ratings, model.RatingFromDTO(r, dish.CookID))
	}
	p.set(ratings)
	return Result[[]model.Rating]{Data: p.Ratings(), Source: SourceAPI}
}

// Rate submits a star rating of dish. Stars outside 1..5 are rejected
// with model.ErrInvalidStars before anything is sent.
func (p *Profile) Rate(ctx context.Context, dish model.Dish, stars int, comment string) (model.Rating, error) {
	if !model.ValidStars(stars) {
		return model.Rating{}, model.ErrInvalidStars
	}

	req := model.RatingCreateRequest{DishID: dish.ID, Score: stars}
	if c := strings.TrimSpace(comment); c != "" {
		req.Comment = &c
	}

	dto, err := p.api.AddRating(ctx, req)
	if err != nil {
		p.logger.Error().Err(err).Str("dish_id", dish.ID.String()).Msg("failed to submit rating")
		return model.Rating{}, fmt.Errorf("failed to submit rating: %w", err)
	}

	rating := model.RatingFromDTO(*dto, dish.CookID)
	p.mu.Lock()
	p.ratings = append([]model.Rating{rating}, p.ratings...)
	p.mu.Unlock()
	p.notifier.Notify()
	return rating, nil
}

// Ratings returns the loaded ratings.
func (p *Profile) Ratings() []model.Rating {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]model.Rating{}, p.ratings...)
}

// AverageStars returns the mean star count, or false when there are no
// ratings.
func (p *Profile) AverageStars() (float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.ratings) == 0 {
		return 0, false
	}
	total := 0
	for _, r := range p.ratings {
		total += r.Stars
	}
	return float64(total) / float64(len(p.ratings)), true
}

func (p *Profile) set(ratings []model.Rating) {
	p.mu.Lock()
	p.ratings = append([]model.Rating{}, ratings...)
	p.mu.Unlock()
	p.notifier.Notify()
}
