package service

import (
	"context"
	"fmt"

	"homebite/internal/model"
	"homebite/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// metaService implements MetaService.
type metaService struct {
	campuses repository.CampusRepository
	dishes   repository.DishRepository
	logger   zerolog.Logger
}

// NewMetaService creates a new meta service.
func NewMetaService(campuses repository.CampusRepository, dishes repository.DishRepository, logger zerolog.Logger) MetaService {
	return &metaService{
		campuses: campuses,
		dishes:   dishes,
		logger:   logger.With().Str("service", "meta").Logger(),
	}
}

func (s *metaService) Campuses(ctx context.Context) ([]model.Campus, error) {
	campuses, err := s.campuses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list campuses: %w", err)
	}
	return campuses, nil
}

func (s *metaService) Tags(ctx context.Context) ([]string, error) {
	tags, err := s.dishes.Tags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// Chat echoes the prompt; no assistant backend is configured.
func (s *metaService) Chat(_ context.Context, prompt string) (*model.ChatResponse, error) {
	return &model.ChatResponse{
		Reply: "AI agent is not configured yet. You said: " + prompt,
	}, nil
}

// HireChef acknowledges the request. Matching cooks is out of scope for
// the local API, so requests are only logged.
func (s *metaService) HireChef(_ context.Context, userID uuid.UUID, req *model.HireChefRequest) (*model.HireChefResponse, error) {
	if req == nil {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Request body is required")
	}
	s.logger.Info().
		Str("user_id", userID.String()).
		Str("title", req.Title).
		Int("pantry_items", len(req.Pantry)).
		Int("images", len(req.ImagesBase64)).
		Msg("hire-a-chef request received")
	return &model.HireChefResponse{OK: true}, nil
}
