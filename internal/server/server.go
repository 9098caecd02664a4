// Package server assembles the mock marketplace API from its layers.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"homebite/internal/handler"
	"homebite/internal/repository"
	"homebite/internal/router"
	"homebite/internal/sample"
	"homebite/internal/service"

	"github.com/rs/zerolog"
)

// Options configures the assembled API.
type Options struct {
	Catalog      *sample.Catalog // seed data; nil uses the built-in catalogue
	JWTSecret    string
	TokenTTL     time.Duration
	SeedPassword string
}

// NewHandler builds in-memory repositories seeded from opts.Catalog and
// returns the routed API.
func NewHandler(ctx context.Context, opts Options, logger zerolog.Logger) (http.Handler, error) {
	catalog := opts.Catalog
	if catalog == nil {
		catalog = sample.Default(time.Now())
	}

	repos := repository.NewMemory(service.DefaultCampuses(), logger)
	if err := service.Seed(ctx, repos, catalog, opts.SeedPassword, logger); err != nil {
		return nil, fmt.Errorf("failed to seed repositories: %w", err)
	}

	tokens := service.NewTokenIssuer(opts.JWTSecret, opts.TokenTTL)
	authService := service.NewAuthService(repos.Users, tokens, logger)
	dishService := service.NewDishService(repos.Dishes, repos.Ratings, repos.Users, logger)
	orderService := service.NewOrderService(repos.Orders, repos.Dishes, logger)
	ratingService := service.NewRatingService(repos.Ratings, repos.Dishes, logger)
	metaService := service.NewMetaService(repos.Campuses, repos.Dishes, logger)

	return router.New(router.Handlers{
		Auth:    handler.NewAuthHandler(authService, logger),
		Dishes:  handler.NewDishHandler(dishService, logger),
		Orders:  handler.NewOrderHandler(orderService, logger),
		Ratings: handler.NewRatingHandler(ratingService, logger),
		Meta:    handler.NewMetaHandler(metaService, logger),
	}, authService, logger), nil
}
