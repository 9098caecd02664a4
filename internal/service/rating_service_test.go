package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"homebite/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRatingService_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	user := uuid.New()
	dish := &model.DishDTO{ID: uuid.New()}
	missing := uuid.New()

	tests := []struct {
		name    string
		req     *model.RatingCreateRequest
		setup   func(*MockRatingRepository, *MockDishRepository)
		wantErr error
	}{
		{
			name: "Success",
			req:  &model.RatingCreateRequest{DishID: dish.ID, Score: 5, Comment: strPtr("Great")},
			setup: func(r *MockRatingRepository, d *MockDishRepository) {
				d.On("GetByID", ctx, dish.ID).Return(dish, nil)
				r.On("Create", ctx, mock.AnythingOfType("*model.RatingDTO")).Return(nil)
			},
		},
		{
			name:    "Missing dish id",
			req:     &model.RatingCreateRequest{Score: 5},
			setup:   func(*MockRatingRepository, *MockDishRepository) {},
			wantErr: model.ErrMissingDishID,
		},
		{
			name:    "Score too high",
			req:     &model.RatingCreateRequest{DishID: dish.ID, Score: 6},
			setup:   func(*MockRatingRepository, *MockDishRepository) {},
			wantErr: model.ErrInvalidStars,
		},
		{
			name:    "Score zero",
			req:     &model.RatingCreateRequest{DishID: dish.ID, Score: 0},
			setup:   func(*MockRatingRepository, *MockDishRepository) {},
			wantErr: model.ErrInvalidStars,
		},
		{
			name: "Unknown dish",
			req:  &model.RatingCreateRequest{DishID: missing, Score: 3},
			setup: func(_ *MockRatingRepository, d *MockDishRepository) {
				d.On("GetByID", ctx, missing).Return(nil, nil)
			},
			wantErr: model.ErrDishNotFound,
		},
		{
			name: "Already rated",
			req:  &model.RatingCreateRequest{DishID: dish.ID, Score: 4},
			setup: func(r *MockRatingRepository, d *MockDishRepository) {
				d.On("GetByID", ctx, dish.ID).Return(dish, nil)
				r.On("Create", ctx, mock.Anything).Return(model.ErrAlreadyRated)
			},
			wantErr: model.ErrAlreadyRated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRatings := new(MockRatingRepository)
			mockDishes := new(MockDishRepository)
			tt.setup(mockRatings, mockDishes)

			svc := NewRatingService(mockRatings, mockDishes, zerolog.Nop()).(*ratingService)
			svc.now = func() time.Time { return now }

			rating, err := svc.Create(ctx, user, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, rating)
			} else {
				require.NoError(t, err)
				assert.Equal(t, user, rating.UserID)
				assert.Equal(t, tt.req.Score, rating.Score)
				assert.True(t, now.Equal(rating.CreatedAt.Time))
			}
			mockRatings.AssertExpectations(t)
			mockDishes.AssertExpectations(t)
		})
	}
}

func TestRatingService_ListByDish(t *testing.T) {
	ctx := context.Background()
	dishID := uuid.New()
	want := []model.RatingDTO{{ID: uuid.New(), DishID: dishID, Score: 5}}

	mockRatings := new(MockRatingRepository)
	mockRatings.On("ListByDish", ctx, dishID).Return(want, nil)
	svc := NewRatingService(mockRatings, new(MockDishRepository), zerolog.Nop())

	got, err := svc.ListByDish(ctx, dishID)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.ListByDish(ctx, uuid.Nil)
	assert.ErrorIs(t, err, model.ErrMissingDishID)

	broken := uuid.New()
	mockRatings.On("ListByDish", ctx, broken).Return(nil, errors.New("boom"))
	_, err = svc.ListByDish(ctx, broken)
	assert.ErrorContains(t, err, "failed to list ratings")
}
