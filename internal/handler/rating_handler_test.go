package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"homebite/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRatingHandler_List(t *testing.T) {
	logger := zerolog.Nop()
	dishID := uuid.New()
	ratings := []model.RatingDTO{{ID: uuid.New(), DishID: dishID, Score: 5}}

	tests := []struct {
		name           string
		query          string
		expectService  bool
		expectedStatus int
		expectedCode   string
	}{
		{name: "Success", query: "?dish_id=" + dishID.String(), expectService: true, expectedStatus: http.StatusOK},
		{name: "Missing dish id", query: "", expectedStatus: http.StatusBadRequest, expectedCode: model.ErrCodeMissingField},
		{name: "Malformed dish id", query: "?dish_id=abc", expectedStatus: http.StatusBadRequest, expectedCode: model.ErrCodeInvalidQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockRatingService)
			if tt.expectService {
				mockService.On("ListByDish", mock.Anything, dishID).Return(ratings, nil)
			}

			handler := NewRatingHandler(mockService, logger)
			req := httptest.NewRequest(http.MethodGet, "/api/ratings"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.List(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestRatingHandler_Create(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()
	dishID := uuid.New()

	tests := []struct {
		name           string
		mockReturn     *model.RatingDTO
		mockError      error
		expectedStatus int
	}{
		{name: "Success", mockReturn: &model.RatingDTO{ID: uuid.New(), UserID: userID, DishID: dishID, Score: 4}, expectedStatus: http.StatusOK},
		{name: "Already rated", mockError: model.ErrAlreadyRated, expectedStatus: http.StatusBadRequest},
		{name: "Invalid stars", mockError: model.ErrInvalidStars, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockRatingService)
			mockService.On("Create", mock.Anything, userID, &model.RatingCreateRequest{DishID: dishID, Score: 4}).
				Return(tt.mockReturn, tt.mockError)

			handler := NewRatingHandler(mockService, logger)
			body, _ := json.Marshal(model.RatingCreateRequest{DishID: dishID, Score: 4})
			req := asUser(httptest.NewRequest(http.MethodPost, "/api/ratings", bytes.NewBuffer(body)), userID)
			w := httptest.NewRecorder()

			handler.Create(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.mockReturn != nil {
				var got model.RatingDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
				assert.Equal(t, tt.mockReturn.ID, got.ID)
			}
			mockService.AssertExpectations(t)
		})
	}
}
