package handler

import (
	"net/http"

	"homebite/internal/model"
	"homebite/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RatingHandler handles rating HTTP requests.
type RatingHandler struct {
	service service.RatingService
	logger  zerolog.Logger
}

// NewRatingHandler creates a new rating handler.
func NewRatingHandler(service service.RatingService, logger zerolog.Logger) *RatingHandler {
	return &RatingHandler{
		service: service,
		logger:  logger.With().Str("handler", "rating").Logger(),
	}
}

// List handles GET /api/ratings?dish_id= requests.
func (h *RatingHandler) List(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("dish_id")
	if raw == "" {
		writeServiceError(w, model.ErrMissingDishID, h.logger)
		return
	}

	dishID, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidQuery, "invalid dish_id format", h.logger)
		return
	}

	ratings, err := h.service.ListByDish(r.Context(), dishID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, ratings, h.logger)
}

// Create handles POST /api/ratings requests.
func (h *RatingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	var req model.RatingCreateRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	rating, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, rating, h.logger)
}
