package handler

import (
	"net/http"
	"strings"

	"homebite/internal/model"
	"homebite/internal/repository"
	"homebite/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DishHandler handles dish-related HTTP requests.
type DishHandler struct {
	service service.DishService
	logger  zerolog.Logger
}

// NewDishHandler creates a new dish handler.
func NewDishHandler(service service.DishService, logger zerolog.Logger) *DishHandler {
	return &DishHandler{
		service: service,
		logger:  logger.With().Str("handler", "dish").Logger(),
	}
}

// List handles GET /api/dishes requests. Supported query parameters are
// campus_id, q and tags (comma separated).
func (h *DishHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repository.DishFilter{Query: query.Get("q")}

	if raw := query.Get("campus_id"); raw != "" {
		campusID, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidQuery, "invalid campus_id format", h.logger)
			return
		}
		filter.CampusID = &campusID
	}

	for _, tag := range strings.Split(query.Get("tags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			filter.Tags = append(filter.Tags, tag)
		}
	}

	dishes, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	h.logger.Debug().Int("count", len(dishes)).Msg("dishes retrieved")
	writeJSON(w, http.StatusOK, dishes, h.logger)
}

// Create handles POST /api/dishes requests.
func (h *DishHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	var req model.DishCreateRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	dish, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, dish, h.logger)
}
