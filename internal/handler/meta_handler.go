package handler

import (
	"net/http"

	"homebite/internal/model"
	"homebite/internal/service"

	"github.com/rs/zerolog"
)

// MetaHandler serves reference data and the assistant endpoints.
type MetaHandler struct {
	service service.MetaService
	logger  zerolog.Logger
}

// NewMetaHandler creates a new meta handler.
func NewMetaHandler(service service.MetaService, logger zerolog.Logger) *MetaHandler {
	return &MetaHandler{
		service: service,
		logger:  logger.With().Str("handler", "meta").Logger(),
	}
}

// Campuses handles GET /api/meta/campuses requests.
func (h *MetaHandler) Campuses(w http.ResponseWriter, r *http.Request) {
	campuses, err := h.service.Campuses(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, campuses, h.logger)
}

// Tags handles GET /api/meta/tags requests.
func (h *MetaHandler) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.Tags(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, tags, h.logger)
}

// Chat handles POST /api/ai/chat requests.
func (h *MetaHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	reply, err := h.service.Chat(r.Context(), req.Prompt)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, reply, h.logger)
}

// HireChef handles POST /api/hire-chef requests.
func (h *MetaHandler) HireChef(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	var req model.HireChefRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	ack, err := h.service.HireChef(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, ack, h.logger)
}
