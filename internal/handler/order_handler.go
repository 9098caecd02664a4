package handler

import (
	"net/http"

	"homebite/internal/model"
	"homebite/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	var req model.OrderCreateRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	order, err := h.service.CreateOrder(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order, h.logger)
}

// List handles GET /api/orders?as=buyer|cook requests.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.logger)
	if !ok {
		return
	}

	as := r.URL.Query().Get("as")
	switch as {
	case "":
		as = service.AsBuyer
	case service.AsBuyer, service.AsCook:
	default:
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidQuery, "as must be buyer or cook", h.logger)
		return
	}

	orders, err := h.service.List(r.Context(), userID, as)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders, h.logger)
}
