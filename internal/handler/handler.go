package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"homebite/internal/middleware"
	"homebite/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// statusByCode maps domain error codes to HTTP status codes. Codes not
// listed here are treated as internal errors.
var statusByCode = map[string]int{
	model.ErrCodeInvalidJSON:        http.StatusBadRequest,
	model.ErrCodeInvalidQuery:       http.StatusBadRequest,
	model.ErrCodeMissingField:       http.StatusBadRequest,
	model.ErrCodeInvalidStars:       http.StatusBadRequest,
	model.ErrCodeInvalidPrice:       http.StatusBadRequest,
	model.ErrCodeEmptyOrder:         http.StatusBadRequest,
	model.ErrCodeAlreadyRated:       http.StatusBadRequest,
	model.ErrCodeEmailRegistered:    http.StatusBadRequest,
	model.ErrCodeInvalidRole:        http.StatusBadRequest,
	model.ErrCodePickupInPast:       http.StatusBadRequest,
	model.ErrCodeDishNotFound:       http.StatusNotFound,
	model.ErrCodeUserNotFound:       http.StatusNotFound,
	model.ErrCodeInvalidCredentials: http.StatusUnauthorized,
	model.ErrCodeUnauthorised:       http.StatusUnauthorized,
}

// writeJSON writes a JSON response with the given status code. The status
// is already sent when encoding fails, so the failure is only logged.
func writeJSON(w http.ResponseWriter, status int, data any, logger zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Int("status", status).Msg("failed to encode response")
	}
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Detail: message}, logger)
}

// writeServiceError translates a service error into a response. Domain
// errors keep their message; anything else becomes a generic 500.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status, ok := statusByCode[domainErr.Code]
		if ok {
			writeError(w, status, domainErr.Code, domainErr.Message, logger)
			return
		}
	}

	logger.Error().Err(err).Msg("unexpected service error")
	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "Internal server error", logger)
}

// decodeBody decodes the JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}
	return true
}

// currentUser returns the authenticated account, writing a 401 when the
// route was not wrapped in the bearer middleware.
func currentUser(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (uuid.UUID, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, model.ErrNotAuthenticated.Message, logger)
		return uuid.Nil, false
	}
	return id, true
}
