package handler

import (
	"bytes"
	"encoding/json"
	"errors"
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

func TestMetaHandler(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()

	mockService := new(MockMetaService)
	mockService.On("Campuses", mock.Anything).Return([]model.Campus{{ID: uuid.New(), Name: "Texas A&M University"}}, nil)
	mockService.On("Tags", mock.Anything).Return(nil, errors.New("boom"))
	mockService.On("Chat", mock.Anything, "hi").Return(&model.ChatResponse{Reply: "hello"}, nil)
	mockService.On("HireChef", mock.Anything, userID, mock.AnythingOfType("*model.HireChefRequest")).
		Return(&model.HireChefResponse{OK: true}, nil)

	handler := NewMetaHandler(mockService, logger)

	t.Run("Campuses", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Campuses(w, httptest.NewRequest(http.MethodGet, "/api/meta/campuses", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var campuses []model.Campus
		require.NoError(t, json.NewDecoder(w.Body).Decode(&campuses))
		assert.Equal(t, "Texas A&M University", campuses[0].Name)
	})

	t.Run("Tags failure", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Tags(w, httptest.NewRequest(http.MethodGet, "/api/meta/tags", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("Chat", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Chat(w, httptest.NewRequest(http.MethodPost, "/api/ai/chat", bytes.NewBufferString(`{"prompt":"hi"}`)))

		assert.Equal(t, http.StatusOK, w.Code)
		var reply model.ChatResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&reply))
		assert.Equal(t, "hello", reply.Reply)
	})

	t.Run("Hire chef", func(t *testing.T) {
		body := `{"title":"Leftovers","tags":[],"pantry":["rice"],"imagesBase64":[]}`
		req := asUser(httptest.NewRequest(http.MethodPost, "/api/hire-chef", bytes.NewBufferString(body)), userID)
		w := httptest.NewRecorder()
		handler.HireChef(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	})

	mockService.AssertExpectations(t)
}
