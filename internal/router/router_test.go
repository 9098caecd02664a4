package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homebite/internal/handler"
	"homebite/internal/model"
	"homebite/internal/repository"
	"homebite/internal/sample"
	"homebite/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := zerolog.Nop()

	repos := repository.NewMemory(service.DefaultCampuses(), logger)
	require.NoError(t, service.Seed(context.Background(), repos, sample.Default(time.Now()), "password123", logger))

	auth := service.NewAuthService(repos.Users, service.NewTokenIssuer("router-test-secret-value", time.Hour), logger)
	h := Handlers{
		Auth:    handler.NewAuthHandler(auth, logger),
		Dishes:  handler.NewDishHandler(service.NewDishService(repos.Dishes, repos.Ratings, repos.Users, logger), logger),
		Orders:  handler.NewOrderHandler(service.NewOrderService(repos.Orders, repos.Dishes, logger), logger),
		Ratings: handler.NewRatingHandler(service.NewRatingService(repos.Ratings, repos.Dishes, logger), logger),
		Meta:    handler.NewMetaHandler(service.NewMetaService(repos.Campuses, repos.Dishes, logger), logger),
	}
	return New(h, auth, logger)
}

func serve(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	h := newTestRouter(t)

	w := serve(t, h, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "healthy"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_PublicAndPrivateRoutes(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{name: "List dishes", method: http.MethodGet, path: "/api/dishes", expectedStatus: http.StatusOK},
		{name: "List dishes with trailing slash", method: http.MethodGet, path: "/api/dishes/", expectedStatus: http.StatusOK},
		{name: "List ratings", method: http.MethodGet, path: "/api/ratings?dish_id=" + sample.BasilTofuID.String(), expectedStatus: http.StatusOK},
		{name: "Campuses", method: http.MethodGet, path: "/api/meta/campuses", expectedStatus: http.StatusOK},
		{name: "Tags", method: http.MethodGet, path: "/api/meta/tags", expectedStatus: http.StatusOK},
		{name: "Me requires a token", method: http.MethodGet, path: "/api/auth/me", expectedStatus: http.StatusUnauthorized},
		{name: "Orders require a token", method: http.MethodGet, path: "/api/orders", expectedStatus: http.StatusUnauthorized},
		{name: "Creating dishes requires a token", method: http.MethodPost, path: "/api/dishes", expectedStatus: http.StatusUnauthorized},
		{name: "Hire chef requires a token", method: http.MethodPost, path: "/api/hire-chef", expectedStatus: http.StatusUnauthorized},
		{name: "Wrong method", method: http.MethodDelete, path: "/api/dishes", expectedStatus: http.StatusMethodNotAllowed},
		{name: "Unknown route", method: http.MethodGet, path: "/api/recipes", expectedStatus: http.StatusNotFound},
		{name: "Preflight", method: http.MethodOptions, path: "/api/orders", expectedStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, h, tt.method, tt.path, "", nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouter_BuyerFlow(t *testing.T) {
	h := newTestRouter(t)

	// Sign in as the seeded catalogue user
	w := serve(t, h, http.MethodPost, "/api/auth/login", "", model.LoginRequest{Email: "ava@uni.edu", Password: "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	var login model.TokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&login))
	token := login.AccessToken

	w = serve(t, h, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(t, h, http.MethodGet, "/api/dishes?q=pomodoro", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dishes []model.DishDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dishes))
	require.Len(t, dishes, 1)

	w = serve(t, h, http.MethodPost, "/api/orders", token, model.OrderCreateRequest{
		Items: []model.OrderItemIn{{DishID: dishes[0].ID, Quantity: 2}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var order model.OrderDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&order))
	assert.Equal(t, 17.0, order.Total)
	assert.Equal(t, sample.RossiID, *order.CookID)

	w = serve(t, h, http.MethodGet, "/api/orders?as=buyer", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []model.OrderDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&orders))
	assert.Len(t, orders, 3)
	assert.Equal(t, order.ID, orders[0].ID)

	w = serve(t, h, http.MethodPost, "/api/ratings", token, model.RatingCreateRequest{DishID: dishes[0].ID, Score: 5})
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(t, h, http.MethodPost, "/api/ratings", token, model.RatingCreateRequest{DishID: dishes[0].ID, Score: 4})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errResp model.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
	assert.Equal(t, "Already rated", errResp.Detail)

	w = serve(t, h, http.MethodPost, "/api/orders", token, model.OrderCreateRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_WrongPassword(t *testing.T) {
	h := newTestRouter(t)

	w := serve(t, h, http.MethodPost, "/api/auth/login", "", model.LoginRequest{Email: "ava@uni.edu", Password: "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var errResp model.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
	assert.Equal(t, "Invalid credentials", errResp.Detail)
}
