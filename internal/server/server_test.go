package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"homebite/internal/model"
	"homebite/internal/sample"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	h, err := NewHandler(context.Background(), Options{
		JWTSecret:    "server-test-secret-value",
		TokenTTL:     time.Hour,
		SeedPassword: "password123",
	}, zerolog.Nop())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"ava@uni.edu","password":"password123"}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")
}

func TestNewHandler_DuplicateSeedUser(t *testing.T) {
	catalog := sample.Default(time.Now())
	catalog.User.Email = "m.rossi@homebite.local"
	catalog.User.Roles = []model.UserRole{model.RoleCustomer}

	_, err := NewHandler(context.Background(), Options{
		Catalog:      catalog,
		JWTSecret:    "server-test-secret-value",
		TokenTTL:     time.Hour,
		SeedPassword: "password123",
	}, zerolog.Nop())

	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrEmailRegistered)
}
