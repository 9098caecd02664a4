package integration

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"homebite/internal/auth"
	"homebite/internal/client"
	"homebite/internal/server"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// SeedPassword signs in every seeded account.
const SeedPassword = "password123"

// SetupTestServer starts the mock marketplace API seeded with the built-in
// catalogue.
func SetupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	h, err := server.NewHandler(context.Background(), server.Options{
		JWTSecret:    "integration-test-secret",
		TokenTTL:     time.Hour,
		SeedPassword: SeedPassword,
	}, zerolog.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

// NewTestClient returns a client for srv whose token lives in store.
func NewTestClient(t *testing.T, srv *httptest.Server, store auth.Store) *client.Client {
	t.Helper()

	c, err := client.New(client.Config{
		BaseURL: srv.URL + "/api",
		Timeout: 5 * time.Second,
	}, auth.NewSession(store, zerolog.Nop()), zerolog.Nop())
	require.NoError(t, err)
	return c
}

// SetupTestRedis starts a Redis container and returns a connected client.
func SetupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("failed to get redis endpoint: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = rdb.Close() })

	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Fatalf("failed to ping redis: %v", err)
	}
	return rdb
}
