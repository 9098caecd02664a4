package router

import (
	"net/http"

	"homebite/internal/handler"
	"homebite/internal/middleware"
	"homebite/internal/telemetry"

	"github.com/rs/zerolog"
)

// Handlers bundles the HTTP handlers served by the API.
type Handlers struct {
	Auth    *handler.AuthHandler
	Dishes  *handler.DishHandler
	Orders  *handler.OrderHandler
	Ratings *handler.RatingHandler
	Meta    *handler.MetaHandler
}

// New creates a new HTTP router with all routes and middleware configured.
// Routes that act on behalf of an account require a bearer token; browsing
// dishes, ratings and reference data does not.
func New(h Handlers, auth middleware.Authenticator, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	authed := middleware.BearerAuth(auth, logger)

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	public := func(pattern string, fn http.HandlerFunc) {
		handle(mux, pattern, fn)
	}
	private := func(pattern string, fn http.HandlerFunc) {
		handle(mux, pattern, authed(fn))
	}

	public("POST /api/auth/signup", h.Auth.Signup)
	public("POST /api/auth/login", h.Auth.Login)
	private("GET /api/auth/me", h.Auth.Me)

	public("GET /api/dishes", h.Dishes.List)
	private("POST /api/dishes", h.Dishes.Create)

	private("GET /api/orders", h.Orders.List)
	private("POST /api/orders", h.Orders.Create)

	public("GET /api/ratings", h.Ratings.List)
	private("POST /api/ratings", h.Ratings.Create)

	public("GET /api/meta/campuses", h.Meta.Campuses)
	public("GET /api/meta/tags", h.Meta.Tags)
	public("POST /api/ai/chat", h.Meta.Chat)
	private("POST /api/hire-chef", h.Meta.HireChef)

	// Apply middleware in order: Tracing -> Recovery -> RequestID -> Logging -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = telemetry.Handler(handler, "homebite-api")

	return handler
}

// handle registers pattern both with and without a trailing slash.
func handle(mux *http.ServeMux, pattern string, h http.Handler) {
	h = telemetry.WithHTTPRoute(h)
	mux.Handle(pattern, h)
	mux.Handle(pattern+"/{$}", h)
}
