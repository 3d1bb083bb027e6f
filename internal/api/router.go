package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	mw "github.com/oracleball/oracleball/internal/api/middleware"
	"github.com/oracleball/oracleball/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	Auth      *mw.Auth
	RateLimit *mw.RateLimit
	CORS      func(http.Handler) http.Handler

	HealthHandler http.HandlerFunc

	ListMatchesHandler  http.HandlerFunc
	OracleStatusHandler http.HandlerFunc
	PredictHandler      http.HandlerFunc

	SyncFixturesHandler http.HandlerFunc
	CreateKeyHandler    http.HandlerFunc
	ListKeysHandler     http.HandlerFunc
	RevokeKeyHandler    http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	if deps.CORS != nil {
		r.Use(deps.CORS)
	}

	// Public health check
	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))

	// Public oracle surface, rate limited by client IP
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimit.Limit)

		r.Get("/api/v1/matches", orNotImplemented(deps.ListMatchesHandler))
		r.Get("/api/v1/oracle", orNotImplemented(deps.OracleStatusHandler))
		r.Post("/api/v1/oracle/predict", orNotImplemented(deps.PredictHandler))
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.Authenticate)
		r.Use(deps.Auth.RequireScope("admin"))

		r.Post("/api/v1/admin/fixtures/sync", orNotImplemented(deps.SyncFixturesHandler))
		r.Post("/api/v1/admin/keys", orNotImplemented(deps.CreateKeyHandler))
		r.Get("/api/v1/admin/keys", orNotImplemented(deps.ListKeysHandler))
		r.Delete("/api/v1/admin/keys/{keyID}", orNotImplemented(deps.RevokeKeyHandler))
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
// Optional features (the fixtures feed) leave their handler unset.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not available", nil)
	}
}
