package api

import (
	"net/http"

	"github.com/futig/lifestory-backend/internal/api/catalog"
	"github.com/futig/lifestory-backend/internal/api/docs"
	"github.com/futig/lifestory-backend/internal/api/invitation"
	"github.com/futig/lifestory-backend/internal/api/middleware"
	sessionapi "github.com/futig/lifestory-backend/internal/api/session"
	storybookapi "github.com/futig/lifestory-backend/internal/api/storybook"
	"github.com/futig/lifestory-backend/internal/config"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers served by the router
type Handlers struct {
	Catalog    *catalog.Handler
	Session    *sessionapi.Handler
	Invitation *invitation.Handler
	Storybook  *storybookapi.Handler
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *Handlers, cfg *config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                   // Recover from panics
	r.Use(chimiddleware.RequestID)                   // Add request ID
	r.Use(middleware.Logger(logger))                 // Log requests
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))   // Handle CORS
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout)) // Generation runs several model calls in sequence

	rl := cfg.RateLimitCfg
	generationLimiter := middleware.NewRateLimiter("generation", rl.GenerationInterval, rl.GenerationBurst, rl.IdleExpiry)
	inviteLimiter := middleware.NewRateLimiter("invitation", rl.InviteInterval, rl.InviteBurst, rl.IdleExpiry)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	catalog.RegisterRoutes(r, h.Catalog)
	r.Route("/sessions", func(r chi.Router) {
		sessionapi.RegisterRoutes(r, h.Session, inviteLimiter.PerToken("token"))
		storybookapi.RegisterSessionRoutes(r, h.Storybook, generationLimiter.PerToken("token"))
	})
	invitation.RegisterRoutes(r, h.Invitation)
	storybookapi.RegisterSharedRoutes(r, h.Storybook)

	return r
}
