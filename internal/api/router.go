package api

import (
	"bizdash-backend/internal/config"
	"bizdash-backend/internal/handlers"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// defaultRequestTimeout bounds every non-streaming request.
const defaultRequestTimeout = 60 * time.Second

// RouterDependencies holds all the dependencies required by the router setup,
// primarily handlers and configuration.
type RouterDependencies struct {
	ChatHandler       *handlers.ChatHandlers
	ProjectionHandler *handlers.ProjectionHandlers
	DashboardHandler  *handlers.DashboardHandlers
	Config            *config.Config
	Logger            *slog.Logger
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	logger := deps.Logger.With("component", "router")
	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	// --- Public Routes ---
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/v1", func(r chi.Router) {
		if deps.Config.JWTSecret != "" {
			r.Use(JwtAuthMiddleware(deps.Config.JWTSecret, logger))
		} else {
			logger.Warn("JWT_SECRET is not set, /v1 routes are public")
		}

		// The chat stream has its own, shorter deadline.
		if deps.ChatHandler != nil {
			r.With(middleware.Timeout(deps.Config.ChatMaxDuration)).Post("/chat", deps.ChatHandler.HandleChat)
		} else {
			logger.Warn("ChatHandler dependency is nil, skipping /v1/chat route")
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(defaultRequestTimeout))

			if deps.ProjectionHandler != nil {
				r.Post("/projections", deps.ProjectionHandler.HandleProject)
				r.Post("/insights", deps.ProjectionHandler.HandleInsight)
			} else {
				logger.Warn("ProjectionHandler dependency is nil, skipping /v1/projections and /v1/insights routes")
			}

			if deps.DashboardHandler != nil {
				r.Get("/dashboard", deps.DashboardHandler.HandleGetDashboard)
				r.Get("/companies", deps.DashboardHandler.HandleListCompanies)
			} else {
				logger.Warn("DashboardHandler dependency is nil, skipping /v1/dashboard and /v1/companies routes")
			}
		})
	})

	return r
}
