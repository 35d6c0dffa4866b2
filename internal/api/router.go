package api

import (
	"net/http"

	"github.com/dom/softball-lineup/internal/api/handlers"
	"github.com/dom/softball-lineup/internal/api/middleware"
	"github.com/dom/softball-lineup/internal/metrics"
	"github.com/dom/softball-lineup/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, recorder *metrics.Recorder) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)
	r.Use(middleware.Metrics(recorder))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", recorder.Handler())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	teamHandler := handlers.NewTeamHandler(services.Roster)
	planHandler := handlers.NewPlanHandler(services.Lineup)
	requireCoach := middleware.Auth(services.Auth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(requireCoach)
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		r.Route("/teams", func(r chi.Router) {
			r.With(requireCoach).Post("/", teamHandler.Create)
			r.With(requireCoach).Get("/", teamHandler.List)

			r.Route("/{teamID}", func(r chi.Router) {
				// Anyone with the team link can read the roster and build plans
				r.Get("/", teamHandler.Get)
				r.Post("/precheck", planHandler.Precheck)
				r.Post("/plans", planHandler.Generate)
				r.Get("/shared", planHandler.Shared)

				// Roster changes are limited to the team's coach
				r.Group(func(r chi.Router) {
					r.Use(requireCoach)
					r.Delete("/", teamHandler.Delete)
					r.Post("/players", teamHandler.AddPlayer)
					r.Put("/players/{playerID}", teamHandler.UpdatePlayer)
					r.Delete("/players/{playerID}", teamHandler.RemovePlayer)
				})
			})
		})

		r.Route("/plans/{planID}", func(r chi.Router) {
			r.Get("/", planHandler.Get)
			r.Post("/batting/move", planHandler.MoveBatter)
			r.Post("/fielding/swap", planHandler.SwapFielding)
			r.Get("/share", planHandler.Share)
		})
	})

	return r
}
