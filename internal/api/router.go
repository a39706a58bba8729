package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/campuswatch/campuswatch-be/internal/api/handlers"
	"github.com/campuswatch/campuswatch-be/internal/auth"
	"github.com/campuswatch/campuswatch-be/internal/models"
	"github.com/campuswatch/campuswatch-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(tokens *auth.Service, userService services.UserServiceProvider, reportService services.ReportServiceProvider, stats handlers.StatsProvider, corsOrigin string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens)
	reportHandler := handlers.NewReportHandler(reportService, stats)

	anyRole := []models.Role{models.RoleCitizen, models.RolePolice, models.RoleAdmin}

	r.Route("/api", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(tokens.Authenticate())
				r.Use(auth.RequireRoles(anyRole...))
				r.Get("/me", userHandler.GetMe)
			})
		})

		r.Route("/auth", func(r chi.Router) {
			r.Use(tokens.Authenticate())
			r.Get("/validatetoken", userHandler.ValidateToken)
		})

		r.Route("/crime", func(r chi.Router) {
			r.Use(tokens.Authenticate())

			// Reads are open to every authenticated role. Fixed paths are
			// registered before the {id} wildcard.
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRoles(anyRole...))
				r.Get("/", reportHandler.GetAll)
				r.Get("/nearby", reportHandler.GetNearby)
				r.Get("/stats", reportHandler.GetStats)
				r.Get("/{id}", reportHandler.Get)
			})

			// Only citizens file reports
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRoles(models.RoleCitizen))
				r.Post("/", reportHandler.Create)
			})

			// Only police and admins verify them
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRoles(models.RolePolice, models.RoleAdmin))
				r.Put("/{id}/verify", reportHandler.Verify)
			})
		})
	})

	return r
}
