// Package router assembles the HTTP routing table.
package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/sableashish494/ashish-primaspot-main/internal/handler"
	"github.com/sableashish494/ashish-primaspot-main/internal/middleware"
)

// Config holds the handlers the router wires up.
type Config struct {
	Profile *handler.ProfileHandler
	Image   *handler.ImageHandler
	Status  *handler.StatusHandler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	if cfg.Status != nil {
		r.Get("/api/status", cfg.Status.Status)
	}

	if cfg.Image != nil {
		r.Get("/api/image", cfg.Image.Proxy)
	}

	if cfg.Profile != nil {
		r.Post("/api/fetch-profile", cfg.Profile.FetchProfile)

		r.Route("/api/db", func(r chi.Router) {
			r.Get("/users", cfg.Profile.ListUsers)
			r.Get("/user/{username}", cfg.Profile.GetUser)
			r.Get("/user/{username}/exists", cfg.Profile.UserExists)
			r.Get("/analytics/{username}", cfg.Profile.GetAnalytics)
		})
	}

	return r
}
