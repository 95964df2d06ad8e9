package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/weatherlog/weatherlog-go/internal/middleware"
)

// RouterConfig holds everything the HTTP router is built from.
type RouterConfig struct {
	Auth       *AuthHandler
	Locations  *LocationHandler
	Weather    *WeatherHandler
	Verifier   middleware.TokenVerifier
	CORSOrigin string
}

// NewRouter builds the chi router with all API routes.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", cfg.Auth.HandleRegister)
		r.Post("/login", cfg.Auth.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuth(cfg.Verifier))

			r.Get("/me", cfg.Auth.HandleMe)
			r.Delete("/logout/{id}", cfg.Auth.HandleLogout)

			r.Get("/locations", cfg.Locations.HandleList)
			r.Post("/locations", cfg.Locations.HandleCreate)
			r.Get("/locations/{id}", cfg.Locations.HandleGet)
			r.Patch("/locations/{id}", cfg.Locations.HandleUpdate)
			r.Delete("/locations/{id}", cfg.Locations.HandleDelete)

			r.Get("/weather/{locationId}/get", cfg.Weather.HandleFetch)
			r.Get("/weather/{locationId}/current", cfg.Weather.HandleCurrent)
			r.Get("/weather/{locationId}/history", cfg.Weather.HandleHistory)
			r.Delete("/weather/{locationId}/delete", cfg.Weather.HandlePurge)
		})
	})

	return r
}
