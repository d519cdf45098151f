package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter assembles the HTTP surface.
func NewRouter(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://glowlink.app", "http://localhost:5173"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.HandleHealth)

	r.Post("/webhook/outreach", h.HandleOutreachWebhook)
	r.Post("/extract", h.HandleExtract)

	r.Get("/creators", h.HandleListCreators)
	r.Post("/campaigns/{id}/matches", h.HandleCampaignMatches)
	r.Post("/brands/{id}/matches", h.HandleBrandMatches)
	r.Get("/identities/{id}/events", h.HandleIdentityEvents)

	return r
}
