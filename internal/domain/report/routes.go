package report

import (
	"github.com/go-chi/chi/v5"

	"github.com/schoolhub/schoolhub-api/internal/middleware"
	"github.com/schoolhub/schoolhub-api/internal/pkg/jwt"
)

// RegisterRoutes registers report routes
func RegisterRoutes(r chi.Router, handler *Handler, jwtService *jwt.Service) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.Auth(jwtService))

		// Any authenticated user
		r.Post("/", handler.Submit)
		r.Get("/mine", handler.ListMine)

		// Moderators only
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireModerator())

			r.Get("/", handler.List)
			r.Get("/overdue", handler.ListOverdue)
			r.Get("/stats", handler.GetStats)
			r.Get("/{id}", handler.Get)
			r.Post("/{id}/claim", handler.Claim)
			r.Post("/{id}/process", handler.Process)
		})
	})
}
