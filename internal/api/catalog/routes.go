package catalog

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers question catalog routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Get("/{id}/questions", h.ListQuestions)
	})
}
