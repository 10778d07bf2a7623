package storybook

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterSessionRoutes registers the generation routes under /sessions.
// generationLimit guards the routes that call the text generator.
func RegisterSessionRoutes(r chi.Router, h *Handler, generationLimit func(http.Handler) http.Handler) {
	r.With(generationLimit).Post("/{token}/preview", h.Preview)
	r.With(generationLimit).Post("/{token}/storybook", h.Generate)
	r.Get("/{token}/storybook", h.GetStorybook)
	r.Get("/{token}/storybook/export", h.Export)
	r.Post("/{token}/share", h.Share)
}

// RegisterSharedRoutes registers public read access to shared storybooks
func RegisterSharedRoutes(r chi.Router, h *Handler) {
	r.Get("/shared/{slug}", h.GetShared)
}
