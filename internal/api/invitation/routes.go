package invitation

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the routes used by an invited subject
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/invitations/{invite_token}", func(r chi.Router) {
		r.Get("/", h.GetInvitation)
		r.Put("/responses/{question_id}", h.AnswerInvitation)
		r.Post("/complete", h.CompleteInvitation)
	})
}
