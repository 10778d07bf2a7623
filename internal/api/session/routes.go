package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers wizard session routes. inviteLimit guards outgoing email.
func RegisterRoutes(r chi.Router, h *Handler, inviteLimit func(http.Handler) http.Handler) {
	r.Post("/", h.StartSession)
	r.Get("/{token}", h.GetSession)
	r.Delete("/{token}", h.ClearSession)
	r.Put("/{token}/profile", h.UpdateProfile)
	r.Put("/{token}/questions", h.SelectQuestions)
	r.Get("/{token}/responses", h.ListResponses)
	r.Put("/{token}/responses/{question_id}", h.SetResponse)
	r.Post("/{token}/responses/{question_id}/audio", h.SubmitAudioResponse)
	r.With(inviteLimit).Post("/{token}/invitations", h.Invite)
}
