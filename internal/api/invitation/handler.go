package invitation

import (
	"encoding/json"
	"net/http"

	"github.com/futig/lifestory-backend/internal/api/httperr"
	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/pkg/logger"
	"github.com/futig/lifestory-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	usecase InvitationUsecase
}

func NewHandler(usecase InvitationUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// GetInvitation handles GET /invitations/{invite_token}
func (h *Handler) GetInvitation(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetInvitation")

	view, err := h.usecase.GetInvitation(ctx, chi.URLParam(r, "invite_token"))
	if err != nil {
		httperr.Write(ctx, w, err)
		return
	}

	response.Success(w, view)
}

// AnswerInvitation handles PUT /invitations/{invite_token}/responses/{question_id}
func (h *Handler) AnswerInvitation(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "question_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("question_id", questionID),
		zap.String("action", "AnswerInvitation"),
	)

	var req entity.SubmitResponseRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.BadRequest(ctx, w, "invalid request body", err)
		return
	}

	resp, err := h.usecase.AnswerInvitation(ctx, chi.URLParam(r, "invite_token"), questionID, req.Text)
	if err != nil {
		httperr.Write(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// CompleteInvitation handles POST /invitations/{invite_token}/complete
func (h *Handler) CompleteInvitation(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CompleteInvitation")

	invitation, err := h.usecase.CompleteInvitation(ctx, chi.URLParam(r, "invite_token"))
	if err != nil {
		httperr.Write(ctx, w, err)
		return
	}

	response.Success(w, toCompletion(invitation))
}
