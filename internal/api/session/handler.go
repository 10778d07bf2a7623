package session

import (
	"encoding/json"
	"net/http"

	"github.com/futig/lifestory-backend/internal/api/httperr"
	"github.com/futig/lifestory-backend/internal/config"
	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/pkg/logger"
	"github.com/futig/lifestory-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const maxJSONBody = 1 << 20

type Handler struct {
	usecase SessionUsecase
	cfg     config.FileUploadConfig
}

func NewHandler(usecase SessionUsecase, cfg config.FileUploadConfig) *Handler {
	return &Handler{
		usecase: usecase,
		cfg:     cfg,
	}
}

// StartSession handles POST /sessions
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartSession")

	var req entity.StartSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		httperr.BadRequest(ctx, w, "invalid request body", err)
		return
	}

	session, err := h.usecase.Start(ctx, &req)
	if err != nil {
		httperr.Write(ctx, w, err)
		return
	}

	response.Created(w, toSessionDTO(session))
}

// GetSession handles GET /sessions/{token}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetSession")

	session, err := h.usecase.Load(ctx, chi.URLParam(r, "token"))
	if err != nil {
		httperr.Write(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(session))
}

// ClearSession handles DELETE /sessions/{token}
func (h *Handler) ClearSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ClearSession")

	if err := h.usecase.Clear(ctx, chi.URLParam(r, "token")); err != nil {
		httperr.Write(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// UpdateProfile handles PUT /sessions/{token}/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UpdateProfile")

	var req entity.UpdateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		httperr.BadRequest(ctx, w, "invalid request body", err)
		return
	}

	profile, err := h.usecase.UpdateProfile(ctx, chi.URLParam(r, "token"), &req)
	if err != nil {
		httperr.Write(ctx, w, err)
		return
	}

	response.Success(w, profile)
}

// SelectQuestions handles PUT /sessions/{token}/questions
func (h *Handler) SelectQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SelectQuestions")

	var req entity.SelectQuestionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		httperr.BadRequest(ctx, w, "invalid request body", err)
		return
	}

	selected, err := h.usecase.SelectQuestions(ctx, chi.URLParam(r, "token"), &req)
	if err != nil {
		httperr.Write(ctx, w, err)
		return
	}

	response.Success(w, map[string][]string{"selected_questions": selected})
}

// ListResponses handles GET /sessions/{token}/responses
func (h *Handler) ListResponses(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListResponses")

	responses, err := h.usecase.MeaningfulResponses(ctx, chi.URLParam(r, "token"))
	if err != nil {
		httperr.Write(ctx, w, err)
		return
	}

	response.Success(w, responses)
}

// SetResponse handles PUT /sessions/{token}/responses/{question_id}
func (h *Handler) SetResponse(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "question_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("question_id", questionID),
		zap.String("action", "SetResponse"),
	)

	var req entity.SubmitResponseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		httperr.BadRequest(ctx, w, "invalid request body", err)
		return
	}

	resp, err := h.usecase.SetResponse(ctx, chi.URLParam(r, "token"), questionID, req.Text)
	if err != nil {
		httperr.Write(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// SubmitAudioResponse handles POST /sessions/{token}/responses/{question_id}/audio
func (h *Handler) SubmitAudioResponse(w http.ResponseWriter, r *http.Request) {
	questionID := chi.URLParam(r, "question_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("question_id", questionID),
		zap.String("action", "SubmitAudioResponse"),
	)

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		httperr.BadRequest(ctx, w, "invalid form data or size too large", err)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("audio")
	if err != nil {
		httperr.BadRequest(ctx, w, "audio file is required", err)
		return
	}
	_ = file.Close()

	ctxzap.Info(ctx, "submitting audio response",
		zap.Int64("size_bytes", header.Size),
		zap.String("content_type", header.Header.Get("Content-Type")),
	)

	resp, err := h.usecase.SubmitAudioResponse(ctx, chi.URLParam(r, "token"), questionID, header)
	if err != nil {
		httperr.Write(ctx, w, err)
		return
	}

	response.Success(w, resp)
}

// Invite handles POST /sessions/{token}/invitations
func (h *Handler) Invite(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Invite")

	var req entity.InviteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		httperr.BadRequest(ctx, w, "invalid request body", err)
		return
	}

	invitation, err := h.usecase.Invite(ctx, chi.URLParam(r, "token"), &req)
	if err != nil {
		httperr.Write(ctx, w, err)
		return
	}

	response.Created(w, invitation)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	return json.NewDecoder(r.Body).Decode(v)
}
