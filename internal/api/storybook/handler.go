package storybook

import (
	"net/http"

	"github.com/futig/lifestory-backend/internal/api/httperr"
	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/pkg/logger"
	"github.com/futig/lifestory-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase StorybookUsecase
}

func NewHandler(usecase StorybookUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// Preview handles POST /sessions/{token}/preview
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Preview")

	preview, err := h.usecase.Preview(ctx, chi.URLParam(r, "token"))
	if err != nil {
		httperr.Write(ctx, w, err)
		return
	}

	response.Success(w, preview)
}

// Generate handles POST /sessions/{token}/storybook
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateStorybook")

	book, err := h.usecase.Generate(ctx, chi.URLParam(r, "token"))
	if err != nil {
		httperr.Write(ctx, w, err)
		return
	}

	response.Created(w, book)
}

// GetStorybook handles GET /sessions/{token}/storybook
func (h *Handler) GetStorybook(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetStorybook")

	book, err := h.usecase.Get(ctx, chi.URLParam(r, "token"))
	if err != nil {
		httperr.Write(ctx, w, err)
		return
	}

	response.Success(w, book)
}

// Export handles GET /sessions/{token}/storybook/export?format=
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format := entity.ResultFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = entity.FormatPDF
	}
	ctx := logger.AddFields(r.Context(),
		zap.String("format", string(format)),
		zap.String("action", "ExportStorybook"),
	)

	if !format.IsValid() {
		httperr.BadRequest(ctx, w, "format must be one of pdf, docx, markdown", entity.ErrInvalidFormat)
		return
	}

	result, err := h.usecase.Export(ctx, chi.URLParam(r, "token"), format)
	if err != nil {
		httperr.Write(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "storybook exported", zap.Int("bytes", len(result.Data)))
	response.Attachment(w, result.Filename, result.ContentType, result.Data)
}

// Share handles POST /sessions/{token}/share
func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ShareStorybook")

	link, err := h.usecase.Share(ctx, chi.URLParam(r, "token"))
	if err != nil {
		httperr.Write(ctx, w, err)
		return
	}

	response.Created(w, link)
}

// GetShared handles GET /shared/{slug}
func (h *Handler) GetShared(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetSharedStorybook")

	book, err := h.usecase.GetShared(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		httperr.Write(ctx, w, err)
		return
	}

	response.Success(w, book)
}
