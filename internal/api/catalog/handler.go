package catalog

import (
	"net/http"

	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/pkg/logger"
	"github.com/futig/lifestory-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	bank QuestionBank
}

func NewHandler(bank QuestionBank) *Handler {
	return &Handler{
		bank: bank,
	}
}

// ListCategories handles GET /categories?relationship=
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListCategories")
	rel := relationshipFromQuery(r)

	categories := h.bank.ResolvedCategories(rel)

	ctxzap.Debug(ctx, "categories listed",
		zap.String("relationship", string(rel.Type)),
		zap.Int("count", len(categories)),
	)

	response.Success(w, categories)
}

// ListQuestions handles GET /categories/{id}/questions?relationship=
func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := logger.AddFields(r.Context(),
		zap.String("category_id", chi.URLParam(r, "id")),
		zap.String("action", "ListQuestions"),
	)

	questions := h.bank.QuestionsForCategory(ctx, chi.URLParam(r, "id"), relationshipFromQuery(r))

	response.Success(w, questions)
}

// relationshipFromQuery reads the relationship used for question wording.
// Unknown values fall back to base question text.
func relationshipFromQuery(r *http.Request) entity.Relationship {
	q := r.URL.Query()
	return entity.Relationship{
		Type:        entity.RelationshipType(q.Get("relationship")),
		CustomLabel: q.Get("custom_relationship"),
	}
}
