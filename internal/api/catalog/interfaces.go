package catalog

import (
	"context"

	"github.com/futig/lifestory-backend/internal/entity"
)

type QuestionBank interface {
	ResolvedCategories(rel entity.Relationship) []entity.QuestionCategory
	QuestionsForCategory(ctx context.Context, categoryID string, rel entity.Relationship) []entity.Question
}
