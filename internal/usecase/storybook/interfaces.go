package storybook

import (
	"context"

	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/usecase/narrative"
)

// StoryWriter is implemented by narrative.Generator
type StoryWriter interface {
	GenerateNarrative(ctx context.Context, in *narrative.StoryInput, mode entity.NarrativeMode) (string, error)
	GenerateQuote(ctx context.Context, responses []entity.Response) string
	SuggestChapters(ctx context.Context, responses []entity.Response, profile *entity.ProfileData) []entity.ChapterSkeleton
}

// SessionProvider loads and advances wizard sessions
type SessionProvider interface {
	Load(ctx context.Context, token string) (*entity.StorySession, error)
	AdvanceStep(ctx context.Context, session *entity.StorySession, step entity.WizardStep) error
}

type QuestionResolver interface {
	Resolve(ids []string, rel entity.Relationship) []entity.Question
}
