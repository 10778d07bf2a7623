package storybook

import (
	"context"

	"github.com/futig/lifestory-backend/internal/entity"
)

type StorybookUsecase interface {
	Preview(ctx context.Context, token string) (*entity.Preview, error)
	Generate(ctx context.Context, token string) (*entity.Storybook, error)
	Get(ctx context.Context, token string) (*entity.Storybook, error)
	Export(ctx context.Context, token string, format entity.ResultFormat) (*entity.ExportResult, error)
	Share(ctx context.Context, token string) (*entity.ShareLink, error)
	GetShared(ctx context.Context, slug string) (*entity.Storybook, error)
}
