package narrative

import (
	"context"

	"github.com/futig/lifestory-backend/internal/entity"
)

// TextGenerator performs one model call per request
type TextGenerator interface {
	Generate(ctx context.Context, req *entity.GenerationRequest) (string, error)
}
