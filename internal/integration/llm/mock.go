package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/futig/lifestory-backend/internal/entity"
	pkglogger "github.com/futig/lifestory-backend/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector answers without any network call. Prose requests echo the
// user input, structured requests get a fixed chapter outline.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Generate(ctx context.Context, req *entity.GenerationRequest) (string, error) {
	ctx = pkglogger.WithFallback(ctx, m.logger)

	ctxzap.Info(ctx, "[MOCK] generating text",
		zap.Int("input_length", len(req.Input)),
		zap.Bool("structured", req.Schema != nil),
	)

	if req.Schema != nil {
		out, err := json.Marshal(entity.ChapterSuggestions{Chapters: []entity.ChapterSkeleton{
			{ID: 1, Title: "Where It All Began", Description: "Roots, family, and the first memories"},
			{ID: 2, Title: "Finding the Way", Description: "School days, friendships, and growing up"},
			{ID: 3, Title: "The People We Love", Description: "Love, marriage, and raising a family"},
			{ID: 4, Title: "What Remains", Description: "Lessons and hopes for the generations ahead"},
		}})
		if err != nil {
			return "", fmt.Errorf("marshal mock chapters: %w", err)
		}
		return string(out), nil
	}

	var b strings.Builder
	for _, block := range strings.Split(req.Input, "\n\n") {
		line := strings.TrimSpace(block)
		if line == "" {
			continue
		}
		if _, answer, ok := strings.Cut(line, "A: "); ok {
			b.WriteString(strings.TrimSpace(answer))
			b.WriteString("\n\n")
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		text = strings.TrimSpace(req.Input)
	}

	ctxzap.Info(ctx, "[MOCK] text generated", zap.Int("content_length", len(text)))
	return text, nil
}
