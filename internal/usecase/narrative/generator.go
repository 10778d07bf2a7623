package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/pkg/structured"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const maxChapters = 6

// StoryInput is the session context a narrative is written from
type StoryInput struct {
	Profile      *entity.ProfileData
	Relationship entity.Relationship
	Responses    []entity.Response
	Questions    []entity.Question
}

// Generator turns answers into prose. Every operation makes at most one
// external call and falls back to local synthesis when that call fails.
type Generator struct {
	llm           TextGenerator
	chapterSchema map[string]any
}

// NewGenerator prepares the chapter response schema once for all requests
func NewGenerator(llm TextGenerator) (*Generator, error) {
	schema, err := structured.Schema[entity.ChapterSuggestions]()
	if err != nil {
		return nil, fmt.Errorf("build chapter schema: %w", err)
	}

	return &Generator{
		llm:           llm,
		chapterSchema: schema,
	}, nil
}

// GenerateNarrative fails only with entity.ErrNoContent
func (g *Generator) GenerateNarrative(ctx context.Context, in *StoryInput, mode entity.NarrativeMode) (string, error) {
	responses := entity.MeaningfulResponses(in.Responses)
	if len(responses) == 0 {
		return "", entity.ErrNoContent
	}

	text, err := g.llm.Generate(ctx, narrativeRequest(in, responses, mode))
	if err != nil {
		ctxzap.Warn(ctx, "narrative generation failed, using fallback",
			zap.String("mode", string(mode)),
			zap.Error(err),
		)
		return FallbackNarrative(in.Profile, responses), nil
	}

	ctxzap.Info(ctx, "narrative generated",
		zap.String("mode", string(mode)),
		zap.Int("response_count", len(responses)),
		zap.Int("length", len(text)),
	)

	return text, nil
}

// GenerateQuote returns a short quote in the subject's voice. It never fails.
func (g *Generator) GenerateQuote(ctx context.Context, responses []entity.Response) string {
	candidates := quoteCandidates(responses)
	if len(candidates) == 0 {
		return PlaceholderQuote
	}

	text, err := g.llm.Generate(ctx, quoteRequest(candidates))
	if err == nil {
		text = strings.Trim(strings.TrimSpace(text), "\"“”")
	}
	if err != nil || text == "" {
		ctxzap.Warn(ctx, "quote generation failed, using fallback", zap.Error(err))
		return FallbackQuote(responses)
	}

	return text
}

// SuggestChapters outlines the storybook, falling back to DefaultChapters
func (g *Generator) SuggestChapters(ctx context.Context, responses []entity.Response, profile *entity.ProfileData) []entity.ChapterSkeleton {
	meaningful := entity.MeaningfulResponses(responses)
	if len(meaningful) == 0 {
		return DefaultChapters()
	}

	reply, err := g.llm.Generate(ctx, chapterRequest(meaningful, g.chapterSchema))
	if err != nil {
		ctxzap.Warn(ctx, "chapter suggestion failed, using default chapters", zap.Error(err))
		return DefaultChapters()
	}

	chapters, err := parseChapters(reply)
	if err != nil {
		ctxzap.Warn(ctx, "chapter suggestion reply could not be parsed, using default chapters",
			zap.Error(err),
			zap.Int("reply_length", len(reply)),
		)
		return DefaultChapters()
	}

	ctxzap.Info(ctx, "chapters suggested",
		zap.String("subject", profile.DisplayName("")),
		zap.Int("chapter_count", len(chapters)),
	)

	return chapters
}

// parseChapters accepts either {"chapters": [...]} or a bare array, optionally
// wrapped in a markdown code fence. Ids are renumbered from 1.
func parseChapters(reply string) ([]entity.ChapterSkeleton, error) {
	raw := stripCodeFence(reply)

	var items []entity.ChapterSkeleton
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, fmt.Errorf("decode chapter list: %w", err)
		}
	} else {
		var wrapped entity.ChapterSuggestions
		if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
			return nil, fmt.Errorf("decode chapter object: %w", err)
		}
		items = wrapped.Chapters
	}

	chapters := make([]entity.ChapterSkeleton, 0, len(items))
	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		chapters = append(chapters, entity.ChapterSkeleton{
			ID:          len(chapters) + 1,
			Title:       title,
			Description: strings.TrimSpace(item.Description),
		})
		if len(chapters) == maxChapters {
			break
		}
	}

	if len(chapters) == 0 {
		return nil, fmt.Errorf("reply contained no usable chapters")
	}

	return chapters, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
