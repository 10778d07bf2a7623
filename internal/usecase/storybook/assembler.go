package storybook

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/pkg/formatter"
	"github.com/futig/lifestory-backend/internal/usecase/narrative"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Assembler cuts a full narrative into the suggested chapters
type Assembler struct {
	writer StoryWriter
	now    func() time.Time
}

func NewAssembler(writer StoryWriter) *Assembler {
	return &Assembler{
		writer: writer,
		now:    time.Now,
	}
}

// Assemble suggests chapters, writes the full narrative and distributes its
// paragraphs evenly across the chapters in order. Quote and preview are left empty.
func (a *Assembler) Assemble(ctx context.Context, in *narrative.StoryInput) (*entity.GeneratedStory, error) {
	skeletons := a.writer.SuggestChapters(ctx, in.Responses, in.Profile)

	fullText, err := a.writer.GenerateNarrative(ctx, in, entity.NarrativeFull)
	if err != nil {
		return nil, err
	}

	paragraphs := formatter.Paragraphs(fullText)
	chapters := distribute(skeletons, paragraphs)
	attachImages(chapters, in.Profile)

	ctxzap.Debug(ctx, "storybook assembled",
		zap.Int("chapter_count", len(chapters)),
		zap.Int("paragraph_count", len(paragraphs)),
	)

	return &entity.GeneratedStory{
		FullText: fullText,
		Chapters: chapters,
		Metadata: entity.StoryMetadata{
			WordCount:   len(strings.Fields(fullText)),
			GeneratedAt: a.now(),
		},
	}, nil
}

// distribute gives chapter k the paragraphs [k*per, min((k+1)*per, M)) where per = ceil(M/N)
func distribute(skeletons []entity.ChapterSkeleton, paragraphs []string) []entity.Chapter {
	n, m := len(skeletons), len(paragraphs)
	chapters := make([]entity.Chapter, 0, n)
	if n == 0 {
		return chapters
	}

	per := (m + n - 1) / n
	for k, s := range skeletons {
		start := min(k*per, m)
		end := min((k+1)*per, m)

		content := strings.Join(paragraphs[start:end], "\n\n")
		if content == "" {
			content = placeholderContent(s.Description)
		}

		chapters = append(chapters, entity.Chapter{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Content:     content,
			Images:      []entity.ChapterImage{},
		})
	}

	return chapters
}

func placeholderContent(description string) string {
	return fmt.Sprintf("This chapter will contain beautiful stories about %s.", strings.ToLower(description))
}

// attachImages gives each chapter at most one profile image, by position
func attachImages(chapters []entity.Chapter, profile *entity.ProfileData) {
	if profile == nil {
		return
	}
	for i := range chapters {
		if i >= len(profile.Images) {
			return
		}
		chapters[i].Images = append(chapters[i].Images, entity.ChapterImage{
			URL:     profile.Images[i],
			Caption: fmt.Sprintf("%s - %s", profile.Name, chapters[i].Title),
		})
	}
}
