package storybook

import (
	"context"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/pkg/formatter"
	"github.com/futig/lifestory-backend/internal/pkg/logger"
	"github.com/futig/lifestory-backend/internal/repository"
	"github.com/futig/lifestory-backend/internal/usecase/narrative"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	previewExcerptWords = 200
	shareSuffixLength   = 9
)

var slugUnsafe = regexp.MustCompile(`[^a-z0-9-]+`)

// StorybookUsecase generates, caches, exports and shares storybooks
type StorybookUsecase struct {
	sessions     SessionProvider
	questions    QuestionResolver
	writer       StoryWriter
	assembler    *Assembler
	shareRepo    repository.ShareLinkRepository
	formatters   *formatter.Factory
	cache        *cache.Cache
	shareBaseURL string
	now          func() time.Time
}

func NewUsecase(
	sessions SessionProvider,
	questions QuestionResolver,
	writer StoryWriter,
	shareRepo repository.ShareLinkRepository,
	formatters *formatter.Factory,
	storyCache *cache.Cache,
	shareBaseURL string,
) *StorybookUsecase {
	return &StorybookUsecase{
		sessions:     sessions,
		questions:    questions,
		writer:       writer,
		assembler:    NewAssembler(writer),
		shareRepo:    shareRepo,
		formatters:   formatters,
		cache:        storyCache,
		shareBaseURL: strings.TrimSuffix(shareBaseURL, "/"),
		now:          time.Now,
	}
}

// Preview writes the short narrative excerpt and the quote
func (uc *StorybookUsecase) Preview(ctx context.Context, token string) (*entity.Preview, error) {
	ctx = logger.WithAction(ctx, "preview_story")

	session, in, err := uc.storyInput(ctx, token)
	if err != nil {
		return nil, err
	}

	text, err := uc.writer.GenerateNarrative(ctx, in, entity.NarrativePreview)
	if err != nil {
		return nil, fmt.Errorf("generate preview: %w", err)
	}
	quote := uc.writer.GenerateQuote(ctx, in.Responses)

	if err := uc.sessions.AdvanceStep(ctx, session, entity.StepPreview); err != nil {
		return nil, fmt.Errorf("advance session step: %w", err)
	}

	return &entity.Preview{Narrative: text, Quote: quote}, nil
}

// Generate assembles the full storybook and replaces any cached copy
func (uc *StorybookUsecase) Generate(ctx context.Context, token string) (*entity.Storybook, error) {
	ctx = logger.WithAction(ctx, "generate_storybook")

	session, in, err := uc.storyInput(ctx, token)
	if err != nil {
		return nil, err
	}

	// model calls run one at a time: chapters, narrative, then quote
	story, err := uc.assembler.Assemble(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("assemble storybook: %w", err)
	}
	story.Quote = uc.writer.GenerateQuote(ctx, in.Responses)
	story.PreviewText = excerpt(story.FullText, previewExcerptWords)

	book := &entity.Storybook{Profile: *session.Profile, Story: *story}
	uc.cache.SetDefault(session.ID, book)

	if err := uc.sessions.AdvanceStep(ctx, session, entity.StepStorybook); err != nil {
		return nil, fmt.Errorf("advance session step: %w", err)
	}

	ctxzap.Info(ctx, "storybook generated",
		zap.Int("chapter_count", len(story.Chapters)),
		zap.Int("word_count", story.Metadata.WordCount),
	)

	return book, nil
}

// Get returns the last generated storybook without regenerating it
func (uc *StorybookUsecase) Get(ctx context.Context, token string) (*entity.Storybook, error) {
	session, err := uc.sessions.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	return uc.cached(session)
}

// Export renders the cached storybook in the requested format
func (uc *StorybookUsecase) Export(ctx context.Context, token string, format entity.ResultFormat) (*entity.ExportResult, error) {
	ctx = logger.WithAction(ctx, "export_storybook")

	f, err := uc.formatters.Create(format)
	if err != nil {
		return nil, err
	}

	book, err := uc.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	data, err := f.Format(formatter.NewDocument(book))
	if err != nil {
		ctxzap.Error(ctx, "storybook export failed", zap.String("format", string(format)), zap.Error(err))
		return nil, fmt.Errorf("format storybook as %s: %w", format, err)
	}

	return &entity.ExportResult{
		Filename:    formatter.Filename(book.Profile.Name, f.FileExtension()),
		ContentType: f.ContentType(),
		Data:        data,
	}, nil
}

// Share stores a snapshot of the cached storybook behind a private slug
func (uc *StorybookUsecase) Share(ctx context.Context, token string) (*entity.ShareLink, error) {
	ctx = logger.WithAction(ctx, "share_storybook")

	session, err := uc.sessions.Load(ctx, token)
	if err != nil {
		return nil, err
	}

	book, err := uc.cached(session)
	if err != nil {
		return nil, err
	}

	slug := shareSlug(book.Profile.Name)
	link := &entity.ShareLink{
		Slug:      slug,
		SessionID: session.ID,
		URL:       uc.shareBaseURL + "/" + slug,
		CreatedAt: uc.now(),
	}

	saved, err := uc.shareRepo.CreateShareLink(ctx, link, book)
	if err != nil {
		return nil, fmt.Errorf("create share link: %w", err)
	}

	ctxzap.Info(ctx, "share link created", zap.String("slug", slug))

	return saved, nil
}

func (uc *StorybookUsecase) GetShared(ctx context.Context, slug string) (*entity.Storybook, error) {
	book, err := uc.shareRepo.GetSharedStorybook(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get shared storybook: %w", err)
	}
	return book, nil
}

func (uc *StorybookUsecase) cached(session *entity.StorySession) (*entity.Storybook, error) {
	v, ok := uc.cache.Get(session.ID)
	if !ok {
		return nil, fmt.Errorf("%w: generate the storybook first", entity.ErrNoResult)
	}
	return v.(*entity.Storybook), nil
}

func (uc *StorybookUsecase) storyInput(ctx context.Context, token string) (*entity.StorySession, *narrative.StoryInput, error) {
	session, err := uc.sessions.Load(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if session.Profile == nil {
		return nil, nil, entity.ErrProfileRequired
	}

	ctx = logger.AddFields(ctx, zap.String("session_id", session.ID))
	ctxzap.Debug(ctx, "building story input",
		zap.Int("selected_questions", len(session.SelectedQuestions)),
		zap.Int("responses", session.Responses.Len()),
	)

	return session, &narrative.StoryInput{
		Profile:      session.Profile,
		Relationship: session.Relationship,
		Responses:    session.Responses.Meaningful(),
		Questions:    uc.questions.Resolve(session.SelectedQuestions, session.Relationship),
	}, nil
}

// excerpt keeps whole paragraphs while they fit in maxWords, cutting the first one if it alone is too long
func excerpt(text string, maxWords int) string {
	var (
		kept  []string
		words int
	)
	for _, p := range formatter.Paragraphs(text) {
		n := len(strings.Fields(p))
		if words+n > maxWords {
			if len(kept) == 0 {
				return strings.Join(strings.Fields(p)[:maxWords], " ") + "..."
			}
			break
		}
		kept = append(kept, p)
		words += n
	}
	return strings.Join(kept, "\n\n")
}

// shareSlug is the lowercased name with dashes plus a random base36 suffix
func shareSlug(name string) string {
	base := strings.ToLower(strings.Join(strings.Fields(name), "-"))
	base = strings.Trim(slugUnsafe.ReplaceAllString(base, ""), "-")

	id := uuid.New()
	suffix := new(big.Int).SetBytes(id[:]).Text(36)
	if len(suffix) > shareSuffixLength {
		suffix = suffix[len(suffix)-shareSuffixLength:]
	}

	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
