package storybook

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/futig/lifestory-backend/internal/pkg/formatter"
	"github.com/futig/lifestory-backend/internal/usecase/narrative"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	session *entity.StorySession
	steps   []entity.WizardStep
}

func (f *fakeSessions) Load(_ context.Context, token string) (*entity.StorySession, error) {
	if f.session == nil || f.session.Token != token {
		return nil, entity.ErrSessionNotFound
	}
	return f.session, nil
}

func (f *fakeSessions) AdvanceStep(_ context.Context, _ *entity.StorySession, step entity.WizardStep) error {
	f.steps = append(f.steps, step)
	return nil
}

type fakeQuestions struct{}

func (fakeQuestions) Resolve(ids []string, _ entity.Relationship) []entity.Question {
	out := make([]entity.Question, 0, len(ids))
	for _, id := range ids {
		out = append(out, entity.Question{ID: id, Text: "Question " + id})
	}
	return out
}

type fakeShareRepo struct {
	links map[string]*entity.Storybook
}

func (f *fakeShareRepo) CreateShareLink(_ context.Context, link *entity.ShareLink, book *entity.Storybook) (*entity.ShareLink, error) {
	f.links[link.Slug] = book
	return link, nil
}

func (f *fakeShareRepo) GetSharedStorybook(_ context.Context, slug string) (*entity.Storybook, error) {
	book, ok := f.links[slug]
	if !ok {
		return nil, entity.ErrShareLinkNotFound
	}
	return book, nil
}

type fixture struct {
	uc       *StorybookUsecase
	sessions *fakeSessions
	writer   *stubWriter
	shares   *fakeShareRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	sessions := &fakeSessions{session: &entity.StorySession{
		ID:                "session-1",
		Token:             "tok",
		Relationship:      entity.Relationship{Type: entity.RelationshipMom},
		Profile:           &entity.ProfileData{Name: "Rose Silva"},
		SelectedQuestions: []string{"q1", "q2"},
		Responses: entity.NewResponseMap(
			entity.Response{QuestionID: "q1", Text: "We baked bread every morning in Porto."},
			entity.Response{QuestionID: "q2", Text: "   "},
		),
	}}
	writer := &stubWriter{
		chapters:  skeletons(2),
		narrative: "Rose was born by the sea.\n\nShe baked bread.",
		quote:     "Share your bread",
	}
	shares := &fakeShareRepo{links: map[string]*entity.Storybook{}}

	uc := NewUsecase(sessions, fakeQuestions{}, writer, shares, formatter.NewFactory(""),
		cache.New(time.Hour, time.Hour), "https://lifestory.app/s/")

	return &fixture{uc: uc, sessions: sessions, writer: writer, shares: shares}
}

func TestPreview(t *testing.T) {
	f := newFixture(t)

	preview, err := f.uc.Preview(context.Background(), "tok")
	require.NoError(t, err)

	assert.Equal(t, f.writer.narrative, preview.Narrative)
	assert.Equal(t, "Share your bread", preview.Quote)
	assert.Equal(t, []string{"narrative:preview", "quote"}, f.writer.calls)
	assert.Equal(t, []entity.WizardStep{entity.StepPreview}, f.sessions.steps)
}

func TestPreviewRequiresProfile(t *testing.T) {
	f := newFixture(t)
	f.sessions.session.Profile = nil

	_, err := f.uc.Preview(context.Background(), "tok")
	assert.ErrorIs(t, err, entity.ErrProfileRequired)
	assert.Empty(t, f.writer.calls)
}

func TestPreviewNoContent(t *testing.T) {
	f := newFixture(t)
	f.writer.err = entity.ErrNoContent

	_, err := f.uc.Preview(context.Background(), "tok")
	assert.ErrorIs(t, err, entity.ErrNoContent)
	assert.Empty(t, f.sessions.steps)
}

func TestGenerateCachesStorybook(t *testing.T) {
	f := newFixture(t)

	book, err := f.uc.Generate(context.Background(), "tok")
	require.NoError(t, err)

	assert.Equal(t, []string{"chapters", "narrative:full", "quote"}, f.writer.calls)
	assert.Equal(t, "Rose Silva", book.Profile.Name)
	assert.Equal(t, "Share your bread", book.Story.Quote)
	assert.Equal(t, f.writer.narrative, book.Story.PreviewText)
	assert.Len(t, book.Story.Chapters, 2)
	assert.Equal(t, []entity.WizardStep{entity.StepStorybook}, f.sessions.steps)

	cached, err := f.uc.Get(context.Background(), "tok")
	require.NoError(t, err)
	assert.Same(t, book, cached)
}

func TestExportRequiresGeneratedStorybook(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Export(context.Background(), "tok", entity.FormatMarkdown)
	assert.ErrorIs(t, err, entity.ErrNoResult)

	_, err = f.uc.Export(context.Background(), "tok", "rtf")
	assert.ErrorIs(t, err, entity.ErrInvalidFormat)
}

func TestExportMarkdown(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Generate(context.Background(), "tok")
	require.NoError(t, err)
	calls := len(f.writer.calls)

	res, err := f.uc.Export(context.Background(), "tok", entity.FormatMarkdown)
	require.NoError(t, err)

	assert.Equal(t, "Rose_Silva_Life_Story.md", res.Filename)
	assert.True(t, strings.HasPrefix(string(res.Data), "# Rose Silva's Life Story"))
	assert.Len(t, f.writer.calls, calls)
}

func TestShareAndGetShared(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Share(context.Background(), "tok")
	assert.ErrorIs(t, err, entity.ErrNoResult)

	book, err := f.uc.Generate(context.Background(), "tok")
	require.NoError(t, err)

	link, err := f.uc.Share(context.Background(), "tok")
	require.NoError(t, err)

	assert.Regexp(t, `^rose-silva-[0-9a-z]{9}$`, link.Slug)
	assert.Equal(t, "https://lifestory.app/s/"+link.Slug, link.URL)
	assert.Equal(t, "session-1", link.SessionID)

	shared, err := f.uc.GetShared(context.Background(), link.Slug)
	require.NoError(t, err)
	assert.Equal(t, book, shared)

	_, err = f.uc.GetShared(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrShareLinkNotFound)
}

func TestUnknownToken(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Generate(context.Background(), "nope")
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "a b\n\nc", excerpt("a b\n\nc\n\nd e f", 4))
	assert.Equal(t, "one two...", excerpt("one two three", 2))
	assert.Equal(t, "", excerpt("", 5))
}

func TestShareSlug(t *testing.T) {
	assert.Regexp(t, `^jos-o-neil-[0-9a-z]{9}$`, shareSlug("  José  O-Neil "))
	assert.Regexp(t, `^[0-9a-z]{9}$`, shareSlug("!!!"))
}

// slowWriter holds every model call open briefly and records how many overlap
type slowWriter struct {
	*stubWriter
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (s *slowWriter) enter() {
	n := s.inFlight.Add(1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	s.inFlight.Add(-1)
}

func (s *slowWriter) GenerateNarrative(ctx context.Context, in *narrative.StoryInput, mode entity.NarrativeMode) (string, error) {
	s.enter()
	return s.stubWriter.GenerateNarrative(ctx, in, mode)
}

func (s *slowWriter) GenerateQuote(ctx context.Context, responses []entity.Response) string {
	s.enter()
	return s.stubWriter.GenerateQuote(ctx, responses)
}

func (s *slowWriter) SuggestChapters(ctx context.Context, responses []entity.Response, profile *entity.ProfileData) []entity.ChapterSkeleton {
	s.enter()
	return s.stubWriter.SuggestChapters(ctx, responses, profile)
}

func TestModelCallsNeverOverlap(t *testing.T) {
	f := newFixture(t)
	writer := &slowWriter{stubWriter: f.writer}
	uc := NewUsecase(f.sessions, fakeQuestions{}, writer, f.shares, formatter.NewFactory(""),
		cache.New(time.Hour, time.Hour), "https://lifestory.app/s/")

	_, err := uc.Preview(context.Background(), "tok")
	require.NoError(t, err)
	_, err = uc.Generate(context.Background(), "tok")
	require.NoError(t, err)

	assert.Equal(t, int32(1), writer.peak.Load())
	assert.Equal(t, []string{"narrative:preview", "quote", "chapters", "narrative:full", "quote"}, f.writer.calls)
}
