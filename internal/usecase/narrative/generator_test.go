package narrative

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/futig/lifestory-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator records requests and replays canned replies
type stubGenerator struct {
	replies  []string
	err      error
	echo     bool
	requests []*entity.GenerationRequest
}

func (s *stubGenerator) Generate(_ context.Context, req *entity.GenerationRequest) (string, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return "", s.err
	}
	if s.echo {
		return req.Input, nil
	}
	if len(s.replies) == 0 {
		return "", nil
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

func newGenerator(t *testing.T, llm TextGenerator) *Generator {
	t.Helper()
	g, err := NewGenerator(llm)
	require.NoError(t, err)
	return g
}

func aliceInput(responses ...entity.Response) *StoryInput {
	return &StoryInput{
		Profile:      &entity.ProfileData{Name: "Alice"},
		Relationship: entity.Relationship{Type: entity.RelationshipMom},
		Responses:    responses,
	}
}

func TestGenerateNarrativeNoContent(t *testing.T) {
	stub := &stubGenerator{echo: true}
	g := newGenerator(t, stub)

	_, err := g.GenerateNarrative(context.Background(), aliceInput(), entity.NarrativePreview)
	assert.ErrorIs(t, err, entity.ErrNoContent)

	_, err = g.GenerateNarrative(context.Background(),
		aliceInput(entity.Response{QuestionID: "q1", Text: "   "}), entity.NarrativeFull)
	assert.ErrorIs(t, err, entity.ErrNoContent)

	assert.Empty(t, stub.requests)
}

func TestGenerateNarrativeEcho(t *testing.T) {
	stub := &stubGenerator{echo: true}
	g := newGenerator(t, stub)

	out, err := g.GenerateNarrative(context.Background(),
		aliceInput(entity.Response{QuestionID: "q1", Text: "I had 2 dogs"}), entity.NarrativePreview)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "2 dogs")

	require.Len(t, stub.requests, 1)
	req := stub.requests[0]
	assert.Equal(t, storytellerInstructions, req.Instructions)
	assert.Equal(t, int64(previewMaxTokens), req.MaxTokens)
	assert.InDelta(t, 0.7, req.Temperature, 1e-9)
	assert.InDelta(t, 0.1, req.PresencePenalty, 1e-9)
	assert.InDelta(t, 0.1, req.FrequencyPenalty, 1e-9)
	assert.Nil(t, req.Schema)
}

func TestGenerateNarrativeFallback(t *testing.T) {
	stub := &stubGenerator{err: errors.New("connection refused")}
	g := newGenerator(t, stub)

	out, err := g.GenerateNarrative(context.Background(),
		aliceInput(entity.Response{QuestionID: "q1", Text: "I had 2 dogs"}), entity.NarrativePreview)
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "I had 2 dogs.")
	assert.Contains(t, out, "Through the 1 questions answered")
	assert.Len(t, stub.requests, 1)
}

func TestGenerateNarrativeFullUsesLargerBudget(t *testing.T) {
	stub := &stubGenerator{echo: true}
	g := newGenerator(t, stub)

	_, err := g.GenerateNarrative(context.Background(),
		aliceInput(entity.Response{QuestionID: "q1", Text: "We moved to Lisbon."}), entity.NarrativeFull)
	require.NoError(t, err)
	require.Len(t, stub.requests, 1)
	assert.Equal(t, int64(fullMaxTokens), stub.requests[0].MaxTokens)
	assert.Contains(t, stub.requests[0].Input, "complete life story (2000 words)")
}

func TestNarrativeInput(t *testing.T) {
	year := 1948
	in := &StoryInput{
		Profile:      &entity.ProfileData{Name: "Rose", BirthYear: &year, Description: "A baker from Porto"},
		Relationship: entity.Relationship{Type: entity.RelationshipOther, CustomLabel: "niece"},
		Questions:    []entity.Question{{ID: "first-job", Text: "What was your first job?"}},
	}
	responses := []entity.Response{
		{QuestionID: "first-job", Text: "Baking bread at dawn."},
		{QuestionID: "orphan-id", Text: "Something else."},
	}

	got := narrativeInput(in, responses, entity.NarrativePreview)

	assert.True(t, strings.HasPrefix(got, "Please create a compelling preview excerpt (200 words) for Rose (born 1948).\n\n"))
	assert.Contains(t, got, "Brief description: A baker from Porto\n")
	assert.Contains(t, got, "This story is being created by their niece to preserve family memories.")
	assert.Contains(t, got, "Q: What was your first job?\nA: Baking bread at dawn.\n\nQ: orphan-id\nA: Something else.")
	assert.Contains(t, got, "PREVIEW REQUIREMENTS:")
	assert.True(t, strings.HasSuffix(got, criticalReminder))
}

func TestNarrativeInputDefaults(t *testing.T) {
	in := &StoryInput{Relationship: entity.Relationship{Type: entity.RelationshipMyself}}
	got := narrativeInput(in, []entity.Response{{QuestionID: "q", Text: "a"}}, entity.NarrativeFull)

	assert.Contains(t, got, "for this remarkable person.")
	assert.Contains(t, got, "This is an autobiography - the person is telling their own story.")
	assert.Contains(t, got, "FULL STORY REQUIREMENTS:")
}

func TestGenerateQuotePlaceholderWithoutCall(t *testing.T) {
	stub := &stubGenerator{echo: true}
	g := newGenerator(t, stub)

	assert.Equal(t, PlaceholderQuote, g.GenerateQuote(context.Background(), nil))
	assert.Equal(t, PlaceholderQuote, g.GenerateQuote(context.Background(), []entity.Response{
		{QuestionID: "a", Text: "short answer"},
		{QuestionID: "b", Text: "   exactly twenty ch   "},
	}))
	assert.Empty(t, stub.requests)
}

func TestGenerateQuote(t *testing.T) {
	stub := &stubGenerator{replies: []string{"\"Family was always the table we came home to.\""}}
	g := newGenerator(t, stub)

	got := g.GenerateQuote(context.Background(), []entity.Response{
		{QuestionID: "a", Text: "Family first, always, no matter what happened"},
		{QuestionID: "b", Text: "tiny"},
	})
	assert.Equal(t, "Family was always the table we came home to.", got)

	require.Len(t, stub.requests, 1)
	req := stub.requests[0]
	assert.Equal(t, int64(quoteMaxTokens), req.MaxTokens)
	assert.InDelta(t, 0.8, req.Temperature, 1e-9)
	assert.Contains(t, req.Input, "Family first, always")
	assert.NotContains(t, req.Input, "tiny")
}

func TestGenerateQuoteFallback(t *testing.T) {
	g := newGenerator(t, &stubGenerator{err: errors.New("timeout")})

	got := g.GenerateQuote(context.Background(), []entity.Response{
		{QuestionID: "a", Text: "We sailed every summer. The sea taught me to respect things bigger than myself!"},
	})
	assert.Equal(t, "The sea taught me to respect things bigger than myself...", got)

	got = g.GenerateQuote(context.Background(), []entity.Response{
		{QuestionID: "a", Text: "I really loved my garden a lot"},
	})
	assert.Equal(t, PlaceholderQuote, got)
}

func TestSuggestChaptersDefaultWithoutCall(t *testing.T) {
	stub := &stubGenerator{echo: true}
	g := newGenerator(t, stub)

	got := g.SuggestChapters(context.Background(), nil, nil)
	assert.Equal(t, DefaultChapters(), got)
	require.Len(t, got, 5)
	assert.Equal(t, "Early Years", got[0].Title)
	assert.Equal(t, "Wisdom & Legacy", got[4].Title)
	assert.Empty(t, stub.requests)
}

func TestSuggestChapters(t *testing.T) {
	stub := &stubGenerator{replies: []string{`{"chapters":[
		{"id": 7, "title": "Salt and Bread", "description": "Porto mornings"},
		{"id": 9, "title": "  ", "description": "dropped"},
		{"id": 3, "title": "The Long Voyage", "description": "Crossing to Brazil"}
	]}`}}
	g := newGenerator(t, stub)

	got := g.SuggestChapters(context.Background(),
		[]entity.Response{{QuestionID: "first-job", Text: "Baker"}}, &entity.ProfileData{Name: "Rose"})
	require.Len(t, got, 2)
	assert.Equal(t, entity.ChapterSkeleton{ID: 1, Title: "Salt and Bread", Description: "Porto mornings"}, got[0])
	assert.Equal(t, 2, got[1].ID)

	require.Len(t, stub.requests, 1)
	req := stub.requests[0]
	require.NotNil(t, req.Schema)
	assert.Equal(t, int64(chapterMaxTokens), req.MaxTokens)
	assert.Contains(t, req.Input, "first-job: Baker")
}

func TestSuggestChaptersFallbacks(t *testing.T) {
	responses := []entity.Response{{QuestionID: "q", Text: "answer"}}

	failing := newGenerator(t, &stubGenerator{err: errors.New("500")})
	assert.Equal(t, DefaultChapters(), failing.SuggestChapters(context.Background(), responses, nil))

	garbled := newGenerator(t, &stubGenerator{replies: []string{"Here are some chapters: Early days..."}})
	assert.Equal(t, DefaultChapters(), garbled.SuggestChapters(context.Background(), responses, nil))

	empty := newGenerator(t, &stubGenerator{replies: []string{`{"chapters":[]}`}})
	assert.Equal(t, DefaultChapters(), empty.SuggestChapters(context.Background(), responses, nil))
}

func TestParseChapters(t *testing.T) {
	got, err := parseChapters("```json\n[{\"id\":1,\"title\":\"A\",\"description\":\"a\"},{\"id\":2,\"title\":\"B\",\"description\":\"b\"}]\n```")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	many := `[` + strings.Repeat(`{"id":1,"title":"T","description":"d"},`, 8) + `{"id":1,"title":"T","description":"d"}]`
	got, err = parseChapters(many)
	require.NoError(t, err)
	assert.Len(t, got, maxChapters)
	assert.Equal(t, maxChapters, got[maxChapters-1].ID)
}

func TestFallbackNarrativeWithoutProfile(t *testing.T) {
	out := FallbackNarrative(nil, []entity.Response{
		{QuestionID: "a", Text: "Short! But we lived near the river for years. More."},
		{QuestionID: "b", Text: "ok"},
		{QuestionID: "c", Text: "Third answer is ignored entirely."},
	})

	assert.True(t, strings.HasPrefix(out, "our loved one has lived a life"))
	assert.Contains(t, out, "Through the 3 questions answered")
	assert.Contains(t, out, "But we lived near the river for years. ok\n\n")
	assert.NotContains(t, out, "Third answer")
}
