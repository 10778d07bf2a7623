package narrative

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/futig/lifestory-backend/internal/entity"
)

const (
	fallbackSubjectDefault = "our loved one"

	// PlaceholderQuote is returned when there is nothing worth quoting
	PlaceholderQuote = "Every life has a story worth telling..."
)

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// DefaultChapters is the outline used when no tailored chapters are available
func DefaultChapters() []entity.ChapterSkeleton {
	return []entity.ChapterSkeleton{
		{ID: 1, Title: "Early Years", Description: "Childhood memories and formative experiences"},
		{ID: 2, Title: "Growing Up", Description: "School years and coming of age"},
		{ID: 3, Title: "Love & Family", Description: "Relationships and family life"},
		{ID: 4, Title: "Life's Work", Description: "Career and achievements"},
		{ID: 5, Title: "Wisdom & Legacy", Description: "Life lessons and messages for the future"},
	}
}

// FallbackNarrative builds a short templated story from local data only. It never fails.
func FallbackNarrative(profile *entity.ProfileData, responses []entity.Response) string {
	meaningful := entity.MeaningfulResponses(responses)
	name := profile.DisplayName(fallbackSubjectDefault)

	excerpts := make([]string, 0, 2)
	for i, r := range meaningful {
		if i == 2 {
			break
		}
		excerpts = append(excerpts, leadSentence(r.Text))
	}

	return fmt.Sprintf("%s has lived a life rich with experiences and memories that deserve to be preserved. "+
		"Through the %d questions answered, we can see glimpses of a remarkable journey filled with unique moments, "+
		"personal growth, and meaningful connections.\n\n"+
		"%s\n\n"+
		"Every response shared reveals another layer of their character and the experiences that have shaped who they are today. "+
		"These stories and memories are more than just tales from the past - they are the threads that weave together "+
		"our family's tapestry, connecting generations through shared experiences and values.\n\n"+
		"This is just the beginning of preserving their incredible story for future generations to treasure.",
		name, len(meaningful), strings.Join(excerpts, " "))
}

// leadSentence returns the first sentence longer than ten characters, or the whole text
func leadSentence(text string) string {
	for _, s := range sentenceBoundary.Split(text, -1) {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) > 10 {
			return s + "."
		}
	}
	return text
}

// FallbackQuote picks the first sentence of quotable length from the responses
func FallbackQuote(responses []entity.Response) string {
	for _, r := range entity.MeaningfulResponses(responses) {
		for _, s := range sentenceBoundary.Split(r.Text, -1) {
			s = strings.TrimSpace(s)
			n := utf8.RuneCountInString(s)
			if n > 30 && n < 120 {
				return s + "..."
			}
		}
	}
	return PlaceholderQuote
}

// quoteCandidates keeps responses long enough to be worth quoting
func quoteCandidates(responses []entity.Response) []string {
	out := make([]string, 0, len(responses))
	for _, r := range responses {
		if utf8.RuneCountInString(strings.TrimSpace(r.Text)) > 20 {
			out = append(out, r.Text)
		}
	}
	return out
}
