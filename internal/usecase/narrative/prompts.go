package narrative

import (
	"fmt"
	"strings"

	"github.com/futig/lifestory-backend/internal/entity"
)

const (
	promptSubjectDefault = "this remarkable person"

	quoteInstructions = "Extract or create a beautiful, meaningful quote (20-80 words) from the provided life story responses. " +
		"The quote should be emotionally resonant and capture the essence of this person's wisdom, personality, or experience. " +
		"Transform their actual words into something quotable and profound. Return only the quote text, no quotation marks."

	chapterInstructions = "Based on the life story responses provided, suggest 4-6 compelling chapter titles and descriptions " +
		"that would organize this person's story in an engaging way. Focus on the themes and experiences that emerge from " +
		"their actual responses. Return a JSON object with a 'chapters' array of objects containing 'id' (number), " +
		"'title' (string), and 'description' (string) fields. Make titles personal and evocative, not generic."

	previewRequirements = `PREVIEW REQUIREMENTS:
- Create an engaging 200-word excerpt that showcases their personality
- Focus on the most compelling and unique elements from their responses
- Use their actual words and experiences as the foundation
- Make it feel like a warm, personal story being shared
- End with a sense that there's much more wonderful story to discover
- Transform simple responses into rich, emotional narrative`

	fullRequirements = `FULL STORY REQUIREMENTS:
- Create a complete 2000-word life story across multiple thematic sections
- Weave together all provided responses into a cohesive, flowing narrative
- Transform brief responses into full scenes with context and emotion
- Show their personality, values, and unique character throughout
- Include both joyful and meaningful moments for authentic depth
- Structure it as a beautiful, readable story families will treasure
- Use their actual experiences and words as the foundation, but enhance with storytelling`

	criticalReminder = `CRITICAL: Transform their simple responses (like "I had 2 dogs" or "family first") into rich, warm narrative sections that capture the emotion and meaning behind their words. Make this feel like the person themselves is telling their story to someone they love.`
)

// Generation parameters per request kind
const (
	narrativeTemperature = 0.7
	narrativePenalty     = 0.1
	previewMaxTokens     = 400
	fullMaxTokens        = 2500

	quoteTemperature = 0.8
	quoteMaxTokens   = 150

	chapterTemperature = 0.7
	chapterMaxTokens   = 600
)

func narrativeRequest(in *StoryInput, responses []entity.Response, mode entity.NarrativeMode) *entity.GenerationRequest {
	maxTokens := int64(fullMaxTokens)
	if mode == entity.NarrativePreview {
		maxTokens = previewMaxTokens
	}

	return &entity.GenerationRequest{
		Instructions:     storytellerInstructions,
		Input:            narrativeInput(in, responses, mode),
		Temperature:      narrativeTemperature,
		MaxTokens:        maxTokens,
		PresencePenalty:  narrativePenalty,
		FrequencyPenalty: narrativePenalty,
	}
}

func narrativeInput(in *StoryInput, responses []entity.Response, mode entity.NarrativeMode) string {
	target := "complete life story (2000 words)"
	requirements := fullRequirements
	if mode == entity.NarrativePreview {
		target = "compelling preview excerpt (200 words)"
		requirements = previewRequirements
	}

	name := in.Profile.DisplayName(promptSubjectDefault)
	born := ""
	description := ""
	if in.Profile != nil {
		if in.Profile.BirthYear != nil {
			born = fmt.Sprintf(" (born %d)", *in.Profile.BirthYear)
		}
		if d := strings.TrimSpace(in.Profile.Description); d != "" {
			description = "Brief description: " + d
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Please create a %s for %s%s.\n\n", target, name, born)
	b.WriteString(description)
	b.WriteString("\n")
	b.WriteString(relationshipContext(in.Relationship))
	b.WriteString("\n\nHere are the interview responses to transform into a beautiful narrative:\n\n")
	b.WriteString(questionAnswerPairs(responses, in.Questions))
	b.WriteString("\n\n")
	b.WriteString(requirements)
	b.WriteString("\n\n")
	b.WriteString(criticalReminder)

	return b.String()
}

func relationshipContext(rel entity.Relationship) string {
	if rel.Type == entity.RelationshipMyself {
		return "This is an autobiography - the person is telling their own story."
	}
	if label := rel.Label(); label != "" {
		return fmt.Sprintf("This story is being created by their %s to preserve family memories.", label)
	}
	return ""
}

// questionAnswerPairs falls back to the raw question id when the question is not among the selected ones
func questionAnswerPairs(responses []entity.Response, questions []entity.Question) string {
	texts := make(map[string]string, len(questions))
	for _, q := range questions {
		texts[q.ID] = q.Text
	}

	pairs := make([]string, 0, len(responses))
	for _, r := range responses {
		text, ok := texts[r.QuestionID]
		if !ok || text == "" {
			text = r.QuestionID
		}
		pairs = append(pairs, fmt.Sprintf("Q: %s\nA: %s", text, r.Text))
	}
	return strings.Join(pairs, "\n\n")
}

func quoteRequest(candidates []string) *entity.GenerationRequest {
	return &entity.GenerationRequest{
		Instructions: quoteInstructions,
		Input:        "Transform these responses into a meaningful quote that captures their essence:\n\n" + strings.Join(candidates, "\n\n"),
		Temperature:  quoteTemperature,
		MaxTokens:    quoteMaxTokens,
	}
}

func chapterRequest(responses []entity.Response, schema map[string]any) *entity.GenerationRequest {
	pairs := make([]string, 0, len(responses))
	for _, r := range responses {
		pairs = append(pairs, fmt.Sprintf("%s: %s", r.QuestionID, r.Text))
	}

	return &entity.GenerationRequest{
		Instructions: chapterInstructions,
		Input:        "Suggest chapters based on these actual life experiences:\n\n" + strings.Join(pairs, "\n\n"),
		Temperature:  chapterTemperature,
		MaxTokens:    chapterMaxTokens,
		Schema: &entity.ResponseSchema{
			Name:        "chapter_suggestions",
			Description: "Chapter outline for a personal life story",
			Schema:      schema,
		},
	}
}
