package entity

import (
	"fmt"
	"time"
)

type NarrativeMode string

const (
	NarrativePreview NarrativeMode = "preview"
	NarrativeFull    NarrativeMode = "full"
)

type ChapterImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

type Chapter struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Content     string         `json:"content"`
	Images      []ChapterImage `json:"images"`
}

// ChapterSkeleton is a chapter outline before any narrative is attached
type ChapterSkeleton struct {
	ID          int    `json:"id" jsonschema:"description=Sequential chapter number starting at 1"`
	Title       string `json:"title" jsonschema:"description=Personal and evocative chapter title"`
	Description string `json:"description" jsonschema:"description=One sentence describing what the chapter covers"`
}

// ChapterSuggestions is the structured reply requested from the text generator
type ChapterSuggestions struct {
	Chapters []ChapterSkeleton `json:"chapters" jsonschema:"description=Between four and six chapters in reading order"`
}

type StoryMetadata struct {
	WordCount   int       `json:"word_count"`
	GeneratedAt time.Time `json:"generated_at"`
}

type GeneratedStory struct {
	PreviewText string        `json:"preview_text"`
	FullText    string        `json:"full_text"`
	Quote       string        `json:"quote"`
	Chapters    []Chapter     `json:"chapters"`
	Metadata    StoryMetadata `json:"metadata"`
}

// ReadingTime is a range estimate at 150 to 200 words per minute
func (m StoryMetadata) ReadingTime() string {
	low := (m.WordCount + 199) / 200
	high := (m.WordCount + 149) / 150
	return fmt.Sprintf("%d-%d minutes", low, high)
}

// Storybook is a generated story bound to the profile it was written for
type Storybook struct {
	Profile ProfileData    `json:"profile"`
	Story   GeneratedStory `json:"story"`
}

type Preview struct {
	Narrative string `json:"narrative"`
	Quote     string `json:"quote"`
}

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}
