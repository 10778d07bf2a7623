package formatter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/futig/lifestory-backend/internal/entity"
)

const subtitle = "A Digital Legacy"

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9]`)
	paragraphBreak      = regexp.MustCompile(`\n\s*\n`)
)

// Document is a storybook laid out for printing: cover, contents, chapters
type Document struct {
	Title       string
	Subtitle    string
	BornLine    string
	Description string
	Quote       string
	Dedication  string
	CreatedLine string
	Summary     string
	Chapters    []entity.Chapter
}

func NewDocument(book *entity.Storybook) *Document {
	name := book.Profile.DisplayName("Someone Special")
	story := book.Story

	born := ""
	if book.Profile.BirthYear != nil {
		born = fmt.Sprintf("Born %d", *book.Profile.BirthYear)
	}

	created := story.Metadata.GeneratedAt
	if created.IsZero() {
		created = time.Now()
	}

	return &Document{
		Title:       name + "'s Life Story",
		Subtitle:    subtitle,
		BornLine:    born,
		Description: strings.TrimSpace(book.Profile.Description),
		Quote:       story.Quote,
		Dedication:  fmt.Sprintf("For the family of %s - may these stories live on forever", name),
		CreatedLine: "Created " + created.Format("January 2006"),
		Summary: fmt.Sprintf("%s words • %s • %d chapters",
			groupThousands(story.Metadata.WordCount), story.Metadata.ReadingTime(), len(story.Chapters)),
		Chapters: story.Chapters,
	}
}

// Filename derives a download name from the subject name, e.g. "Rose_Silva_Life_Story.pdf"
func Filename(subjectName, ext string) string {
	return unsafeFilenameChars.ReplaceAllString(subjectName, "_") + "_Life_Story" + ext
}

// Paragraphs splits chapter content on blank lines
func Paragraphs(content string) []string {
	parts := paragraphBreak.Split(content, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func chapterHeading(c entity.Chapter) string {
	return fmt.Sprintf("Chapter %d: %s", c.ID, c.Title)
}

func groupThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 || len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
