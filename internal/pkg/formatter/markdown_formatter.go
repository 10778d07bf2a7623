package formatter

import (
	"bytes"
	"fmt"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(doc *Document) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n_%s_\n\n", doc.Title, doc.Subtitle)
	if doc.BornLine != "" {
		fmt.Fprintf(&buf, "%s\n\n", doc.BornLine)
	}
	if doc.Description != "" {
		fmt.Fprintf(&buf, "%s\n\n", doc.Description)
	}
	if doc.Quote != "" {
		fmt.Fprintf(&buf, "> %s\n\n", doc.Quote)
	}
	fmt.Fprintf(&buf, "_%s_\n\n%s\n\n", doc.Dedication, doc.CreatedLine)

	buf.WriteString("## Table of Contents\n\n")
	fmt.Fprintf(&buf, "%s\n\n", doc.Summary)
	for _, c := range doc.Chapters {
		fmt.Fprintf(&buf, "- %s", chapterHeading(c))
		if c.Description != "" {
			fmt.Fprintf(&buf, " (%s)", c.Description)
		}
		buf.WriteString("\n")
	}

	for _, c := range doc.Chapters {
		fmt.Fprintf(&buf, "\n## %s\n\n", chapterHeading(c))
		if c.Description != "" {
			fmt.Fprintf(&buf, "_%s_\n\n", c.Description)
		}
		for _, img := range c.Images {
			fmt.Fprintf(&buf, "![%s](%s)\n\n", img.Caption, img.URL)
		}
		for _, p := range Paragraphs(c.Content) {
			fmt.Fprintf(&buf, "%s\n\n", p)
		}
	}

	return append(bytes.TrimRight(buf.Bytes(), "\n"), '\n'), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
