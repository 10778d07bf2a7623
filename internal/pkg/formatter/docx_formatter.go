package formatter

import (
	"bytes"

	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(d *Document) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	addStyled(doc, "Title", d.Title)
	addStyled(doc, "Subtitle", d.Subtitle)
	if d.BornLine != "" {
		addText(doc, d.BornLine, false)
	}
	if d.Description != "" {
		addText(doc, d.Description, true)
	}
	if d.Quote != "" {
		addText(doc, "\u201c"+d.Quote+"\u201d", true)
	}
	addText(doc, d.Dedication, true)
	addText(doc, d.CreatedLine, false)
	addPageBreak(doc)

	addStyled(doc, "Heading1", "Table of Contents")
	addText(doc, d.Summary, false)
	for _, c := range d.Chapters {
		addText(doc, chapterHeading(c), false)
	}

	for _, c := range d.Chapters {
		addPageBreak(doc)
		addStyled(doc, "Heading1", chapterHeading(c))
		if c.Description != "" {
			addText(doc, c.Description, true)
		}
		for _, img := range c.Images {
			addText(doc, img.Caption+" ("+img.URL+")", true)
		}
		for _, p := range Paragraphs(c.Content) {
			addText(doc, p, false)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addStyled(doc *document.Document, style, text string) {
	par := doc.AddParagraph()
	par.SetStyle(style)
	par.AddRun().AddText(text)
}

func addText(doc *document.Document, text string, italic bool) {
	run := doc.AddParagraph().AddRun()
	if italic {
		run.Properties().SetItalic(true)
	}
	run.AddText(text)
}

func addPageBreak(doc *document.Document) {
	doc.AddParagraph().AddRun().AddPageBreak()
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
