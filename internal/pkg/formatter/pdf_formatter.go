package formatter

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the gofpdf family name of the UTF-8 font
	pdfFontName = "DejaVuSans"

	// Docker images ship the font next to the binary
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"
	pdfFontSourcePath  = "internal/pkg/formatter/ttf/DejaVuSans.ttf"

	pdfMargin     = 20.0
	pdfLineHeight = 6.0
)

type PDFFormatter struct {
	fontPath string
}

func NewPDFFormatter(fontPath string) *PDFFormatter {
	return &PDFFormatter{fontPath: fontPath}
}

func (pf *PDFFormatter) resolveFontPath() string {
	for _, p := range []string{pf.fontPath, pdfFontRuntimePath, pdfFontSourcePath} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (pf *PDFFormatter) Format(d *Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)

	// Core fonts only cover cp1252, so text is translated unless a UTF-8 font is available
	fontName := "Helvetica"
	italic := "I"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath := pf.resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
		italic = ""
		tr = func(s string) string { return s }
	}

	pdf.SetFooterFunc(func() {
		if pdf.PageNo() == 1 {
			return
		}
		pdf.SetY(-15)
		pdf.SetFont(fontName, "", 9)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	// Cover
	pdf.AddPage()
	pdf.SetY(50)
	pdf.SetFont(fontName, "B", 28)
	pdf.MultiCell(0, 12, tr(d.Title), "", "C", false)
	pdf.Ln(6)
	pdf.SetFont(fontName, "", 16)
	pdf.CellFormat(0, 10, tr(d.Subtitle), "", 1, "C", false, 0, "")
	if d.BornLine != "" {
		pdf.SetFont(fontName, "", 12)
		pdf.CellFormat(0, 10, tr(d.BornLine), "", 1, "C", false, 0, "")
	}
	if d.Description != "" {
		pdf.Ln(10)
		pdf.SetFont(fontName, italic, 14)
		pdf.MultiCell(0, 8, tr(d.Description), "", "C", false)
	}
	if d.Quote != "" {
		pdf.Ln(10)
		pdf.SetFont(fontName, italic, 12)
		pdf.MultiCell(0, 7, tr("\u201c"+d.Quote+"\u201d"), "", "C", false)
	}
	pdf.SetY(-60)
	pdf.SetFont(fontName, "", 12)
	pdf.MultiCell(0, 6, tr(d.Dedication), "", "C", false)
	pdf.Ln(8)
	pdf.SetFont(fontName, "", 10)
	pdf.CellFormat(0, 6, tr(d.CreatedLine), "", 1, "C", false, 0, "")

	// Contents
	pdf.AddPage()
	pdf.SetFont(fontName, "B", 20)
	pdf.CellFormat(0, 12, tr("Table of Contents"), "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	pdf.CellFormat(0, 8, tr(d.Summary), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	for _, c := range d.Chapters {
		pdf.SetFont(fontName, "B", 12)
		pdf.MultiCell(0, 7, tr(chapterHeading(c)), "", "L", false)
		if c.Description != "" {
			pdf.SetFont(fontName, "", 10)
			pdf.SetX(pdfMargin + 10)
			pdf.MultiCell(0, 5, tr(c.Description), "", "L", false)
		}
		pdf.Ln(3)
	}

	// Chapters
	for _, c := range d.Chapters {
		pdf.AddPage()
		pdf.SetFont(fontName, "", 12)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("Chapter %d", c.ID)), "", 1, "L", false, 0, "")
		pdf.SetFont(fontName, "B", 20)
		pdf.MultiCell(0, 10, tr(c.Title), "", "L", false)
		if c.Description != "" {
			pdf.SetFont(fontName, italic, 12)
			pdf.MultiCell(0, 7, tr(c.Description), "", "L", false)
		}
		for _, img := range c.Images {
			pdf.SetFont(fontName, italic, 9)
			pdf.MultiCell(0, 5, tr(img.Caption), "", "L", false)
		}
		pdf.Ln(6)

		pdf.SetFont(fontName, "", 11)
		for _, p := range Paragraphs(c.Content) {
			pdf.MultiCell(0, pdfLineHeight, tr(p), "", "L", false)
			pdf.Ln(4)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
