package formatter

import (
	"fmt"

	"github.com/futig/lifestory-backend/internal/entity"
)

type Formatter interface {
	Format(doc *Document) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct {
	fontPath string
}

// NewFactory takes an optional path to a UTF-8 TrueType font for PDF output
func NewFactory(fontPath string) *Factory {
	return &Factory{fontPath: fontPath}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(f.fontPath), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format '%s'", entity.ErrInvalidFormat, format)
	}
}
