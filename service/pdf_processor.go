package service

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// DocumentInfo describes the structure of a report file.
type DocumentInfo struct {
	Pages int
	Valid bool
}

// PDFProcessor is the text capability the dataset pipeline needs from a
// document: ordered per-page text, plus a structural check.
type PDFProcessor interface {
	ExtractPages(pdfData []byte) ([]string, error)
	Inspect(pdfData []byte) (DocumentInfo, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

// ExtractPages returns the text of every page, one row of glyphs per line.
func (p *pdfProcessor) ExtractPages(pdfData []byte) (pages []string, err error) {
	// the reader panics on some malformed content streams
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf text extraction panicked: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	totalPage := r.NumPage()
	pages = make([]string, 0, totalPage)
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", pageIndex, err)
		}

		pages = append(pages, pageText(rows))
	}
	return pages, nil
}

// pageText renders the rows of one page, one per line. The page carries no
// trailing newline, so joining pages does not add a blank line between them.
func pageText(rows pdf.Rows) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, joinRow(row.Content))
	}
	return strings.Join(lines, "\n")
}

// joinRow concatenates the glyph runs of one row, inserting a space where the
// horizontal gap between runs is wider than a fraction of the font size.
func joinRow(content pdf.TextHorizontal) string {
	var b strings.Builder
	var prevEnd, prevSize float64
	for i, t := range content {
		if i > 0 && t.X-prevEnd > prevSize*0.2 && !endsWithSpace(b.String()) && !startsWithSpace(t.S) {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		prevEnd = t.X + t.W
		prevSize = t.FontSize
	}
	return b.String()
}

func endsWithSpace(s string) bool {
	return s == "" || unicode.IsSpace(rune(s[len(s)-1]))
}

func startsWithSpace(s string) bool {
	return s == "" || unicode.IsSpace(rune(s[0]))
}

// Inspect validates the file in relaxed mode and counts its pages. A file
// that fails validation is reported as invalid rather than as an error, since
// text extraction often still succeeds on it.
func (p *pdfProcessor) Inspect(pdfData []byte) (DocumentInfo, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	info := DocumentInfo{Valid: true}
	if err := api.Validate(bytes.NewReader(pdfData), conf); err != nil {
		info.Valid = false
	}

	pages, err := api.PageCount(bytes.NewReader(pdfData), conf)
	if err != nil {
		return info, fmt.Errorf("failed to count pages: %w", err)
	}
	info.Pages = pages
	return info, nil
}
