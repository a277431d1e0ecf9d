package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFIngestor extracts per-page text with the pure-Go PDF reader. It
// produces no figure images; use FitzIngestor when figures are wanted.
type PDFIngestor struct{}

func (p *PDFIngestor) SupportedFormats() []string { return []string{"pdf"} }

func (p *PDFIngestor) Ingest(ctx context.Context, path string) (*Paper, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	totalPages := reader.NumPage()
	pages := make([]Page, 0, totalPages)

	for i := 1; i <= totalPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out := Page{Index: i - 1}
		page := reader.Page(i)
		if !page.V.IsNull() {
			if text, err := pageText(page); err == nil {
				out.Text = text
			}
			// Pages that fail to extract stay empty rather than
			// shifting every later page index.
		}
		pages = append(pages, out)
	}

	return &Paper{Pages: pages, Method: "native"}, nil
}

// pageText extracts a page's text grouped into lines by row position.
func pageText(page pdf.Page) (string, error) {
	rows, err := page.GetTextByRow()
	if err != nil {
		// Fall back to plain extraction when row grouping fails.
		text, perr := page.GetPlainText(nil)
		if perr != nil {
			return "", perr
		}
		return strings.TrimSpace(text), nil
	}

	var b strings.Builder
	for _, row := range rows {
		var line strings.Builder
		for _, word := range row.Content {
			line.WriteString(word.S)
		}
		trimmed := strings.TrimSpace(line.String())
		if trimmed == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(trimmed)
	}
	return b.String(), nil
}
