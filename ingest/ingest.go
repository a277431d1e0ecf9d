package ingest

import (
	"context"
	"fmt"
	"strings"
)

// Image describes one extracted figure on a page.
type Image struct {
	Path    string     `json:"path"`              // filesystem or content reference
	Caption string     `json:"caption,omitempty"` // derived caption, may be empty
	Page    int        `json:"page"`              // 0-based originating page
	BBox    [4]float64 `json:"bbox,omitempty"`    // x0, y0, x1, y1 in page units
}

// Page is one page of the source document, immutable once ingested.
type Page struct {
	Index  int     `json:"index"` // 0-based
	Text   string  `json:"text"`  // raw page text, newline-separated lines
	Images []Image `json:"images,omitempty"`
}

// Paper is the ingestion result handed to the planning core.
type Paper struct {
	Pages  []Page `json:"pages"`
	Title  string `json:"title,omitempty"` // document metadata title, if any
	Method string `json:"method"`          // "fitz", "native", "text"
}

// PagesText returns the ordered per-page text, one string per page.
func (p *Paper) PagesText() []string {
	out := make([]string, len(p.Pages))
	for i, pg := range p.Pages {
		out[i] = pg.Text
	}
	return out
}

// PagesImages returns the page-index to images mapping.
func (p *Paper) PagesImages() map[int][]Image {
	out := make(map[int][]Image)
	for _, pg := range p.Pages {
		if len(pg.Images) > 0 {
			out[pg.Index] = pg.Images
		}
	}
	return out
}

// Ingestor reads a specific document format into pages.
type Ingestor interface {
	Ingest(ctx context.Context, path string) (*Paper, error)
	SupportedFormats() []string
}

// Registry maps file extensions to ingestors.
type Registry struct {
	ingestors map[string]Ingestor
}

// NewRegistry returns a registry with the built-in ingestors. When
// figures is true, PDF ingestion uses the MuPDF engine, which extracts
// embedded images alongside text; otherwise the pure-Go text extractor
// is used. figDir is where extracted figure files are written.
func NewRegistry(figures bool, figDir string) *Registry {
	r := &Registry{ingestors: make(map[string]Ingestor)}

	var pdf Ingestor = &PDFIngestor{}
	if figures {
		pdf = &FitzIngestor{FigDir: figDir}
	}
	txt := &TextIngestor{}

	for _, in := range []Ingestor{pdf, txt} {
		for _, f := range in.SupportedFormats() {
			r.ingestors[f] = in
		}
	}
	return r
}

// Register overrides or adds the ingestor for a format.
func (r *Registry) Register(format string, in Ingestor) {
	r.ingestors[strings.ToLower(format)] = in
}

// Get returns the ingestor for a format.
func (r *Registry) Get(format string) (Ingestor, error) {
	in, ok := r.ingestors[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("no ingestor for format: %s", format)
	}
	return in, nil
}
