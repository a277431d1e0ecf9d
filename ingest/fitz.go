package ingest

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/net/html"
)

// FitzIngestor extracts page text and embedded figures through MuPDF.
// Figure images are decoded from the page's positioned HTML rendering and
// written to FigDir; captions come from the nearest text block below each
// image's bounding box.
type FitzIngestor struct {
	// FigDir is where extracted figure files are written.
	// Defaults to "paperdeck_figs" in the working directory.
	FigDir string
}

func (f *FitzIngestor) SupportedFormats() []string { return []string{"pdf"} }

func (f *FitzIngestor) Ingest(ctx context.Context, path string) (*Paper, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	figDir := f.FigDir
	if figDir == "" {
		figDir = "paperdeck_figs"
	}

	meta := doc.Metadata()
	paper := &Paper{Method: "fitz", Title: strings.TrimSpace(meta["title"])}

	numPages := doc.NumPage()
	for n := 0; n < numPages; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := Page{Index: n}
		if text, err := doc.Text(n); err == nil {
			page.Text = strings.TrimSpace(text)
		} else {
			slog.Warn("page text extraction failed", "page", n, "error", err)
		}

		// Positioned HTML carries both embedded images and text block
		// geometry; failures here cost figures, never text.
		if raw, err := doc.HTML(n, false); err == nil {
			page.Images = f.extractFigures(raw, n, figDir)
		}

		paper.Pages = append(paper.Pages, page)
	}

	return paper, nil
}

// extractFigures pulls data-URI images out of a page's HTML rendering,
// writes them to disk, and associates captions by block proximity.
func (f *FitzIngestor) extractFigures(rawHTML string, pageIdx int, figDir string) []Image {
	node, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	var imgs []Image
	var blocks []TextBlock
	walkPage(node, &imgs, &blocks)
	if len(imgs) == 0 {
		return nil
	}

	if err := os.MkdirAll(figDir, 0o755); err != nil {
		slog.Warn("creating figure directory", "dir", figDir, "error", err)
		return nil
	}

	out := make([]Image, 0, len(imgs))
	for i, img := range imgs {
		data, ext, ok := decodeDataURI(img.Path)
		if !ok {
			continue
		}
		name := fmt.Sprintf("page_%d_img_%d.%s", pageIdx+1, i+1, ext)
		outPath := filepath.Join(figDir, name)
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			slog.Warn("writing figure", "path", outPath, "error", err)
			continue
		}
		img.Path = outPath
		img.Page = pageIdx
		img.Caption = NearestCaption(img.BBox[3], blocks)
		out = append(out, img)
	}
	return out
}

// walkPage collects img elements and positioned text blocks from the
// MuPDF HTML tree. Image Path temporarily holds the data URI.
func walkPage(n *html.Node, imgs *[]Image, blocks *[]TextBlock) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "img":
			var src, style string
			for _, a := range n.Attr {
				switch a.Key {
				case "src":
					src = a.Val
				case "style":
					style = a.Val
				}
			}
			if strings.HasPrefix(src, "data:image/") {
				*imgs = append(*imgs, Image{Path: src, BBox: styleBBox(style)})
			}
		case "p", "div":
			text := strings.TrimSpace(nodeText(n))
			if text != "" {
				var style string
				for _, a := range n.Attr {
					if a.Key == "style" {
						style = a.Val
					}
				}
				bbox := styleBBox(style)
				if bbox != ([4]float64{}) || n.Data == "p" {
					*blocks = append(*blocks, TextBlock{Text: text, Top: bbox[1], Bottom: bbox[3]})
				}
			}
			// Text captured for the whole block; don't descend twice.
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkPage(c, imgs, blocks)
	}
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

var stylePt = regexp.MustCompile(`(top|left|width|height):\s*(-?\d+(?:\.\d+)?)pt`)

// styleBBox derives [x0, y0, x1, y1] from an inline style's top/left/
// width/height point values. Missing values leave zeros.
func styleBBox(style string) [4]float64 {
	var top, left, width, height float64
	for _, m := range stylePt.FindAllStringSubmatch(style, -1) {
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		switch m[1] {
		case "top":
			top = v
		case "left":
			left = v
		case "width":
			width = v
		case "height":
			height = v
		}
	}
	return [4]float64{left, top, left + width, top + height}
}

// decodeDataURI decodes a base64 image data URI, returning the raw bytes
// and a file extension.
func decodeDataURI(uri string) ([]byte, string, bool) {
	rest, ok := strings.CutPrefix(uri, "data:image/")
	if !ok {
		return nil, "", false
	}
	semi := strings.Index(rest, ";base64,")
	if semi < 0 {
		return nil, "", false
	}
	ext := rest[:semi]
	if ext == "jpeg" {
		ext = "jpg"
	}
	data, err := base64.StdEncoding.DecodeString(rest[semi+len(";base64,"):])
	if err != nil {
		return nil, "", false
	}
	return data, ext, true
}
