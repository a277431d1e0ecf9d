package export

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/bgrellier/paperdeck"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

const htmlHeader = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; color: #1a1a2e; }
section.slide { border: 1px solid #ddd; border-radius: 8px; padding: 1rem 1.5rem; margin: 1.5rem 0; }
section.slide h2 { margin-top: 0; }
blockquote { border-left: 3px solid #888; margin-left: 0; padding-left: 1rem; color: #444; }
img { max-width: 100%%; }
.notes { font-size: .85rem; color: #666; border-top: 1px dashed #ccc; margin-top: 1rem; padding-top: .5rem; }
</style>
</head>
<body>
<h1>%s</h1>
`

// WriteHTML renders the deck as a standalone HTML preview, one boxed
// section per slide with speaker notes underneath.
func WriteHTML(w io.Writer, deck *paperdeck.Deck) error {
	title := html.EscapeString(deck.Title)
	if _, err := fmt.Fprintf(w, htmlHeader, title, title); err != nil {
		return err
	}

	for _, s := range deck.Slides {
		var src strings.Builder
		src.WriteString("## " + s.Title + "\n\n")
		if s.Insight != "" {
			src.WriteString("> " + s.Insight + "\n\n")
		}
		for _, bl := range s.Bullets {
			src.WriteString("- " + bl + "\n")
		}
		for _, img := range s.Images {
			fmt.Fprintf(&src, "\n![%s](%s)\n", img.Caption, img.Path)
		}

		var body bytes.Buffer
		if err := md.Convert([]byte(src.String()), &body); err != nil {
			return fmt.Errorf("rendering slide %q: %w", s.Title, err)
		}

		if _, err := io.WriteString(w, "<section class=\"slide\">\n"); err != nil {
			return err
		}
		if _, err := body.WriteTo(w); err != nil {
			return err
		}
		if s.Notes != "" {
			if _, err := fmt.Fprintf(w, "<div class=\"notes\">%s</div>\n", html.EscapeString(s.Notes)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</section>\n"); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

// SaveHTML writes the HTML preview to a file.
func SaveHTML(path string, deck *paperdeck.Deck) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating html file: %w", err)
	}
	defer f.Close()
	if err := WriteHTML(f, deck); err != nil {
		return fmt.Errorf("writing html: %w", err)
	}
	return nil
}
