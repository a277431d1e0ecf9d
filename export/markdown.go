// Package export renders finished deck plans into presentable files:
// Marp-compatible markdown, a standalone HTML preview, and a
// spreadsheet for bullet-by-bullet review.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bgrellier/paperdeck"
)

// WriteMarkdown renders the deck as a Marp-compatible markdown
// presentation: slides separated by "---", speaker notes as HTML
// comments, images as standard markdown image links.
func WriteMarkdown(w io.Writer, deck *paperdeck.Deck) error {
	var b strings.Builder

	b.WriteString("---\n")
	b.WriteString("marp: true\n")
	b.WriteString("paginate: true\n")
	b.WriteString("---\n\n")

	b.WriteString("# " + deck.Title + "\n")

	for _, s := range deck.Slides {
		b.WriteString("\n---\n\n")
		b.WriteString("## " + s.Title + "\n\n")
		if s.Insight != "" {
			b.WriteString("> " + s.Insight + "\n\n")
		}
		for _, bl := range s.Bullets {
			b.WriteString("- " + bl + "\n")
		}
		for _, img := range s.Images {
			caption := img.Caption
			if caption == "" {
				caption = "figure"
			}
			fmt.Fprintf(&b, "\n![%s](%s)\n", caption, img.Path)
		}
		if s.Notes != "" {
			b.WriteString("\n<!--\n" + s.Notes + "\n-->\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// SaveMarkdown writes the markdown presentation to a file.
func SaveMarkdown(path string, deck *paperdeck.Deck) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating markdown file: %w", err)
	}
	defer f.Close()
	if err := WriteMarkdown(f, deck); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	return nil
}
