package ingest

import (
	"context"
	"fmt"
	"os"
)

// TextIngestor reads a plain-text file as a single-page paper.
type TextIngestor struct{}

func (t *TextIngestor) SupportedFormats() []string { return []string{"txt", "text", "md"} }

func (t *TextIngestor) Ingest(ctx context.Context, path string) (*Paper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading text file: %w", err)
	}
	return &Paper{
		Pages:  []Page{{Index: 0, Text: string(data)}},
		Method: "text",
	}, nil
}
