package ingest

import (
	"strings"
	"testing"
)

func TestNearestCaptionMarker(t *testing.T) {
	blocks := []TextBlock{
		{Text: "Body paragraph well above the figure that runs on for a while.", Top: 100, Bottom: 180},
		{Text: "Figure 2: Scaled dot-product attention.", Top: 520, Bottom: 540},
	}

	got := NearestCaption(500, blocks)
	if got != "Figure 2: Scaled dot-product attention." {
		t.Errorf("NearestCaption = %q", got)
	}
}

func TestNearestCaptionPrefersClosest(t *testing.T) {
	blocks := []TextBlock{
		{Text: "Table 1: far away results.", Top: 640, Bottom: 660},
		{Text: "Figure 3: the nearer caption.", Top: 510, Bottom: 530},
	}

	got := NearestCaption(500, blocks)
	if got != "Figure 3: the nearer caption." {
		t.Errorf("NearestCaption = %q, want the nearer block", got)
	}
}

func TestNearestCaptionIgnoresBlocksAbove(t *testing.T) {
	blocks := []TextBlock{
		{Text: "Figure 1: a caption that belongs to an earlier image.", Top: 100, Bottom: 120},
	}
	if got := NearestCaption(500, blocks); got != "" {
		t.Errorf("NearestCaption = %q, want empty", got)
	}
}

func TestNearestCaptionDistanceBound(t *testing.T) {
	blocks := []TextBlock{
		{Text: "Figure 5: too far below the image to belong to it.", Top: 700, Bottom: 720},
	}
	if got := NearestCaption(500, blocks); got != "" {
		t.Errorf("NearestCaption = %q, want empty (beyond distance bound)", got)
	}
}

func TestNearestCaptionShortBlockWithoutMarker(t *testing.T) {
	// A short block right under the image counts even without an
	// explicit figure marker.
	blocks := []TextBlock{
		{Text: "Overall model architecture.", Top: 515, Bottom: 530},
	}
	if got := NearestCaption(500, blocks); got != "Overall model architecture." {
		t.Errorf("NearestCaption = %q", got)
	}
}

func TestNearestCaptionRejectsParagraph(t *testing.T) {
	long := strings.Repeat("This paragraph is clearly ordinary body prose and keeps going at length. ", 6)
	blocks := []TextBlock{{Text: long, Top: 515, Bottom: 600}}

	if got := NearestCaption(500, blocks); got != "" {
		t.Errorf("NearestCaption = %q, want empty (paragraph)", got)
	}
}

func TestNearestCaptionCollapsesWhitespace(t *testing.T) {
	blocks := []TextBlock{
		{Text: "Figure 4:\n  multi-head   attention.", Top: 510, Bottom: 530},
	}
	if got := NearestCaption(500, blocks); got != "Figure 4: multi-head attention." {
		t.Errorf("NearestCaption = %q", got)
	}
}

// ---------------------------------------------------------------------------
// Registry
// ---------------------------------------------------------------------------

func TestRegistryFormats(t *testing.T) {
	r := NewRegistry(false, "")

	for _, format := range []string{"pdf", "txt", "text", "md"} {
		if _, err := r.Get(format); err != nil {
			t.Errorf("Get(%q) failed: %v", format, err)
		}
	}
	if _, err := r.Get("docx"); err == nil {
		t.Error("Get(docx) should fail")
	}
}

func TestRegistryFigureEngine(t *testing.T) {
	r := NewRegistry(true, t.TempDir())
	in, err := r.Get("pdf")
	if err != nil {
		t.Fatalf("Get(pdf): %v", err)
	}
	if _, ok := in.(*FitzIngestor); !ok {
		t.Errorf("pdf ingestor = %T, want *FitzIngestor when figures are on", in)
	}

	r = NewRegistry(false, "")
	in, _ = r.Get("pdf")
	if _, ok := in.(*PDFIngestor); !ok {
		t.Errorf("pdf ingestor = %T, want *PDFIngestor when figures are off", in)
	}
}

func TestRegistryRegisterOverride(t *testing.T) {
	r := NewRegistry(false, "")
	custom := &TextIngestor{}
	r.Register("PDF", custom)

	in, err := r.Get("pdf")
	if err != nil {
		t.Fatalf("Get(pdf): %v", err)
	}
	if in != Ingestor(custom) {
		t.Error("Register should override the pdf ingestor case-insensitively")
	}
}
