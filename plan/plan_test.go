package plan

import (
	"fmt"
	"testing"

	"github.com/bgrellier/paperdeck/ingest"
)

func bulletList(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Bullet number %d carries some content.", i+1)
	}
	return out
}

func TestBuildSingleSlide(t *testing.T) {
	slides := Build("Method", "method", bulletList(4), nil, "Key insight line.", Config{})

	if len(slides) != 1 {
		t.Fatalf("len(slides) = %d, want 1", len(slides))
	}
	s := slides[0]
	if s.Title != "Method" {
		t.Errorf("Title = %q, want %q", s.Title, "Method")
	}
	if s.Section != "method" {
		t.Errorf("Section = %q, want %q", s.Section, "method")
	}
	if s.Insight != "Key insight line." {
		t.Errorf("Insight = %q", s.Insight)
	}
	if len(s.Bullets) != 4 {
		t.Errorf("len(Bullets) = %d, want 4", len(s.Bullets))
	}
}

func TestBuildContinuationSlides(t *testing.T) {
	slides := Build("Method", "method", bulletList(8), nil, "Insight.", Config{BulletsPerSlide: 6})

	if len(slides) != 2 {
		t.Fatalf("len(slides) = %d, want 2", len(slides))
	}
	if slides[0].Title != "Method" || slides[1].Title != "Method (continued)" {
		t.Errorf("titles = %q, %q", slides[0].Title, slides[1].Title)
	}
	if len(slides[0].Bullets) != 6 || len(slides[1].Bullets) != 2 {
		t.Errorf("bullet split = %d, %d, want 6, 2", len(slides[0].Bullets), len(slides[1].Bullets))
	}
	// The insight belongs to a section's first slide only.
	if slides[1].Insight != "" {
		t.Errorf("continuation Insight = %q, want empty", slides[1].Insight)
	}
	// Windowing keeps document order.
	if slides[1].Bullets[0] != bulletList(8)[6] {
		t.Errorf("continuation starts at %q", slides[1].Bullets[0])
	}
}

func TestBuildImageDrivenCount(t *testing.T) {
	imgs := []ingest.Image{{Path: "a.png"}, {Path: "b.png"}, {Path: "c.png"}}
	slides := Build("Results", "results", bulletList(2), imgs, "", Config{ImagesPerSlide: 2})

	if len(slides) != 2 {
		t.Fatalf("len(slides) = %d, want 2 (image driven)", len(slides))
	}
	if len(slides[0].Images) != 2 || len(slides[1].Images) != 1 {
		t.Errorf("image split = %d, %d, want 2, 1", len(slides[0].Images), len(slides[1].Images))
	}
	if len(slides[1].Bullets) != 0 {
		t.Errorf("second slide bullets = %v, want none", slides[1].Bullets)
	}
}

func TestBuildMinimumOneSlide(t *testing.T) {
	slides := Build("Overview", "abstract", nil, nil, "", Config{})
	if len(slides) != 1 {
		t.Fatalf("len(slides) = %d, want 1", len(slides))
	}
	if len(slides[0].Bullets) != 0 || len(slides[0].Images) != 0 {
		t.Error("empty section should yield one empty slide")
	}
}

func TestBuildBoundsRespected(t *testing.T) {
	cfg := Config{BulletsPerSlide: 3, ImagesPerSlide: 1}
	imgs := []ingest.Image{{Path: "a.png"}, {Path: "b.png"}}
	slides := Build("Experiments", "experiments", bulletList(7), imgs, "", cfg)

	for i, s := range slides {
		if len(s.Bullets) > 3 {
			t.Errorf("slide %d has %d bullets, max 3", i, len(s.Bullets))
		}
		if len(s.Images) > 1 {
			t.Errorf("slide %d has %d images, max 1", i, len(s.Images))
		}
	}

	total := 0
	for _, s := range slides {
		total += len(s.Bullets)
	}
	if total != 7 {
		t.Errorf("bullets across slides = %d, want 7 (no loss, no reflow)", total)
	}
}
