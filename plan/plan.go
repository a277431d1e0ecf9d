// Package plan chunks a section's bullets and images into slide records.
package plan

import (
	"github.com/bgrellier/paperdeck/ingest"
)

// Slide is one finalized slide-plan entry, consumed by rendering.
type Slide struct {
	Title   string         `json:"title"`
	Bullets []string       `json:"bullets"`
	Images  []ingest.Image `json:"images,omitempty"`
	Insight string         `json:"insight,omitempty"` // key-insight line, first slide of a section only
	Notes   string         `json:"notes,omitempty"`   // speaker notes / narration
	Section string         `json:"section"`           // canonical section name
}

// Config holds the per-slide maxima.
type Config struct {
	BulletsPerSlide int // default 6
	ImagesPerSlide  int // default 2
}

// DefaultConfig returns the default per-slide maxima.
func DefaultConfig() Config {
	return Config{BulletsPerSlide: 6, ImagesPerSlide: 2}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BulletsPerSlide <= 0 {
		c.BulletsPerSlide = d.BulletsPerSlide
	}
	if c.ImagesPerSlide <= 0 {
		c.ImagesPerSlide = d.ImagesPerSlide
	}
	return c
}

// Build windows a section's bullets and images into one or more slides.
// Slide count is max(ceil(bullets/per-slide), ceil(images/per-slide)),
// minimum one. The first slide carries the section title and the key
// insight; continuation slides are titled "<title> (continued)". Content
// is assigned by fixed-size windows in original order, with no reflow.
func Build(title, sectionName string, bullets []string, images []ingest.Image, insight string, cfg Config) []Slide {
	cfg = cfg.withDefaults()

	count := ceilDiv(len(bullets), cfg.BulletsPerSlide)
	if ic := ceilDiv(len(images), cfg.ImagesPerSlide); ic > count {
		count = ic
	}
	if count < 1 {
		count = 1
	}

	slides := make([]Slide, 0, count)
	for i := 0; i < count; i++ {
		s := Slide{Section: sectionName}
		if i == 0 {
			s.Title = title
			s.Insight = insight
		} else {
			s.Title = title + " (continued)"
		}
		s.Bullets = window(bullets, i, cfg.BulletsPerSlide)
		s.Images = windowImages(images, i, cfg.ImagesPerSlide)
		slides = append(slides, s)
	}
	return slides
}

func ceilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}

func window(items []string, i, size int) []string {
	lo := i * size
	if lo >= len(items) {
		return nil
	}
	hi := lo + size
	if hi > len(items) {
		hi = len(items)
	}
	return items[lo:hi]
}

func windowImages(items []ingest.Image, i, size int) []ingest.Image {
	lo := i * size
	if lo >= len(items) {
		return nil
	}
	hi := lo + size
	if hi > len(items) {
		hi = len(items)
	}
	return items[lo:hi]
}
