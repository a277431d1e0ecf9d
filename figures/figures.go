// Package figures associates extracted figure images with sections.
//
// Placement is at-most-once across the whole document: an Allocator is
// threaded through the section loop and records every image it hands out,
// so no figure appears on two slides. Section processing order is part of
// the contract because of this.
package figures

import (
	"sort"
	"strings"

	"github.com/bgrellier/paperdeck/ingest"
	"github.com/bgrellier/paperdeck/section"
)

// visualSections are the canonical sections that carry figures. Everything
// else gets none: an introduction figure is usually a teaser duplicate of
// the method figure.
var visualSections = map[string]bool{
	section.Method:      true,
	section.Results:     true,
	section.Experiments: true,
}

// Visual reports whether a canonical section name attempts image placement.
func Visual(name string) bool { return visualSections[name] }

// Keyword scores. Architecture and diagram imagery presents well; raster
// dumps of tables do not.
var (
	positiveKeywords = []string{"architecture", "diagram", "overview", "framework", "pipeline", "structure", "network", "model"}
	negativeKeywords = []string{"table", "tabular"}

	// sectionKeywords reward agreement between an image's caption or
	// filename and the section it would land in.
	sectionKeywords = map[string][]string{
		section.Method:      {"architecture", "model", "encoder", "decoder", "layer", "attention", "diagram"},
		section.Results:     {"result", "performance", "comparison", "accuracy", "score", "curve"},
		section.Experiments: {"experiment", "ablation", "dataset", "training", "curve"},
	}
)

// Allocator enforces the document-wide at-most-once placement of images.
// It is not safe for concurrent use; section traversal is sequential by
// contract.
type Allocator struct {
	used map[string]bool

	// Stat, when set, filters candidates whose path does not resolve.
	// Reporting broken references stays the renderer's concern; the
	// associator just declines to place them.
	Stat func(path string) bool
}

// NewAllocator returns an empty Allocator.
func NewAllocator() *Allocator {
	return &Allocator{used: make(map[string]bool)}
}

// Used reports whether an image path has already been placed.
func (a *Allocator) Used(path string) bool { return a.used[path] }

// Select returns up to maxImages ranked, unused images for a section,
// drawn from the pages the section spans, and marks them used. Sections
// outside the visual set always get nil.
func (a *Allocator) Select(sec *section.Section, pagesImages map[int][]ingest.Image, maxImages int) []ingest.Image {
	if maxImages <= 0 || !Visual(sec.Title) {
		return nil
	}

	type ranked struct {
		img   ingest.Image
		score int
		order int
	}
	var pool []ranked
	order := 0
	for _, pageIdx := range sec.Pages {
		for _, img := range pagesImages[pageIdx] {
			order++
			if a.used[img.Path] {
				continue
			}
			if a.Stat != nil && !a.Stat(img.Path) {
				continue
			}
			pool = append(pool, ranked{img: img, score: score(img, sec.Title), order: order})
		}
	}
	if len(pool) == 0 {
		return nil
	}

	// Rank by score, ties broken by original page order.
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].score != pool[j].score {
			return pool[i].score > pool[j].score
		}
		return pool[i].order < pool[j].order
	})

	n := maxImages
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]ingest.Image, 0, n)
	for _, r := range pool[:n] {
		a.used[r.img.Path] = true
		out = append(out, r.img)
	}
	return out
}

// score rates an image for a section from its filename and caption text.
func score(img ingest.Image, sectionName string) int {
	text := strings.ToLower(img.Path + " " + img.Caption)

	s := 0
	for _, kw := range positiveKeywords {
		if strings.Contains(text, kw) {
			s += 2
		}
	}
	for _, kw := range negativeKeywords {
		if strings.Contains(text, kw) {
			s -= 2
		}
	}
	for _, kw := range sectionKeywords[sectionName] {
		if strings.Contains(text, kw) {
			s += 3
		}
	}
	return s
}

// DefaultCaption fills in a generic caption for images that arrived
// without one, keyed by the section they landed in.
func DefaultCaption(sectionName string) string {
	switch sectionName {
	case section.Method:
		return "Model architecture overview."
	case section.Results, section.Experiments:
		return "Experimental results and performance comparison."
	default:
		return ""
	}
}
