package ingest

import (
	"regexp"
	"sort"
	"strings"
)

// TextBlock is a positioned run of page text used for caption association.
type TextBlock struct {
	Text   string
	Top    float64
	Bottom float64
}

// Caption association bounds. Figure captions sit directly under the
// figure; a block further away than maxCaptionDistance belongs to the
// body text.
const (
	maxCaptionDistance = 150.0
	maxCaptionChars    = 220
	maxCaptionWords    = 40
)

var captionMarker = regexp.MustCompile(`(?i)\b(fig(?:ure)?|table|caption)\b`)

// NearestCaption finds the caption for an image given the bottom edge of
// its bounding box and the page's text blocks. The nearest block below
// the image wins if it either carries a caption marker or is short enough
// to be a caption rather than a paragraph. No qualifying block means an
// empty caption, never an error.
func NearestCaption(imageBottom float64, blocks []TextBlock) string {
	type candidate struct {
		dist float64
		text string
	}
	var candidates []candidate
	for _, b := range blocks {
		if b.Top < imageBottom-1 {
			continue // above or overlapping the image
		}
		dist := b.Top - imageBottom
		if dist > maxCaptionDistance {
			continue
		}
		candidates = append(candidates, candidate{dist: dist, text: b.Text})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })

	for _, c := range candidates {
		t := strings.TrimSpace(c.text)
		if t == "" {
			continue
		}
		if captionMarker.MatchString(t) || looksShort(t) {
			return strings.Join(strings.Fields(t), " ")
		}
	}
	return ""
}

func looksShort(t string) bool {
	return len(t) < maxCaptionChars && len(strings.Fields(t)) < maxCaptionWords
}
