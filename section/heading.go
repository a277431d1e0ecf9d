package section

import (
	"regexp"
	"strings"
)

// Canonical section names. Every recognized heading maps onto exactly one
// of these; anything unrecognized falls back to Fallback rather than being
// dropped.
const (
	Abstract     = "abstract"
	Introduction = "introduction"
	Background   = "background"
	RelatedWork  = "related work"
	Method       = "method"
	Experiments  = "experiments"
	Results      = "results"
	Conclusion   = "conclusion"
	Fallback     = "section"
)

// Heading length bounds. Lines outside this range are never headings:
// below the minimum they are stray glyphs, above the maximum they are
// paragraphs that happen to start a page.
const (
	minHeadingLen = 3
	maxHeadingLen = 120
)

// ---------------------------------------------------------------------------
// Heading pattern detection
// ---------------------------------------------------------------------------

// headingPatterns are compiled patterns for the canonical academic section
// headings, each optionally preceded by a hierarchical outline number such
// as "3" or "3.2".
var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)*)?\s*abstract\s*$`),
	regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)*)?\s*introduction\s*$`),
	regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)*)?\s*background\s*$`),
	regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)*)?\s*related\s+work\s*$`),
	regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)*)?\s*(method(?:ology)?|approach|model)s?\s*$`),
	regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)*)?\s*(experiments?|results?|evaluation|analysis)\s*$`),
	regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)*)?\s*(conclusions?|future\s+work|limitations)\s*$`),
	regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)*)?\s*(references|bibliography|acknowledg(?:e)?ments?)\s*$`),
}

// numberedHeading is the generic fallback for papers with non-standard
// section names: an outline number followed by capitalized words.
var numberedHeading = regexp.MustCompile(`^\s*\d+(\.\d+)*\s+[A-Z][A-Za-z\s\-]{2,60}$`)

// affiliationTokens mark lines that look like author affiliations or
// institution blocks. The generic numbered-heading fallback must not
// swallow these.
var affiliationTokens = []string{
	"research", "university", "institute", "department",
	"laboratory", "corporation", "inc.", "ltd", "school",
	"college", "faculty", "center", "centre", "group", "association",
}

// IsHeading reports whether a line of page text is a section heading.
// Ambiguous lines are treated as prose; over-detecting headings fragments
// sections, under-detecting merely merges them.
func IsHeading(line string) bool {
	l := strings.TrimSpace(line)
	if len(l) < minHeadingLen || len(l) > maxHeadingLen {
		return false
	}

	for _, re := range headingPatterns {
		if re.MatchString(l) {
			return true
		}
	}

	if numberedHeading.MatchString(l) {
		low := strings.ToLower(l)
		for _, tok := range affiliationTokens {
			if strings.Contains(low, tok) {
				return false
			}
		}
		return true
	}

	return false
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9 ]`)
var multiSpace = regexp.MustCompile(`\s+`)

// Normalize maps a raw heading onto the canonical vocabulary. The substring
// tests are ordered: earlier entries win when a heading matches several.
// Unmatched headings map to Fallback; Normalize never fails.
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	s = nonAlnum.ReplaceAllString(s, " ")
	s = strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))

	switch {
	case strings.Contains(s, "abstract"):
		return Abstract
	case strings.Contains(s, "introduction"):
		return Introduction
	case strings.Contains(s, "background"):
		return Background
	case strings.Contains(s, "related work"):
		return RelatedWork
	case strings.Contains(s, "method"), strings.Contains(s, "approach"), strings.Contains(s, "model"), strings.Contains(s, "architecture"):
		return Method
	case strings.Contains(s, "experiment"), strings.Contains(s, "dataset"):
		return Experiments
	case strings.Contains(s, "result"), strings.Contains(s, "evaluation"), strings.Contains(s, "analysis"):
		return Results
	case strings.Contains(s, "conclusion"), strings.Contains(s, "limitation"), strings.Contains(s, "future work"):
		return Conclusion
	default:
		return Fallback
	}
}

// displayNames maps canonical names to slide titles.
var displayNames = map[string]string{
	Abstract:     "Overview",
	Introduction: "Introduction",
	Background:   "Background",
	RelatedWork:  "Related Work",
	Method:       "Method",
	Experiments:  "Experiments",
	Results:      "Results",
	Conclusion:   "Conclusion",
	Fallback:     "Section",
}

// Display returns the slide title for a canonical section name.
func Display(name string) string {
	if d, ok := displayNames[name]; ok {
		return d
	}
	if name == "" {
		return displayNames[Fallback]
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// skipTokens identify sections that never reach the slide plan.
var skipTokens = []string{
	"references", "bibliography", "acknowledg", "appendix", "supplementary",
}

// Skippable reports whether a section should be excluded from planning
// based on its raw heading.
func Skippable(rawTitle string) bool {
	low := strings.ToLower(rawTitle)
	for _, tok := range skipTokens {
		if strings.Contains(low, tok) {
			return true
		}
	}
	return false
}
