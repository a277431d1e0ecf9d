package bullets

import (
	"regexp"
	"strings"
)

// Structural rejection patterns. A sentence matching any of these is not a
// presentable bullet no matter how it reads: it is residue of PDF layout,
// citations, or cross-references.
var (
	hyphenBreak        = regexp.MustCompile(`(\w)-\s+(\w)`)
	leadingConjunction = regexp.MustCompile(`^(and|but|or)\b`)
	citationResidue    = regexp.MustCompile(`^\)?\d{4}\)`)
	figureRefOpening   = regexp.MustCompile(`^\d+\s+(illustrates|shows|presents)`)
	comparativeDangler = regexp.MustCompile(`\b(by over|achieves?|improves?|outperforms?)\b\s*(,|\.|$)`)
	comparativeToken   = regexp.MustCompile(`\b(by over|achiev\w*|improv\w*|outperform\w*)\b`)
	prepositionEnding  = regexp.MustCompile(`\b(by|over|of|with|to|for|in|on)\s*\.$`)
	navigationalRef    = regexp.MustCompile(`^\s*(see|refer to|shown in|details in|as seen in)\s+(table|figure|fig\.|section)\s+\d+`)
	captionResidue     = regexp.MustCompile(`^(table|figure|fig\.)\s+\d+\.?\s*$`)
	parenthetical      = regexp.MustCompile(`\([^)]*\)`)
	bracketed          = regexp.MustCompile(`\[[^\]]*\]`)
	spaceRuns          = regexp.MustCompile(`\s+`)
)

// Rewrite repairs a candidate sentence into bullet form, or returns the
// empty string to reject it. It may shorten the sentence (citations,
// connectives) but never reorders its clauses.
//
// Kept sentences come back with hyphenation artifacts repaired, leading
// discourse connectives and narration prefaces stripped, inline citations
// removed, the first letter capitalized, and a terminal period.
func Rewrite(sentence string) string {
	// PDF line-break hyphenation: "atten- tion" -> "attention".
	s := hyphenBreak.ReplaceAllString(sentence, "$1$2")
	s = strings.TrimSpace(spaceRuns.ReplaceAllString(s, " "))

	s = discourseConnectives.ReplaceAllString(s, "")
	s = narrativePrefaces.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	low := strings.ToLower(s)

	switch {
	case leadingConjunction.MatchString(low):
		return ""
	case strings.HasPrefix(s, ")") || citationResidue.MatchString(s):
		return ""
	case strings.Contains(s, "…") || strings.Contains(s, "..."):
		return ""
	case figureRefOpening.MatchString(low):
		return ""
	case comparativeDangler.MatchString(low):
		return ""
	// A comparative claim trailing off into a comma has lost its object:
	// "we improve performance by over 10%," carries nothing to present.
	case strings.HasSuffix(low, ",") && comparativeToken.MatchString(low):
		return ""
	case prepositionEnding.MatchString(low):
		return ""
	case navigationalRef.MatchString(low):
		return ""
	case captionResidue.MatchString(low):
		return ""
	}

	// Inline citations go, the rest of the sentence stays. Checking the
	// noise tokens after this keeps sentences whose only author mention
	// was a parenthetical citation.
	s = parenthetical.ReplaceAllString(s, "")
	s = bracketed.ReplaceAllString(s, "")
	s = strings.TrimSpace(spaceRuns.ReplaceAllString(s, " "))
	if s == "" {
		return ""
	}

	low = strings.ToLower(s)
	for _, tok := range noiseTokens {
		if strings.Contains(low, tok) {
			return ""
		}
	}

	s = strings.TrimRight(s, ",;: ")
	if s == "" {
		return ""
	}
	s = strings.ToUpper(s[:1]) + s[1:]
	if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") && !strings.HasSuffix(s, "?") {
		s += "."
	}
	return s
}

// HasSignal reports whether a rewritten sentence carries at least one
// catalogued verb or domain noun. Disjunctive on purpose: requiring both
// over-rejects legitimate technical sentences.
func HasSignal(s string) bool {
	low := strings.ToLower(s)
	return signalVerbs.MatchString(low) || signalNouns.MatchString(low)
}

// LowSignal reports whether a bullet matches the generic-boilerplate
// denylist.
func LowSignal(s string) bool {
	low := strings.ToLower(s)
	for _, re := range lowSignalPatterns {
		if re.MatchString(low) {
			return true
		}
	}
	return false
}
