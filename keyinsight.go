package paperdeck

import (
	"strings"
	"unicode"

	"github.com/bgrellier/paperdeck/bullets"
)

// insightMaxLen is the approximate maximum character length for a key
// insight line.
const insightMaxLen = 300

// minInsightOverlap is the minimum significant-word overlap for a
// sentence to qualify as the section's key insight.
const minInsightOverlap = 3

// keyInsight picks the single most representative sentence of a section:
// the one sharing the most significant words with the section's kept
// bullets. It returns "" when nothing stands out, and never returns a
// sentence that is itself one of the bullets.
func keyInsight(text string, kept []string) string {
	if text == "" || len(kept) == 0 {
		return ""
	}

	target := significantWords(strings.Join(kept, " "))
	if len(target) == 0 {
		return ""
	}

	taken := make(map[string]bool, len(kept))
	for _, b := range kept {
		taken[bullets.NormalizeKey(b)] = true
	}

	best := ""
	bestScore := 0
	for _, s := range bullets.SplitSentences(text) {
		if len(s) > insightMaxLen {
			continue
		}
		if taken[bullets.NormalizeKey(s)] {
			continue
		}
		score := 0
		for w := range significantWords(s) {
			if target[w] {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = s
		}
	}

	if bestScore < minInsightOverlap {
		return ""
	}
	return strings.TrimSpace(best)
}

// insightStopwords are common words ignored when scoring overlap.
var insightStopwords = map[string]bool{
	"the": true, "and": true, "for": true, "that": true, "this": true,
	"with": true, "from": true, "are": true, "was": true, "were": true,
	"have": true, "has": true, "can": true, "our": true, "their": true,
	"which": true, "into": true, "also": true, "than": true, "then": true,
	"when": true, "where": true, "while": true, "these": true, "those": true,
}

// significantWords returns the lowercased alphabetic words of s longer
// than three characters, minus stopwords.
func significantWords(s string) map[string]bool {
	words := make(map[string]bool)
	var b strings.Builder
	flush := func() {
		w := strings.ToLower(b.String())
		b.Reset()
		if len(w) > 3 && !insightStopwords[w] {
			words[w] = true
		}
	}
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		} else if b.Len() > 0 {
			flush()
		}
	}
	if b.Len() > 0 {
		flush()
	}
	return words
}
