package bullets

import (
	"regexp"
	"strings"
)

// sentenceEnd finds sentence-terminal punctuation followed by whitespace.
// Splitting on the whitespace after the terminator keeps every character
// of the original text: nothing is consumed except the separator itself.
var sentenceEnd = regexp.MustCompile(`([.!?])\s+`)

// SplitSentences splits prose on sentence-terminal punctuation followed by
// whitespace, preserving document order and the terminator itself.
func SplitSentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	marked := sentenceEnd.ReplaceAllString(text, "$1\x00")
	parts := strings.Split(marked, "\x00")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ExtractSentences returns the candidate sentences of a section: split in
// document order, coarsely screened by word count to shed headers, captions
// and fragment noise before the real filters run.
func ExtractSentences(text string, minWords, maxWords int) []string {
	if minWords == 0 {
		minWords = 8
	}
	if maxWords == 0 {
		maxWords = 80
	}
	var out []string
	for _, s := range SplitSentences(text) {
		wc := len(strings.Fields(s))
		if wc >= minWords && wc <= maxWords {
			out = append(out, s)
		}
	}
	return out
}
