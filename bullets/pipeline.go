package bullets

import (
	"regexp"
	"strings"
)

// Config holds the tunable thresholds of the bullet pipeline. These are
// presentation-style choices, not values derived from document structure.
type Config struct {
	MinSentenceWords int     // coarse screen lower bound (default 8)
	MaxSentenceWords int     // coarse screen upper bound (default 80)
	MinWords         int     // final bullet lower bound (default 6)
	MaxWords         int     // final bullet upper bound (default 60)
	OverlapThreshold float64 // near-duplicate token overlap (default 0.7)
}

// DefaultConfig returns the tuned default thresholds.
func DefaultConfig() Config {
	return Config{
		MinSentenceWords: 8,
		MaxSentenceWords: 80,
		MinWords:         6,
		MaxWords:         60,
		OverlapThreshold: 0.7,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinSentenceWords == 0 {
		c.MinSentenceWords = d.MinSentenceWords
	}
	if c.MaxSentenceWords == 0 {
		c.MaxSentenceWords = d.MaxSentenceWords
	}
	if c.MinWords == 0 {
		c.MinWords = d.MinWords
	}
	if c.MaxWords == 0 {
		c.MaxWords = d.MaxWords
	}
	if c.OverlapThreshold == 0 {
		c.OverlapThreshold = d.OverlapThreshold
	}
	return c
}

// Pipeline turns candidate sentences into final bullets. It is pure: the
// dedup sets live per call, so running it twice on the same input yields
// the same output.
type Pipeline struct {
	cfg Config
}

// New returns a Pipeline, replacing zero-value thresholds with defaults.
func New(cfg Config) *Pipeline {
	return &Pipeline{cfg: cfg.withDefaults()}
}

// Run applies the filter stages in canonical order (rewrite, signal,
// length, exact dedup, near dedup, low-signal denylist, per-section cap)
// and then tops up thin sections from the remaining sentences. target is
// the per-section bullet budget.
func (p *Pipeline) Run(sentences []string, target int) []string {
	if target <= 0 {
		return nil
	}

	var kept []string
	seen := make(map[string]bool)
	var seenTokens []map[string]bool
	used := make(map[int]bool)

	for i, sent := range sentences {
		b := Rewrite(sent)
		if b == "" {
			continue
		}
		if !HasSignal(b) {
			continue
		}
		if !p.withinLength(b) {
			continue
		}
		key := NormalizeKey(b)
		if seen[key] {
			continue
		}
		toks := TokenSet(b)
		if p.nearDuplicate(toks, seenTokens) {
			continue
		}
		if LowSignal(b) {
			continue
		}

		kept = append(kept, b)
		seen[key] = true
		seenTokens = append(seenTokens, toks)
		used[i] = true

		if len(kept) >= target {
			break
		}
	}

	// Safety top-up: thin sections pull eligible leftovers rather than
	// shipping visually empty. No filler is ever invented; when the text
	// has nothing more to give, the section stays thin.
	for len(kept) < target {
		added := false
		for i, sent := range sentences {
			if used[i] {
				continue
			}
			b := Rewrite(sent)
			if b == "" || !HasSignal(b) || !p.withinLength(b) || LowSignal(b) {
				used[i] = true
				continue
			}
			key := NormalizeKey(b)
			if seen[key] {
				used[i] = true
				continue
			}
			toks := TokenSet(b)
			if p.nearDuplicate(toks, seenTokens) {
				used[i] = true
				continue
			}

			kept = append(kept, b)
			seen[key] = true
			seenTokens = append(seenTokens, toks)
			used[i] = true
			added = true
			break // at most one per pass
		}
		if !added {
			break
		}
	}

	return kept
}

// Finalize cleans bullets that arrived already written, such as output
// of the generative enhancer: light polish, then the length gate, both
// dedup stages, the low-signal denylist, and the per-section cap. No
// top-up: externally supplied bullets are never padded.
func (p *Pipeline) Finalize(candidates []string, target int) []string {
	var kept []string
	seen := make(map[string]bool)
	var seenTokens []map[string]bool

	for _, c := range candidates {
		b := Polish(c)
		if b == "" || !p.withinLength(b) || LowSignal(b) {
			continue
		}
		key := NormalizeKey(b)
		if seen[key] {
			continue
		}
		toks := TokenSet(b)
		if p.nearDuplicate(toks, seenTokens) {
			continue
		}
		kept = append(kept, b)
		seen[key] = true
		seenTokens = append(seenTokens, toks)
		if target > 0 && len(kept) >= target {
			break
		}
	}
	return kept
}

// Polish normalizes a bullet's form without touching its meaning: strips
// list markers, trailing separators, capitalizes, and enforces a terminal
// period.
func Polish(b string) string {
	b = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(b), "* "))
	b = strings.TrimPrefix(b, "- ")
	b = strings.TrimRight(b, ",;: ")
	if b == "" {
		return ""
	}
	b = strings.ToUpper(b[:1]) + b[1:]
	if !strings.HasSuffix(b, ".") && !strings.HasSuffix(b, "!") && !strings.HasSuffix(b, "?") {
		b += "."
	}
	return b
}

func (p *Pipeline) withinLength(s string) bool {
	wc := len(strings.Fields(s))
	return wc >= p.cfg.MinWords && wc <= p.cfg.MaxWords
}

func (p *Pipeline) nearDuplicate(toks map[string]bool, prev []map[string]bool) bool {
	for _, pt := range prev {
		if OverlapRatio(toks, pt) >= p.cfg.OverlapThreshold {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Normalized keys and token sets
// ---------------------------------------------------------------------------

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)
var nonAlphaRun = regexp.MustCompile(`[^a-z]+`)

// NormalizeKey returns the exact-dedup key of a bullet: lowercased with
// every non-alphanumeric character removed.
func NormalizeKey(s string) string {
	return nonAlnumRun.ReplaceAllString(strings.ToLower(s), "")
}

// TokenSet returns the near-dedup token set of a bullet: alphabetic tokens
// longer than three characters, with punctuation treated as separators so
// that "self-attention" and "self attention" tokenize identically.
func TokenSet(s string) map[string]bool {
	cleaned := nonAlphaRun.ReplaceAllString(strings.ToLower(s), " ")
	set := make(map[string]bool)
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) > 3 {
			set[tok] = true
		}
	}
	return set
}

// OverlapRatio computes |A∩B| / max(|A|,|B|). Empty sets never overlap.
func OverlapRatio(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if b[t] {
			inter++
		}
	}
	m := len(a)
	if len(b) > m {
		m = len(b)
	}
	return float64(inter) / float64(m)
}
