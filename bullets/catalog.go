package bullets

import "regexp"

// Fixed catalogues backing the filter stages. These are presentation-style
// heuristics, not linguistics: the verb and noun sets are deliberately
// generous so that the signal filter stays permissive.

// discourseConnectives are leading connectives stripped during rewrite.
var discourseConnectives = regexp.MustCompile(`(?i)^(however|therefore|thus|moreover|furthermore|consequently|hence|accordingly|specifically|notably|importantly|interestingly|finally|additionally)[, ]+`)

// narrativePrefaces are leading paper-narration phrases stripped during rewrite.
var narrativePrefaces = regexp.MustCompile(`(?i)^(in this paper|in this work|we show that|we demonstrate that|we find that|it is observed that)[, ]+`)

// signalVerbs is the verb catalogue for the signal filter.
var signalVerbs = regexp.MustCompile(`\b(is|are|was|were|has|have|uses|achieves|shows|demonstrates|improves|reduces|introduces|presents|validates|evaluates|stacks|computes|trains|learns|optimizes|generates|outputs|consists|comprises|employs|utilizes|applies|contains|includes)\b`)

// signalNouns is the domain-noun catalogue for the signal filter.
var signalNouns = regexp.MustCompile(`\b(model|approach|method|architecture|framework|system|mechanism|network|layer|attention|encoder|decoder|data|training|loss|transformer|embedding|projection|softmax|normalization)\b`)

// noiseTokens mark author, repository, and venue residue. A sentence
// containing any of these is rejected outright.
var noiseTokens = []string{
	"et al.", "arxiv", "github", "codebase",
	"implemented by", "designed by",
	"acknowledgement", "references", "conference", "proceedings",
	"nips", "neurips",
}

// lowSignalPatterns is the denylist of generic ML boilerplate that adds no
// presentation value.
var lowSignalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`hyperparameters`),
	regexp.MustCompile(`training steps`),
	regexp.MustCompile(`batch size`),
	regexp.MustCompile(`learning rate`),
	regexp.MustCompile(`byte[- ]pair encoding`),
	regexp.MustCompile(`wordpiece`),
	regexp.MustCompile(`unlisted values`),
}
