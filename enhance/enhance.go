// Package enhance holds the optional generative enhancement path and the
// deterministic narration templates.
//
// The pipeline always runs its extractive, rule-based path first; an
// Enhancer may then improve titles, bullets, or narration. Any error or
// empty result from an Enhancer falls back to the extractive output, so
// the pipeline works identically with no model available.
package enhance

import (
	"context"
	"strings"

	"github.com/bgrellier/paperdeck/llm"
)

// Enhancer improves extractive output. Implementations return empty
// results to decline; the caller keeps its rule-based version then.
type Enhancer interface {
	// Title extracts the paper title from first-page text.
	Title(ctx context.Context, firstPage string) (string, error)

	// Bullets generates slide bullets for a section.
	Bullets(ctx context.Context, sectionTitle, text string, target int) ([]string, error)

	// Narration paraphrases template narration into natural speech.
	Narration(ctx context.Context, narration string) (string, error)
}

// Noop is the always-available Enhancer that declines everything,
// leaving the extractive output untouched.
type Noop struct{}

func (Noop) Title(ctx context.Context, firstPage string) (string, error) { return "", nil }
func (Noop) Bullets(ctx context.Context, sectionTitle, text string, target int) ([]string, error) {
	return nil, nil
}
func (Noop) Narration(ctx context.Context, narration string) (string, error) { return "", nil }

// Generative backs enhancement with a chat model.
type Generative struct {
	provider llm.Provider
	model    string
}

// NewGenerative returns a model-backed Enhancer.
func NewGenerative(provider llm.Provider, model string) *Generative {
	return &Generative{provider: provider, model: model}
}

// Input caps keep prompts bounded regardless of section size.
const (
	maxTitleInputChars   = 2000
	maxSectionInputChars = 4000
)

func (g *Generative) Title(ctx context.Context, firstPage string) (string, error) {
	if len(firstPage) > maxTitleInputChars {
		firstPage = firstPage[:maxTitleInputChars]
	}
	prompt := "Identify the title of the research paper from the following first-page text. " +
		"Return ONLY the title, nothing else, no quotes.\n\nTEXT:\n" + firstPage + "\n\nTITLE:"

	resp, err := g.provider.Chat(ctx, llm.ChatRequest{
		Model:       g.model,
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Temperature: 0.1,
		MaxTokens:   64,
	})
	if err != nil {
		return "", err
	}

	title := strings.TrimSpace(strings.ReplaceAll(resp.Content, "\n", " "))
	title = strings.TrimPrefix(title, "Title:")
	title = strings.TrimPrefix(title, "title:")
	title = strings.Trim(strings.TrimSpace(title), `"`)
	if len(title) > 300 {
		return "", nil // sanity bound, decline
	}
	return title, nil
}

func (g *Generative) Bullets(ctx context.Context, sectionTitle, text string, target int) ([]string, error) {
	if len(text) > maxSectionInputChars {
		text = text[:maxSectionInputChars]
	}

	var b strings.Builder
	b.WriteString("You are preparing a research presentation. EXTRACT key technical details ")
	b.WriteString("from the text into clear, standalone bullet points.\n\n")
	b.WriteString("SECTION: " + sectionTitle + "\n")
	b.WriteString("TEXT:\n" + text + "\n\n")
	b.WriteString("INSTRUCTIONS:\n")
	b.WriteString("1. Extract the key points as distinct bullets.\n")
	b.WriteString("2. Each bullet is a COMPLETE sentence ending with a period.\n")
	b.WriteString("3. Be specific: keep metrics, method names, and architectural details.\n")
	b.WriteString("4. No filler like \"The paper discusses\"; start with the fact.\n")
	b.WriteString("5. Only use information present in the text.\n")
	b.WriteString("6. Ignore citations, figure references, and acknowledgments.\n")
	b.WriteString("7. Return a plain list, one line per bullet, each starting with \"- \".\n")

	resp, err := g.provider.Chat(ctx, llm.ChatRequest{
		Model:       g.model,
		Messages:    []llm.Message{{Role: "user", Content: b.String()}},
		Temperature: 0.1,
		MaxTokens:   1024,
	})
	if err != nil {
		return nil, err
	}

	var bullets []string
	for _, line := range strings.Split(resp.Content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "- ") && !strings.HasPrefix(line, "* ") {
			continue
		}
		line = strings.TrimSpace(line[2:])
		if len(line) < 15 {
			continue
		}
		if !strings.HasSuffix(line, ".") {
			line += "."
		}
		bullets = append(bullets, line)
	}
	// A model that hallucinates extra bullets still gets capped.
	if target > 0 && len(bullets) > target+2 {
		bullets = bullets[:target+2]
	}
	return bullets, nil
}

func (g *Generative) Narration(ctx context.Context, narration string) (string, error) {
	prompt := "Paraphrase the following into a short, natural, 2-3 sentence spoken narration. " +
		"Preserve numbers, versions, and ALL-CAPS tokens exactly.\n\nText: " + narration

	resp, err := g.provider.Chat(ctx, llm.ChatRequest{
		Model:       g.model,
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Temperature: 0.05,
		MaxTokens:   160,
	})
	if err != nil {
		return "", err
	}
	out := strings.TrimSpace(resp.Content)
	if wc := len(strings.Fields(out)); wc > 90 || wc == 0 {
		return "", nil // decline, keep template narration
	}
	return out, nil
}
