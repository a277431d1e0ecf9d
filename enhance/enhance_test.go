package enhance

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bgrellier/paperdeck/llm"
	"github.com/bgrellier/paperdeck/section"
)

// fakeProvider returns a canned response or error.
type fakeProvider struct {
	content string
	err     error
}

func (f *fakeProvider) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llm.ChatResponse{Content: f.content}, nil
}

// ---------------------------------------------------------------------------
// Narration templates
// ---------------------------------------------------------------------------

func TestNarrate(t *testing.T) {
	got := Narrate("Method", section.Method, []string{
		"The encoder stacks six identical layers.",
		"The decoder applies masked attention.",
	}, true)

	for _, want := range []string{
		"part of the method section",
		"focuses on method",
		"The visual on this slide",
		"Here, the slide explains that the encoder stacks six identical layers.",
		"Here, the slide explains that the decoder applies masked attention.",
		"prepares the ground for the discussion that follows",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("narration missing %q:\n%s", want, got)
		}
	}
}

func TestNarrateNoImage(t *testing.T) {
	got := Narrate("Results", section.Results, nil, false)
	if strings.Contains(got, "visual on this slide") {
		t.Error("image mention present without an image")
	}
}

func TestNarrateConclusionCue(t *testing.T) {
	got := Narrate("Conclusion", section.Conclusion, nil, false)
	if !strings.Contains(got, "concludes the main message") {
		t.Errorf("conclusion cue missing:\n%s", got)
	}
	if strings.Contains(got, "prepares the ground") {
		t.Error("transition cue present on the conclusion slide")
	}
}

func TestNarrateDeterministic(t *testing.T) {
	a := Narrate("Method", section.Method, []string{"The model uses attention."}, false)
	b := Narrate("Method", section.Method, []string{"The model uses attention."}, false)
	if a != b {
		t.Error("narration must be deterministic")
	}
}

// ---------------------------------------------------------------------------
// Noop
// ---------------------------------------------------------------------------

func TestNoopDeclinesEverything(t *testing.T) {
	var e Enhancer = Noop{}
	ctx := context.Background()

	if title, err := e.Title(ctx, "page"); err != nil || title != "" {
		t.Errorf("Title = %q, %v", title, err)
	}
	if bl, err := e.Bullets(ctx, "Method", "text", 6); err != nil || bl != nil {
		t.Errorf("Bullets = %v, %v", bl, err)
	}
	if n, err := e.Narration(ctx, "notes"); err != nil || n != "" {
		t.Errorf("Narration = %q, %v", n, err)
	}
}

// ---------------------------------------------------------------------------
// Generative
// ---------------------------------------------------------------------------

func TestGenerativeBulletsParsing(t *testing.T) {
	g := NewGenerative(&fakeProvider{content: strings.Join([]string{
		"Here are the key points:",
		"- The model replaces recurrence with self-attention entirely",
		"* Training finishes in twelve hours on eight GPUs.",
		"- too short",
		"not a bullet line at all",
	}, "\n")}, "test-model")

	got, err := g.Bullets(context.Background(), "Method", "text", 6)
	if err != nil {
		t.Fatalf("Bullets: %v", err)
	}
	want := []string{
		"The model replaces recurrence with self-attention entirely.",
		"Training finishes in twelve hours on eight GPUs.",
	}
	if len(got) != len(want) {
		t.Fatalf("Bullets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bullet %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGenerativeBulletsCapped(t *testing.T) {
	lines := make([]string, 12)
	for i := range lines {
		lines[i] = "- A generated bullet with enough characters to pass the floor."
	}
	g := NewGenerative(&fakeProvider{content: strings.Join(lines, "\n")}, "m")

	got, err := g.Bullets(context.Background(), "Method", "text", 4)
	if err != nil {
		t.Fatalf("Bullets: %v", err)
	}
	if len(got) != 6 { // target+2
		t.Errorf("len = %d, want 6", len(got))
	}
}

func TestGenerativeBulletsError(t *testing.T) {
	g := NewGenerative(&fakeProvider{err: errors.New("connection refused")}, "m")
	if _, err := g.Bullets(context.Background(), "Method", "text", 6); err == nil {
		t.Error("provider error must propagate so the caller can fall back")
	}
}

func TestGenerativeTitleCleanup(t *testing.T) {
	g := NewGenerative(&fakeProvider{content: "Title: \"Attention Is All You Need\"\n"}, "m")
	got, err := g.Title(context.Background(), "first page text")
	if err != nil {
		t.Fatalf("Title: %v", err)
	}
	if got != "Attention Is All You Need" {
		t.Errorf("Title = %q", got)
	}
}

func TestGenerativeNarrationDeclinesRamble(t *testing.T) {
	g := NewGenerative(&fakeProvider{content: strings.Repeat("word ", 120)}, "m")
	got, err := g.Narration(context.Background(), "template")
	if err != nil {
		t.Fatalf("Narration: %v", err)
	}
	if got != "" {
		t.Error("over-long paraphrase should be declined")
	}
}
