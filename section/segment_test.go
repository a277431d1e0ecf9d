package section

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Segmentation
// ---------------------------------------------------------------------------

func TestSplitTwoSections(t *testing.T) {
	pages := []string{"1 Introduction\nWe propose a new method. Our approach achieves higher accuracy. 2 Method\nThe model uses an encoder."}

	secs := Split(pages, Config{MinChars: 1})

	if len(secs) != 2 {
		t.Fatalf("len(sections) = %d, want 2", len(secs))
	}
	if secs[0].Title != Introduction {
		t.Errorf("sections[0].Title = %q, want %q", secs[0].Title, Introduction)
	}
	if secs[1].Title != Method {
		t.Errorf("sections[1].Title = %q, want %q", secs[1].Title, Method)
	}
	for i, sec := range secs {
		if len(sec.Pages) != 1 || sec.Pages[0] != 0 {
			t.Errorf("sections[%d].Pages = %v, want [0]", i, sec.Pages)
		}
	}
	if !strings.Contains(secs[1].Text, "encoder") {
		t.Errorf("method text = %q, should contain %q", secs[1].Text, "encoder")
	}
	if strings.Contains(secs[0].Text, "encoder") {
		t.Errorf("introduction text leaked past the Method heading: %q", secs[0].Text)
	}
}

func TestSplitDiscardsPreHeadingProse(t *testing.T) {
	pages := []string{"Some title line and author names\nAbstract\nThis paper summarizes an approach to sequence transduction with attention mechanisms."}

	secs := Split(pages, Config{MinChars: 1})

	if len(secs) != 1 {
		t.Fatalf("len(sections) = %d, want 1", len(secs))
	}
	if secs[0].Title != Abstract {
		t.Errorf("Title = %q, want %q", secs[0].Title, Abstract)
	}
	if strings.Contains(secs[0].Text, "author names") {
		t.Error("prose before the first heading must be discarded")
	}
}

func TestSplitNoHeadingsFallback(t *testing.T) {
	pages := []string{"Just some text without any structure.", "More text on a second page."}

	secs := Split(pages, Config{MinChars: 1})

	if len(secs) != 1 {
		t.Fatalf("len(sections) = %d, want 1", len(secs))
	}
	sec := secs[0]
	if sec.Title != Fallback {
		t.Errorf("Title = %q, want %q", sec.Title, Fallback)
	}
	if len(sec.Pages) != 2 {
		t.Errorf("Pages = %v, want both pages", sec.Pages)
	}
	if !strings.Contains(sec.Text, "second page") {
		t.Errorf("fallback section should hold all text, got %q", sec.Text)
	}
}

func TestSplitEmptyInput(t *testing.T) {
	if secs := Split(nil, Config{}); secs != nil {
		t.Errorf("Split(nil) = %v, want nil", secs)
	}
	if secs := Split([]string{"", "  \n "}, Config{}); secs != nil {
		t.Errorf("Split(blank pages) = %v, want nil", secs)
	}
}

func TestSplitDropsShortSections(t *testing.T) {
	pages := []string{"1 Introduction\nShort.\n2 Method\n" + strings.Repeat("The model stacks encoder layers with residual connections. ", 3)}

	secs := Split(pages, Config{MinChars: 50})

	if len(secs) != 1 {
		t.Fatalf("len(sections) = %d, want 1", len(secs))
	}
	if secs[0].Title != Method {
		t.Errorf("surviving section = %q, want %q", secs[0].Title, Method)
	}
}

func TestSplitShortExemptions(t *testing.T) {
	pages := []string{"Abstract\nBrief but useful.\nConclusion\nDone."}

	// Abstract and conclusion survive the length floor.
	secs := Split(pages, Config{MinChars: 50})

	if len(secs) != 2 {
		t.Fatalf("len(sections) = %d, want 2", len(secs))
	}
	if secs[0].Title != Abstract || secs[1].Title != Conclusion {
		t.Errorf("titles = %q, %q, want abstract, conclusion", secs[0].Title, secs[1].Title)
	}
}

func TestSplitSectionSpansPages(t *testing.T) {
	pages := []string{
		"2 Method\nThe encoder stacks identical layers.",
		"Each layer applies attention followed by a feed-forward network.",
		"3 Results\nThe model improves accuracy.",
	}

	secs := Split(pages, Config{MinChars: 1})

	if len(secs) != 2 {
		t.Fatalf("len(sections) = %d, want 2", len(secs))
	}
	m := secs[0]
	if m.FirstPage != 0 {
		t.Errorf("method FirstPage = %d, want 0", m.FirstPage)
	}
	if len(m.Pages) != 2 || !m.SpansPage(0) || !m.SpansPage(1) {
		t.Errorf("method Pages = %v, want [0 1]", m.Pages)
	}
	if secs[1].FirstPage != 2 {
		t.Errorf("results FirstPage = %d, want 2", secs[1].FirstPage)
	}
}

func TestSplitIdempotent(t *testing.T) {
	pages := []string{"1 Introduction\nWe propose a new method for sequence transduction.\n2 Method\nThe model uses stacked attention layers throughout."}

	a := Split(pages, Config{MinChars: 1})
	b := Split(pages, Config{MinChars: 1})

	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Title != b[i].Title || a[i].Text != b[i].Text {
			t.Errorf("run mismatch at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

// ---------------------------------------------------------------------------
// Noise cleaning
// ---------------------------------------------------------------------------

func TestCleanNoise(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Attention is useful [1] for tasks.", "Attention is useful for tasks."},
		{"Prior work [3, 12] explored this.", "Prior work explored this."},
		{"See https://example.org/paper for details.", "See for details."},
		{"Available at arXiv:1706.03762 today.", "Available at today."},
		{"Too   many    spaces.", "Too many spaces."},
	}
	for _, tt := range tests {
		if got := CleanNoise(tt.in); got != tt.want {
			t.Errorf("CleanNoise(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
