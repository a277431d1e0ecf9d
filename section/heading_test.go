package section

import "testing"

// ---------------------------------------------------------------------------
// Heading detection
// ---------------------------------------------------------------------------

func TestIsHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Abstract", true},
		{"ABSTRACT", true},
		{"1 Introduction", true},
		{"1. Introduction", false}, // trailing dot on the number is not the academic form
		{"2 Method", true},
		{"3.2 Attention", true},
		{"Related Work", true},
		{"Methodology", true},
		{"Conclusions", true},
		{"Future Work", true},
		{"7 Limitations", true},
		{"Evaluation", true},

		{"", false},
		{"We propose a new method.", false},
		{"ab", false}, // below minimum length
		{"The introduction of noise into the channel degrades decoding accuracy substantially", false},
	}

	for _, tt := range tests {
		if got := IsHeading(tt.line); got != tt.want {
			t.Errorf("IsHeading(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestIsHeadingNumberedFallback(t *testing.T) {
	// Numbered headings outside the canonical set still count.
	if !IsHeading("4 Experimental Setup") {
		t.Error("numbered title-case heading should be detected")
	}
	if !IsHeading("2.1 Multi-Head Attention") {
		t.Error("hierarchical numbered heading should be detected")
	}
}

func TestIsHeadingRejectsAffiliations(t *testing.T) {
	// Author blocks often start with a number and a proper name; the
	// affiliation tokens keep them out.
	lines := []string{
		"1 University Of Toronto",
		"2 Institute For Advanced Study",
		"3 Google Research Lab",
	}
	for _, ln := range lines {
		if IsHeading(ln) {
			t.Errorf("IsHeading(%q) = true, want false (affiliation)", ln)
		}
	}
}

// ---------------------------------------------------------------------------
// Canonical names and display titles
// ---------------------------------------------------------------------------

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Abstract", Abstract},
		{"1 Introduction", Introduction},
		{"2 Background", Background},
		{"Related Work", RelatedWork},
		{"3 Methodology", Method},
		{"Our Approach", Method},
		{"Model Architecture", Method},
		{"4 Experiments", Experiments},
		{"5 Results", Results},
		{"Evaluation", Results},
		{"6 Conclusion", Conclusion},
		{"Limitations", Conclusion},
		{"Future Work", Conclusion},
		{"Some Unusual Title", Fallback},
	}

	for _, tt := range tests {
		if got := Normalize(tt.raw); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestDisplay(t *testing.T) {
	if got := Display(Abstract); got != "Overview" {
		t.Errorf("Display(abstract) = %q, want %q", got, "Overview")
	}
	if got := Display(RelatedWork); got != "Related Work" {
		t.Errorf("Display(related work) = %q, want %q", got, "Related Work")
	}
	if got := Display(Fallback); got != "Section" {
		t.Errorf("Display(section) = %q, want %q", got, "Section")
	}
	if got := Display(""); got != "Section" {
		t.Errorf("Display(\"\") = %q, want %q", got, "Section")
	}
}

func TestSkippable(t *testing.T) {
	skip := []string{"References", "7 REFERENCES", "Bibliography", "Acknowledgements", "Appendix A", "Supplementary Material"}
	for _, s := range skip {
		if !Skippable(s) {
			t.Errorf("Skippable(%q) = false, want true", s)
		}
	}
	keep := []string{"Introduction", "Results", "2 Method"}
	for _, s := range keep {
		if Skippable(s) {
			t.Errorf("Skippable(%q) = true, want false", s)
		}
	}
}
