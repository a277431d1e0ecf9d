package enhance

import (
	"strings"

	"github.com/bgrellier/paperdeck/section"
)

// Narrate builds deterministic speaker notes for one slide: a context
// sentence, an optional image mention, one explanatory sentence per
// bullet, a synthesis line, and a transition cue. Purely template-driven,
// it adds no information that is not already on the slide.
func Narrate(slideTitle, sectionName string, bullets []string, hasImage bool) string {
	var parts []string

	parts = append(parts,
		"This slide is part of the "+strings.ToLower(section.Display(sectionName))+
			" section and focuses on "+strings.ToLower(slideTitle)+".")

	if hasImage {
		parts = append(parts,
			"The visual on this slide helps illustrate the main idea being described.")
	}

	for _, b := range bullets {
		parts = append(parts, "Here, the slide explains that "+lowerFirst(b))
	}

	parts = append(parts,
		"Taken together, these points clarify the key idea presented on this slide.")

	if sectionName == section.Conclusion {
		parts = append(parts, "This concludes the main message of the paper.")
	} else {
		parts = append(parts, "This prepares the ground for the discussion that follows.")
	}

	return strings.Join(parts, " ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
