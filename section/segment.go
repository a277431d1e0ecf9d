package section

import (
	"regexp"
	"sort"
	"strings"
)

// Section is a contiguous run of prose under one heading.
type Section struct {
	Title     string `json:"title"`     // canonical name, see Normalize
	RawTitle  string `json:"raw_title"` // heading text as it appeared
	Text      string `json:"text"`      // accumulated, noise-cleaned prose
	Pages     []int  `json:"pages"`     // sorted page indices the section spans
	FirstPage int    `json:"first_page"`
}

// SpansPage reports whether the section accumulated prose from page idx.
func (s *Section) SpansPage(idx int) bool {
	for _, p := range s.Pages {
		if p == idx {
			return true
		}
	}
	return false
}

// Config controls segmentation.
type Config struct {
	// MinChars is the minimum cleaned-text length for a section to be
	// kept. Abstract and conclusion are exempt: they carry value even
	// when short.
	MinChars int
}

// DefaultMinChars is the default minimum section length.
const DefaultMinChars = 50

// Split segments per-page text into sections. It is a two-state
// accumulator: outside any section, prose lines are discarded (junk before
// the first heading); inside one, they are appended and the page set
// grows. A heading finalizes the current section and opens the next.
//
// Split never fails: a document with no detected headings at all comes
// back as a single Fallback section holding everything, so downstream
// stages always have something to work with.
func Split(pagesText []string, cfg Config) []Section {
	if cfg.MinChars == 0 {
		cfg.MinChars = DefaultMinChars
	}

	var sections []Section
	var current *Section

	for i, pageText := range pagesText {
		for _, raw := range strings.Split(pageText, "\n") {
			for _, line := range splitHeadingRuns(strings.TrimSpace(raw)) {
				if line == "" {
					continue
				}

				if IsHeading(line) {
					if current != nil && strings.TrimSpace(current.Text) != "" {
						sections = append(sections, *current)
					}
					current = &Section{
						Title:     Normalize(line),
						RawTitle:  line,
						Pages:     []int{i},
						FirstPage: i,
					}
					continue
				}

				if current == nil {
					continue
				}
				current.Text += " " + line
				current.addPage(i)
			}
		}
	}

	if current != nil && strings.TrimSpace(current.Text) != "" {
		sections = append(sections, *current)
	}

	// No headings anywhere: ship the whole document as one section.
	if len(sections) == 0 {
		whole := strings.TrimSpace(strings.Join(pagesText, "\n"))
		if whole == "" {
			return nil
		}
		pages := make([]int, len(pagesText))
		for i := range pagesText {
			pages[i] = i
		}
		sections = []Section{{
			Title:     Fallback,
			RawTitle:  "",
			Text:      CleanNoise(whole),
			Pages:     pages,
			FirstPage: 0,
		}}
		return sections
	}

	cleaned := sections[:0]
	for _, sec := range sections {
		sec.Text = CleanNoise(sec.Text)
		if len(sec.Text) < cfg.MinChars && sec.Title != Abstract && sec.Title != Conclusion {
			continue
		}
		cleaned = append(cleaned, sec)
	}
	return cleaned
}

// sentenceBoundary marks sentence-terminal punctuation followed by
// whitespace, used to break apart lines that PDF extraction glued
// together.
var sentenceBoundary = regexp.MustCompile(`([.!?])\s+`)

// splitHeadingRuns recovers headings that text extraction appended to the
// end of a prose line, as in "higher accuracy. 2 Method". The line is cut
// at sentence boundaries; fragments that parse as headings stand alone,
// consecutive prose fragments are rejoined.
func splitHeadingRuns(line string) []string {
	if line == "" || IsHeading(line) {
		return []string{line}
	}
	marked := sentenceBoundary.ReplaceAllString(line, "$1\x00")
	parts := strings.Split(marked, "\x00")
	if len(parts) == 1 {
		return parts
	}

	var out []string
	var prose []string
	flush := func() {
		if len(prose) > 0 {
			out = append(out, strings.Join(prose, " "))
			prose = prose[:0]
		}
	}
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if IsHeading(p) {
			flush()
			out = append(out, p)
		} else {
			prose = append(prose, p)
		}
	}
	flush()
	return out
}

func (s *Section) addPage(idx int) {
	for _, p := range s.Pages {
		if p == idx {
			return
		}
	}
	s.Pages = append(s.Pages, idx)
	sort.Ints(s.Pages)
}

// ---------------------------------------------------------------------------
// Noise cleaning
// ---------------------------------------------------------------------------

var (
	citationMarkers = regexp.MustCompile(`\[\s*\d+(?:\s*,\s*\d+)*\s*\]`)
	urlTokens       = regexp.MustCompile(`https?://\S+|doi:\S+|arXiv:\S+`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
)

// CleanNoise strips bracketed citation markers, URLs and DOI/arXiv tokens
// from prose and collapses whitespace runs.
func CleanNoise(text string) string {
	if text == "" {
		return ""
	}
	t := citationMarkers.ReplaceAllString(text, " ")
	t = urlTokens.ReplaceAllString(t, " ")
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(t, " "))
}
