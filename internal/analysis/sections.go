package analysis

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// WholeDocument names the section used when no experience header is found.
const WholeDocument = "document"

// maxHeaderRunes bounds a line considered a section heading.
const maxHeaderRunes = 60

// experienceHeaders are tried in order; the first one found wins.
var experienceHeaders = []string{
	"expériences professionnelles",
	"expérience professionnelle",
	"experiences professionnelles",
	"experience professionnelle",
	"parcours professionnel",
	"historique professionnel",
	"expériences",
	"expérience",
	"experiences",
	"missions",
	"réalisations",
	"professional experience",
	"experience",
}

// terminalHeaders open the sections that follow the experience section.
var terminalHeaders = []string{
	"formations", "formation", "diplômes", "diplomes", "diplôme", "éducation", "education",
	"certifications", "certification", "langues", "langue", "centres d'intérêt", "centres d'interet",
	"loisirs", "références", "references",
}

var headerPatterns = compileHeaders(experienceHeaders)

func compileHeaders(headers []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(headers))
	for i, h := range headers {
		out[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(h))
	}
	return out
}

// Section is the span of text the section strategies run on.
type Section struct {
	Name  string
	Text  string
	Start int
	End   int
}

// Whole reports whether the section is the entire document.
func (s Section) Whole() bool {
	return s.Name == WholeDocument
}

// LocateExperienceSection finds the professional experience section of text.
// A header on its own line is preferred over a header mentioned inside a line.
// The section ends at the next terminal heading, or at the end of text.
func LocateExperienceSection(text string) Section {
	for _, h := range experienceHeaders {
		if start, bodyStart, ok := headerLine(text, h); ok {
			end := sectionEnd(text, bodyStart)
			return Section{Name: h, Text: text[start:end], Start: start, End: end}
		}
	}
	for i, re := range headerPatterns {
		if loc := re.FindStringIndex(text); loc != nil {
			end := sectionEnd(text, loc[1])
			return Section{Name: experienceHeaders[i], Text: text[loc[0]:end], Start: loc[0], End: end}
		}
	}
	return Section{Name: WholeDocument, Text: text, Start: 0, End: len(text)}
}

// headerLine finds a line that reads as heading h. It returns the line start and
// the offset just past the line.
func headerLine(text, h string) (int, int, bool) {
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		start := offset
		offset += len(line)
		if l := headingText(line); strings.HasPrefix(l, h) {
			return start, offset, true
		}
	}
	return 0, 0, false
}

// headingText returns line lowercased without bullets and a trailing colon,
// or "" when the line is too long to be a heading.
func headingText(line string) string {
	l := strings.ToLower(strings.TrimSpace(line))
	l = strings.TrimLeft(l, "#*•-– ")
	l = strings.TrimRight(l, ": ")
	if utf8.RuneCountInString(l) > maxHeaderRunes {
		return ""
	}
	return l
}

// isTerminal reports whether a heading opens a section following the experiences,
// alone or joined to another one ("Formation & Certifications").
func isTerminal(l string) bool {
	for _, h := range terminalHeaders {
		if l == h || strings.HasPrefix(l, h+" &") || strings.HasPrefix(l, h+" et ") || strings.HasPrefix(l, h+" /") {
			return true
		}
	}
	return false
}

// sectionEnd returns the start of the first terminal heading line at or after from.
func sectionEnd(text string, from int) int {
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		start := offset
		offset += len(line)
		if start < from {
			continue
		}
		if isTerminal(headingText(line)) {
			return start
		}
	}
	return len(text)
}
