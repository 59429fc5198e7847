package gazetteer

import (
	"regexp"
	"strings"
)

// boundary stands in for \b around terms that may start or end with punctuation (C++, .NET).
const boundary = `[^\p{L}\p{N}_]`

// Term is a canonical entry with its precompiled matchers.
type Term struct {
	Name    string
	Aliases []string

	strict *regexp.Regexp
	loose  *regexp.Regexp
}

func newTerm(name string, aliases []string) (Term, error) {
	forms := append([]string{name}, aliases...)

	strictParts := make([]string, 0, len(forms))
	looseParts := make([]string, 0, len(forms))
	multiWord := false
	for _, form := range forms {
		words := splitWords(form)
		if len(words) == 0 {
			continue
		}
		if len(words) > 1 {
			multiWord = true
		}
		strictParts = append(strictParts, joinQuoted(words, `\s+`))
		looseParts = append(looseParts, joinQuoted(splitLoose(form), `[\s\-_]*`))
	}

	strict, err := compileBounded(strictParts)
	if err != nil {
		return Term{}, err
	}
	t := Term{Name: name, Aliases: aliases, strict: strict}
	if multiWord {
		if t.loose, err = compileBounded(looseParts); err != nil {
			return Term{}, err
		}
	}
	return t, nil
}

func splitWords(s string) []string {
	return strings.Fields(s)
}

// splitLoose splits on whitespace and hyphens so "Spring-Boot" and "SpringBoot" meet "Spring Boot".
func splitLoose(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '-' || r == '_'
	})
}

func joinQuoted(words []string, sep string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, sep)
}

func compileBounded(alternatives []string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)(?:^|` + boundary + `)(` + strings.Join(alternatives, "|") + `)(?:$|` + boundary + `)`)
}

// FindAll returns the [start, end) byte spans of every strict occurrence of the term.
func (t Term) FindAll(text string) [][2]int {
	return findGroup(t.strict, text)
}

// FindAllLoose returns spans matched by the separator-insensitive form.
// Single-word terms have no loose form and return nil.
func (t Term) FindAllLoose(text string) [][2]int {
	if t.loose == nil {
		return nil
	}
	return findGroup(t.loose, text)
}

// MultiWord reports whether the term has a loose matcher.
func (t Term) MultiWord() bool {
	return t.loose != nil
}

// Index returns the start of the first occurrence or -1.
func (t Term) Index(text string) int {
	m := t.strict.FindStringSubmatchIndex(text)
	if m == nil {
		return -1
	}
	return m[2]
}

func findGroup(re *regexp.Regexp, text string) [][2]int {
	var spans [][2]int
	offset := 0
	for offset <= len(text) {
		m := re.FindStringSubmatchIndex(text[offset:])
		if m == nil {
			break
		}
		spans = append(spans, [2]int{offset + m[2], offset + m[3]})
		// Resume at the end of the term itself so a shared separator can open the next match.
		next := offset + m[3]
		if next <= offset {
			next = offset + 1
		}
		offset = next
	}
	return spans
}

// Specialized maps a jargon pattern to a canonical label.
type Specialized struct {
	Label   string
	Pattern *regexp.Regexp
}

// FindAll returns the spans matched by the pattern.
func (s Specialized) FindAll(text string) [][2]int {
	idx := s.Pattern.FindAllStringIndex(text, -1)
	spans := make([][2]int, len(idx))
	for i, m := range idx {
		spans[i] = [2]int{m[0], m[1]}
	}
	return spans
}
