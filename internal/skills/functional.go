package skills

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/cv-mission-extractor/internal/gazetteer"
)

// Functional recognizes functional and soft-skill phrases.
type Functional struct {
	terms []gazetteer.Term
}

// NewFunctional returns a functional recognizer over the functional phrases of g.
func NewFunctional(g *gazetteer.Gazetteer) *Functional {
	return &Functional{terms: g.Functional()}
}

// Recognize returns the title-cased phrases found in text, in order of first occurrence.
func (f *Functional) Recognize(text string, limit int) []string {
	var hits []hit
	for _, term := range f.terms {
		for _, s := range term.FindAll(text) {
			hits = append(hits, hit{term.Name, s[0], s[1]})
		}
		for _, s := range term.FindAllLoose(text) {
			hits = append(hits, hit{term.Name, s[0], s[1]})
		}
	}

	names := resolve(hits, limit)
	title := cases.Title(language.French)
	for i, n := range names {
		names[i] = title.String(n)
	}
	return names
}
