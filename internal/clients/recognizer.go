// Package clients identifies the employer or client named in a span of résumé text.
package clients

import (
	"sort"

	"github.com/jonathan/cv-mission-extractor/internal/gazetteer"
)

// Recognizer matches spans against a client gazetteer and falls back to Heuristic.
// It holds no mutable state and is safe for concurrent use.
type Recognizer struct {
	terms []gazetteer.Term
}

// New returns a recognizer over the clients of g.
func New(g *gazetteer.Gazetteer) *Recognizer {
	return &Recognizer{terms: g.Clients()}
}

// Occurrence is one gazetteer client found in a text.
type Occurrence struct {
	Name  string
	Start int
	End   int
}

// Recognize returns at most one canonical client name for span, or "".
func (r *Recognizer) Recognize(span string) string {
	if name := r.Known(span); name != "" {
		return name
	}
	return Heuristic(span)
}

// Known returns the gazetteer client occurring earliest in span, or "".
func (r *Recognizer) Known(span string) string {
	best, bestAt := "", -1
	for _, term := range r.terms {
		at := term.Index(span)
		if at < 0 {
			continue
		}
		if bestAt < 0 || at < bestAt {
			best, bestAt = term.Name, at
		}
	}
	return best
}

// Occurrences returns every gazetteer client occurrence in text, by position.
func (r *Recognizer) Occurrences(text string) []Occurrence {
	var out []Occurrence
	for _, term := range r.terms {
		for _, span := range term.FindAll(text) {
			out = append(out, Occurrence{Name: term.Name, Start: span[0], End: span[1]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}
