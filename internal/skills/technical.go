// Package skills recognizes technical and functional skills in résumé text.
package skills

import (
	"sort"
	"strings"

	"github.com/jonathan/cv-mission-extractor/internal/gazetteer"
)

const (
	// MissionSkillLimit caps the skills kept per mission.
	MissionSkillLimit = 10
	// DocumentSkillLimit caps the skills aggregated over a whole document.
	DocumentSkillLimit = 25
	// FunctionalSkillLimit caps functional skills per document.
	FunctionalSkillLimit = 10
)

// Technical recognizes technologies, languages and domain jargon.
type Technical struct {
	terms       []gazetteer.Term
	specialized []gazetteer.Specialized
}

// NewTechnical returns a technical recognizer over the technology and specialized tables of g.
func NewTechnical(g *gazetteer.Gazetteer) *Technical {
	return &Technical{terms: g.Technologies(), specialized: g.Specialized()}
}

type hit struct {
	name  string
	start int
	end   int
}

// Recognize returns the canonical skills found in text, in order of first occurrence,
// deduplicated and capped at limit (no cap when limit <= 0).
// A longer match claims its span, so "Spring Boot" does not also report "Spring".
func (t *Technical) Recognize(text string, limit int) []string {
	var hits []hit
	for _, term := range t.terms {
		for _, s := range term.FindAll(text) {
			hits = append(hits, hit{term.Name, s[0], s[1]})
		}
		for _, s := range term.FindAllLoose(text) {
			hits = append(hits, hit{term.Name, s[0], s[1]})
		}
	}
	for _, sp := range t.specialized {
		for _, s := range sp.FindAll(text) {
			hits = append(hits, hit{sp.Label, s[0], s[1]})
		}
	}
	return resolve(hits, limit)
}

func resolve(hits []hit, limit int) []string {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].end-hits[i].start > hits[j].end-hits[j].start
	})

	var kept []hit
	for _, h := range hits {
		if overlapsOther(kept, h) {
			continue
		}
		kept = append(kept, h)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].start < kept[j].start
	})
	names := make([]string, len(kept))
	for i, h := range kept {
		names[i] = h.name
	}
	return Dedupe(limit, names)
}

// overlapsOther reports whether h overlaps a kept hit for a different skill.
func overlapsOther(kept []hit, h hit) bool {
	for _, k := range kept {
		if h.start < k.end && k.start < h.end && !strings.EqualFold(k.name, h.name) {
			return true
		}
	}
	return false
}
