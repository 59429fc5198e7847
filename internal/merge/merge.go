// Package merge reconciles the candidates of every strategy into one bounded,
// ordered mission list.
package merge

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/cv-mission-extractor/internal/types"
)

// Policy bounds the merged output.
type Policy struct {
	// GeneralLimit caps the non-verified missions kept.
	GeneralLimit int
	// SummaryKeyLen is how many summary runes take part in the dedup key.
	SummaryKeyLen int
}

// DefaultPolicy keeps ten general missions and keys on a fifty-rune summary prefix.
func DefaultPolicy() Policy {
	return Policy{GeneralLimit: 10, SummaryKeyLen: 50}
}

// Key returns the dedup key of c under p.
func (p Policy) Key(c types.MissionCandidate) string {
	summary := strings.ToLower(c.Summary)
	if utf8.RuneCountInString(summary) > p.SummaryKeyLen {
		summary = string([]rune(summary)[:p.SummaryKeyLen])
	}
	return strings.Join([]string{
		strings.ToLower(strings.TrimSpace(c.Client)),
		c.Start.String(),
		c.End.String(),
		summary,
	}, "|")
}

// Merge returns verified candidates ascending by start followed by the
// deduplicated general candidates descending by start, truncated to p.GeneralLimit.
// Candidates without a valid client are dropped. Unknown starts sort last and
// ties keep their input order.
func Merge(cands []types.MissionCandidate, p Policy) []types.MissionCandidate {
	var seeds, general []types.MissionCandidate
	for _, c := range cands {
		if !c.Valid() {
			continue
		}
		if c.IsVerified() {
			seeds = append(seeds, c)
		} else {
			general = append(general, c)
		}
	}

	seen := make(map[string]bool, len(cands))
	for _, c := range seeds {
		seen[p.Key(c)] = true
	}
	deduped := make([]types.MissionCandidate, 0, len(general))
	for _, c := range general {
		k := p.Key(c)
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, c)
	}

	sort.SliceStable(seeds, func(i, j int) bool {
		return ascending(seeds[i].Start, seeds[j].Start)
	})
	sort.SliceStable(deduped, func(i, j int) bool {
		return descending(deduped[i].Start, deduped[j].Start)
	})
	if p.GeneralLimit >= 0 && len(deduped) > p.GeneralLimit {
		deduped = deduped[:p.GeneralLimit]
	}

	out := make([]types.MissionCandidate, 0, len(seeds)+len(deduped))
	out = append(out, seeds...)
	return append(out, deduped...)
}

func ascending(a, b types.DateBound) bool {
	return a.Compare(b) < 0
}

// descending orders comparable starts newest first; Unknown stays last.
func descending(a, b types.DateBound) bool {
	switch {
	case !a.Comparable():
		return false
	case !b.Comparable():
		return true
	default:
		return a.Compare(b) > 0
	}
}
