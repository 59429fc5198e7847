package extraction

import (
	"regexp"

	"github.com/jonathan/cv-mission-extractor/internal/clients"
	"github.com/jonathan/cv-mission-extractor/internal/dates"
	"github.com/jonathan/cv-mission-extractor/internal/skills"
	"github.com/jonathan/cv-mission-extractor/internal/types"
)

// anchoredLine matches "YYYY[-MM[-DD]] - <end> : description" on one line.
var anchoredLine = regexp.MustCompile(`((?:19|20)\d{2}(?:[-/]\d{1,2}){0,2})[ \t]*[-–—][ \t]*([^:\n]{1,40}?)[ \t]*:[ \t]*([^\n]+)`)

// Pattern reads missions written as a date range followed by a colon and a description.
type Pattern struct {
	rec Recognizers
}

// NewPattern returns the pattern-anchored strategy.
func NewPattern(rec Recognizers) *Pattern {
	return &Pattern{rec: rec}
}

// Name returns the source tag.
func (p *Pattern) Name() string { return types.SourcePattern }

// Extract emits one candidate per anchored line whose description yields a client.
// Only the heuristic client reader is used.
func (p *Pattern) Extract(text string) ([]types.MissionCandidate, error) {
	var out []types.MissionCandidate
	for _, m := range anchoredLine.FindAllStringSubmatch(text, -1) {
		start, ok := dates.ParsePoint(m[1], false)
		if !ok {
			continue
		}
		end, ok := dates.ParsePoint(m[2], true)
		if !ok {
			continue
		}
		description := m[3]
		c := types.MissionCandidate{
			Client:          clients.Heuristic(description),
			Start:           start,
			End:             end,
			Role:            Role(description),
			Summary:         Summarize(description),
			TechnicalSkills: p.rec.Skills.Recognize(description, skills.MissionSkillLimit),
			SourceStrategy:  types.SourcePattern,
		}
		if c.Valid() {
			out = append(out, c)
		}
	}
	return out, nil
}
