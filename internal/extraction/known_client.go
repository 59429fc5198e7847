package extraction

import (
	"unicode/utf8"

	"github.com/jonathan/cv-mission-extractor/internal/dates"
	"github.com/jonathan/cv-mission-extractor/internal/skills"
	"github.com/jonathan/cv-mission-extractor/internal/types"
)

const (
	// WindowBefore is how many runes before a client occurrence KnownClient reads.
	WindowBefore = 200
	// WindowAfter is how many runes after a client occurrence KnownClient reads.
	WindowAfter = 300
)

// KnownClient anchors on every gazetteer client occurrence and reads the dates around it.
type KnownClient struct {
	rec Recognizers
}

// NewKnownClient returns the known-client-anchored strategy.
func NewKnownClient(rec Recognizers) *KnownClient {
	return &KnownClient{rec: rec}
}

// Name returns the source tag.
func (k *KnownClient) Name() string { return types.SourceKnownClient }

// Extract emits a candidate for each occurrence whose window holds at least one date.
// A lone date ends with Ongoing.
func (k *KnownClient) Extract(text string) ([]types.MissionCandidate, error) {
	var out []types.MissionCandidate
	for _, occ := range k.rec.Clients.Occurrences(text) {
		window := text[backRunes(text, occ.Start, WindowBefore):forwardRunes(text, occ.End, WindowAfter)]
		found := dates.Recognize(window)
		if len(found) == 0 {
			continue
		}
		c := types.MissionCandidate{
			Client:          occ.Name,
			Role:            Role(window),
			Summary:         Summarize(window),
			TechnicalSkills: k.rec.Skills.Recognize(window, skills.MissionSkillLimit),
			SourceStrategy:  types.SourceKnownClient,
		}
		c.Start, c.End = bounds(found, types.Ongoing())
		if c.Valid() {
			out = append(out, c)
		}
	}
	return out, nil
}

// backRunes returns the byte offset n runes before i.
func backRunes(s string, i, n int) int {
	for ; n > 0 && i > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	return i
}

// forwardRunes returns the byte offset n runes after i.
func forwardRunes(s string, i, n int) int {
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}
