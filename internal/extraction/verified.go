package extraction

import (
	"github.com/jonathan/cv-mission-extractor/internal/types"
)

// Verified emits a fixed list of pre-verified missions and ignores its input.
// Its candidates are tagged SourceVerified and bypass deduplication on merge.
type Verified struct {
	missions []types.MissionCandidate
}

// NewVerified returns a strategy emitting copies of missions.
func NewVerified(missions []types.MissionCandidate) *Verified {
	copied := make([]types.MissionCandidate, len(missions))
	for i, m := range missions {
		m.TechnicalSkills = append([]string{}, m.TechnicalSkills...)
		m.SourceStrategy = types.SourceVerified
		copied[i] = m
	}
	return &Verified{missions: copied}
}

// Name returns the source tag.
func (v *Verified) Name() string { return types.SourceVerified }

// Extract returns the verified missions.
func (v *Verified) Extract(string) ([]types.MissionCandidate, error) {
	out := make([]types.MissionCandidate, len(v.missions))
	for i, m := range v.missions {
		m.TechnicalSkills = append([]string{}, m.TechnicalSkills...)
		out[i] = m
	}
	return out, nil
}
