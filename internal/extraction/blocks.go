package extraction

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/cv-mission-extractor/internal/dates"
	"github.com/jonathan/cv-mission-extractor/internal/skills"
	"github.com/jonathan/cv-mission-extractor/internal/types"
)

// MinBlockRunes is the shortest block Blocks considers a mission.
const MinBlockRunes = 100

// blockBoundary separates blocks: blank lines or runs of ellipsis dots.
var blockBoundary = regexp.MustCompile(`\n[ \t]*\n|\.{4,}|…{2,}`)

// Blocks segments the section into paragraphs and reads one mission per paragraph.
type Blocks struct {
	rec Recognizers
}

// NewBlocks returns the block segmentation strategy.
func NewBlocks(rec Recognizers) *Blocks {
	return &Blocks{rec: rec}
}

// Name returns the source tag.
func (b *Blocks) Name() string { return types.SourceBlocks }

// Extract reads every block of at least MinBlockRunes runes that names a valid client.
func (b *Blocks) Extract(text string) ([]types.MissionCandidate, error) {
	var (
		out  []types.MissionCandidate
		errs []error
	)
	for i, block := range SplitBlocks(text) {
		if utf8.RuneCountInString(block) < MinBlockRunes {
			continue
		}
		c, ok, err := guard(b.Name(), i, func() (types.MissionCandidate, bool) {
			return b.read(block)
		})
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			out = append(out, c)
		}
	}
	return out, errors.Join(errs...)
}

func (b *Blocks) read(block string) (types.MissionCandidate, bool) {
	c := types.MissionCandidate{
		Client:         b.rec.Clients.Recognize(block),
		SourceStrategy: types.SourceBlocks,
	}
	if !c.Valid() {
		return c, false
	}
	c.Start, c.End = bounds(dates.Recognize(block), types.Unknown())
	c.Role = Role(block)
	c.Summary = Summarize(block)
	c.TechnicalSkills = b.rec.Skills.Recognize(block, skills.MissionSkillLimit)
	return c, true
}

// SplitBlocks cuts text on blank lines and ellipsis runs, returning trimmed non-empty blocks.
func SplitBlocks(text string) []string {
	var out []string
	for _, part := range blockBoundary.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
