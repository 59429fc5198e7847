// Package extraction implements the independent strategies that propose mission
// candidates from résumé text.
package extraction

import (
	"fmt"

	"github.com/jonathan/cv-mission-extractor/internal/clients"
	"github.com/jonathan/cv-mission-extractor/internal/gazetteer"
	"github.com/jonathan/cv-mission-extractor/internal/skills"
	"github.com/jonathan/cv-mission-extractor/internal/types"
)

// Strategy proposes mission candidates from a text.
// A non-nil error carries one or more *BlockError warnings; candidates returned
// alongside it are still valid.
type Strategy interface {
	Name() string
	Extract(text string) ([]types.MissionCandidate, error)
}

// Recognizers bundles the recognizers strategies share.
type Recognizers struct {
	Clients *clients.Recognizer
	Skills  *skills.Technical
}

// NewRecognizers builds the recognizers over g.
func NewRecognizers(g *gazetteer.Gazetteer) Recognizers {
	return Recognizers{
		Clients: clients.New(g),
		Skills:  skills.NewTechnical(g),
	}
}

// DefaultSectionStrategies returns the strategies run over the experience section,
// in their canonical order.
func DefaultSectionStrategies(g *gazetteer.Gazetteer) []Strategy {
	rec := NewRecognizers(g)
	return []Strategy{
		NewBlocks(rec),
		NewPattern(rec),
		NewKnownClient(rec),
		NewTriplet(rec),
	}
}

// guard runs fn, converting a panic into a BlockError.
func guard(strategy string, index int, fn func() (types.MissionCandidate, bool)) (c types.MissionCandidate, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			c, ok = types.MissionCandidate{}, false
			err = &BlockError{
				Strategy: strategy,
				Index:    index,
				Message:  "panic while parsing block",
				Cause:    fmt.Errorf("%v", r),
			}
		}
	}()
	c, ok = fn()
	return c, ok, nil
}

// bounds picks start and end from recognized dates: the first value starts the mission
// and the second ends it. A lone date ends with defaultEnd.
func bounds(values []types.DateBound, defaultEnd types.DateBound) (types.DateBound, types.DateBound) {
	switch {
	case len(values) == 0:
		return types.Unknown(), defaultEnd
	case values[0].IsOngoing():
		return types.Unknown(), types.Ongoing()
	case len(values) == 1:
		return values[0], defaultEnd
	default:
		return values[0], values[1]
	}
}
