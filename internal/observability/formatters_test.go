package observability

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cv-mission-extractor/internal/analysis"
	"github.com/jonathan/cv-mission-extractor/internal/types"
)

func sampleAnalysis() *types.CVAnalysis {
	a := types.NewCVAnalysis("Jean Test")
	a.Missions = append(a.Missions,
		types.MissionCandidate{
			Client:          "BNP Paribas",
			Start:           types.Fixed(2023, 1, 1),
			End:             types.Ongoing(),
			Role:            "Consultant Senior",
			TechnicalSkills: []string{"Python", "React"},
			SourceStrategy:  types.SourceVerified,
		},
		types.MissionCandidate{
			Client: "AXA",
			Start:  types.Unknown(),
			End:    types.EndOfYear(2019),
		},
	)
	a.TechnicalSkills = []string{"Python", "React"}
	a.FunctionalSkills = []string{"Gestion De Projet", "Agile", "Scrum", "Recette"}
	a.Contact = types.Contact{Email: "jean@test.fr", Phone: "01 23 45 67 89"}
	return a
}

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(sampleAnalysis())
	output := buf.String()

	assert.Contains(t, output, "CV ANALYSIS")
	assert.Contains(t, output, "Jean Test")
	assert.Contains(t, output, "jean@test.fr")
	assert.Contains(t, output, "BNP Paribas  2023-01-01 → En cours  ✓")
	assert.Contains(t, output, "AXA  ? → 2019-12-31")
	assert.Contains(t, output, "Consultant Senior")
	assert.Contains(t, output, "[Python, React]")
	assert.Contains(t, output, "... and 1 more")
}

func TestPrintAnalysis_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(nil)

	assert.Empty(t, buf.String())
}

func TestPrintAnalysis_ManyMissions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	a := types.NewCVAnalysis("")
	for i := 0; i < 8; i++ {
		a.Missions = append(a.Missions, types.MissionCandidate{
			Client: fmt.Sprintf("Client %d", i),
			Start:  types.StartOfYear(2010 + i),
			End:    types.EndOfYear(2011 + i),
		})
	}
	p.PrintAnalysis(a)
	output := buf.String()

	assert.Contains(t, output, "(unknown)")
	assert.Contains(t, output, "Client 4")
	assert.NotContains(t, output, "Client 5")
	assert.Contains(t, output, "... and 3 more")
}

func TestPrintBox_LinesHaveFixedWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "short\n"+strings.Repeat("é", 120))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSummary(analysis.Summary{
		Section:          "missions",
		Pages:            2,
		Candidates:       7,
		Missions:         3,
		VerifiedMissions: 1,
		TechnicalSkills:  12,
		FunctionalSkills: 2,
		Warnings:         1,
	})
	output := buf.String()

	assert.Contains(t, output, "EXTRACTION SUMMARY")
	assert.Contains(t, output, "Missions:   3 (1 verified)")
	assert.Contains(t, output, "12 technical, 2 functional")
}

func TestPrintWarnings(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintWarnings([]*analysis.ExtractionWarning{
		{Strategy: "blocks", Message: "block skipped", Cause: errors.New("panic while parsing block")},
		{Strategy: "input", Message: "text truncated"},
	})
	output := buf.String()

	assert.Contains(t, output, "Found 2 warnings")
	assert.Contains(t, output, "⚠ blocks")
	assert.Contains(t, output, "block skipped: panic while parsing block")
	assert.Contains(t, output, "text truncated")
}

func TestPrintWarnings_None(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintWarnings(nil)

	assert.Contains(t, buf.String(), "NO WARNINGS")
}

func TestPrintBatch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBatch([]analysis.Result{
		{Name: "a.pdf", Analysis: sampleAnalysis()},
		{Name: "b.txt", Err: &analysis.InputError{Message: "résumé text is empty"}},
	})
	output := buf.String()

	assert.Contains(t, output, "✓ a.pdf: 2 missions, 2 skills")
	assert.Contains(t, output, "✗ b.txt")
	assert.Contains(t, output, "1 analysed, 1 failed")
}
