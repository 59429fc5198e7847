// Package analysis turns résumé text into a structured CVAnalysis.
package analysis

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/jonathan/cv-mission-extractor/internal/extraction"
	"github.com/jonathan/cv-mission-extractor/internal/gazetteer"
	"github.com/jonathan/cv-mission-extractor/internal/ingestion"
	"github.com/jonathan/cv-mission-extractor/internal/merge"
	"github.com/jonathan/cv-mission-extractor/internal/skills"
	"github.com/jonathan/cv-mission-extractor/internal/types"
)

// DefaultMaxInputBytes caps the text analysed per document.
const DefaultMaxInputBytes = 512 << 10

// VerifiedSource supplies pre-verified missions for a consultant or document fingerprint.
type VerifiedSource interface {
	Lookup(consultant, fingerprint string) []types.MissionCandidate
}

// Options configures an Analyzer. The zero value is usable.
type Options struct {
	Sink          ProgressSink
	Logger        *zerolog.Logger
	Verified      VerifiedSource
	MaxInputBytes int
	Policy        merge.Policy
}

// Analyzer runs the extraction pipeline. It is immutable once built and safe
// for concurrent use when its sink is.
type Analyzer struct {
	sections   []extraction.Strategy
	document   extraction.Strategy
	technical  *skills.Technical
	functional *skills.Functional
	verified   VerifiedSource
	sink       ProgressSink
	log        zerolog.Logger
	maxBytes   int
	policy     merge.Policy
}

// NewAnalyzer builds an analyzer over g, or over the default gazetteer when g is nil.
func NewAnalyzer(g *gazetteer.Gazetteer, opts Options) *Analyzer {
	if g == nil {
		g = gazetteer.Default()
	}
	a := &Analyzer{
		sections:   extraction.DefaultSectionStrategies(g),
		document:   extraction.NewKnownClient(extraction.NewRecognizers(g)),
		technical:  skills.NewTechnical(g),
		functional: skills.NewFunctional(g),
		verified:   opts.Verified,
		sink:       opts.Sink,
		log:        zerolog.Nop(),
		maxBytes:   opts.MaxInputBytes,
		policy:     opts.Policy,
	}
	if a.sink == nil {
		a.sink = NopSink{}
	}
	if opts.Logger != nil {
		a.log = *opts.Logger
	}
	if a.maxBytes <= 0 {
		a.maxBytes = DefaultMaxInputBytes
	}
	if a.policy == (merge.Policy{}) {
		a.policy = merge.DefaultPolicy()
	}
	return a
}

// AnalyzeCVContent analyses one résumé. consultant may be empty, in which case the
// name is guessed from the opening lines. Only blank input fails; every other
// problem is reported to the sink and the result is always well formed.
func (a *Analyzer) AnalyzeCVContent(text, consultant string) (*types.CVAnalysis, error) {
	return a.analyze(text, consultant, a.log)
}

// run holds the per-call state of one analysis.
type run struct {
	*Analyzer
	log      zerolog.Logger
	warnings int
}

func (a *Analyzer) analyze(text, consultant string, log zerolog.Logger) (*types.CVAnalysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &InputError{Message: "résumé text is empty"}
	}
	r := &run{Analyzer: a, log: log}

	if len(text) > a.maxBytes {
		text = ingestion.Truncate(text, a.maxBytes)
		r.warn(&ExtractionWarning{
			Strategy: "input",
			Message:  fmt.Sprintf("text truncated to %d bytes", a.maxBytes),
		})
	}

	doc := ingestion.NormalizeDocument(text)
	if doc.Text == "" {
		return nil, &InputError{Message: "résumé text has no readable content"}
	}
	for i := range doc.Pages {
		a.sink.OnPage(i + 1)
	}

	if strings.TrimSpace(consultant) == "" {
		consultant = ConsultantFromText(doc.Text)
	}
	consultant = strings.Join(strings.Fields(consultant), " ")

	section := LocateExperienceSection(doc.Text)
	a.sink.OnSectionFound(section.Name)
	r.log.Debug().Str("section", section.Name).Int("pages", len(doc.Pages)).Msg("experience section located")

	var cands []types.MissionCandidate
	for _, s := range a.sections {
		cands = append(cands, r.runStrategy(s, section.Text)...)
	}
	if !section.Whole() {
		cands = append(cands, r.runStrategy(a.document, doc.Text)...)
	}
	if a.verified != nil {
		seeds := a.verified.Lookup(consultant, ingestion.Fingerprint(doc.Text))
		if len(seeds) > 0 {
			cands = append(cands, r.runStrategy(extraction.NewVerified(seeds), doc.Text)...)
		}
	}

	result := types.NewCVAnalysis(consultant)
	result.Missions = append(result.Missions, merge.Merge(cands, a.policy)...)

	missionSkills := make([][]string, 0, len(result.Missions)+1)
	for _, m := range result.Missions {
		missionSkills = append(missionSkills, m.TechnicalSkills)
	}
	missionSkills = append(missionSkills, a.technical.Recognize(doc.Text, skills.DocumentSkillLimit))
	result.TechnicalSkills = skills.Dedupe(skills.DocumentSkillLimit, missionSkills...)
	result.FunctionalSkills = a.functional.Recognize(doc.Text, skills.FunctionalSkillLimit)
	result.Contact = RecognizeContact(doc.Text)
	result.RawPreview = preview(doc.Text, types.MaxPreviewRunes)

	summary := Summary{
		Consultant:       consultant,
		Pages:            len(doc.Pages),
		Section:          section.Name,
		Candidates:       len(cands),
		Missions:         len(result.Missions),
		TechnicalSkills:  len(result.TechnicalSkills),
		FunctionalSkills: len(result.FunctionalSkills),
		Warnings:         r.warnings,
	}
	for _, m := range result.Missions {
		if m.IsVerified() {
			summary.VerifiedMissions++
		}
	}
	a.sink.OnComplete(summary)
	r.log.Info().
		Int("candidates", summary.Candidates).
		Int("missions", summary.Missions).
		Int("technical_skills", summary.TechnicalSkills).
		Int("warnings", summary.Warnings).
		Msg("analysis complete")

	return result, nil
}

// runStrategy runs s in isolation: a panic or error costs only its candidates.
func (r *run) runStrategy(s extraction.Strategy, text string) (cands []types.MissionCandidate) {
	defer func() {
		if rec := recover(); rec != nil {
			cands = nil
			r.warn(&ExtractionWarning{
				Strategy: s.Name(),
				Message:  "strategy failed",
				Cause:    fmt.Errorf("%v", rec),
			})
		}
		r.sink.OnStrategyResult(s.Name(), len(cands))
		r.log.Debug().Str("strategy", s.Name()).Int("candidates", len(cands)).Msg("strategy finished")
	}()

	cands, err := s.Extract(text)
	for _, e := range flatten(err) {
		r.warn(&ExtractionWarning{Strategy: s.Name(), Message: "block skipped", Cause: e})
	}
	return cands
}

func (r *run) warn(w *ExtractionWarning) {
	r.warnings++
	r.log.Warn().Err(w).Msg("extraction warning")
	r.sink.OnWarning(w)
}

// flatten splits an errors.Join result into its parts.
func flatten(err error) []error {
	if err == nil {
		return nil
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}

func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
