package analysis

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-mission-extractor/internal/overrides"
	"github.com/jonathan/cv-mission-extractor/internal/types"
)

const bnpSentence = "2023-01-01 - En cours: Consultant senior chez BNP Paribas. Technologies: Python, React."

const sampleCV = `Jean Dupont
Consultant Data
jean.dupont@example.com | +33 6 12 34 56 78

EXPÉRIENCES PROFESSIONNELLES

2021 - 2023 : Data engineer chez Société Générale. Développement de pipelines Python et Spark sur un datalake Hadoop, mise en place de la CI avec Jenkins.

2019 - 2020 : Développeur chez BNP Paribas. Conception d'API REST en Java avec Spring Boot et PostgreSQL pour la banque de détail.

FORMATION
Master informatique, 2015
`

// recordingSink captures every event for assertions.
type recordingSink struct {
	mu         sync.Mutex
	pages      []int
	sections   []string
	strategies map[string]int
	warnings   []*ExtractionWarning
	summaries  []Summary
}

func newRecordingSink() *recordingSink {
	return &recordingSink{strategies: make(map[string]int)}
}

func (s *recordingSink) OnPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages = append(s.pages, n)
}

func (s *recordingSink) OnSectionFound(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections = append(s.sections, name)
}

func (s *recordingSink) OnStrategyResult(tag string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategies[tag] += count
}

func (s *recordingSink) OnWarning(w *ExtractionWarning) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warnings = append(s.warnings, w)
}

func (s *recordingSink) OnComplete(sum Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries = append(s.summaries, sum)
}

type panicStrategy struct{}

func (panicStrategy) Name() string { return "boom" }
func (panicStrategy) Extract(string) ([]types.MissionCandidate, error) {
	panic("unexpected input")
}

type failingStrategy struct{}

func (failingStrategy) Name() string { return "failing" }
func (failingStrategy) Extract(string) ([]types.MissionCandidate, error) {
	return nil, errors.Join(errors.New("block 1 unreadable"), errors.New("block 3 unreadable"))
}

func TestAnalyzeCVContent_SingleMissionSentence(t *testing.T) {
	a := NewAnalyzer(nil, Options{})

	got, err := a.AnalyzeCVContent(bnpSentence, "Jean Test")
	require.NoError(t, err)

	require.Len(t, got.Missions, 1)
	m := got.Missions[0]
	assert.Equal(t, "BNP Paribas", m.Client)
	assert.Equal(t, "2023-01-01", m.Start.String())
	assert.Equal(t, "En cours", m.End.String())
	assert.Contains(t, m.TechnicalSkills, "Python")
	assert.Contains(t, got.TechnicalSkills, "Python")
	assert.Equal(t, "Jean Test", got.Consultant)
	assert.NoError(t, got.Validate())
}

func TestAnalyzeCVContent_NoSignal(t *testing.T) {
	a := NewAnalyzer(nil, Options{})

	got, err := a.AnalyzeCVContent("Lorem ipsum dolor sit amet", "")
	require.NoError(t, err)

	assert.NotNil(t, got.Missions)
	assert.Empty(t, got.Missions)
	assert.NotNil(t, got.TechnicalSkills)
	assert.Empty(t, got.TechnicalSkills)
	assert.Equal(t, "Lorem ipsum dolor sit amet", got.RawPreview)
}

func TestAnalyzeCVContent_Contact(t *testing.T) {
	a := NewAnalyzer(nil, Options{})

	got, err := a.AnalyzeCVContent("Tel: 01 23 45 67 89, jean@test.fr", "")
	require.NoError(t, err)

	assert.Equal(t, "jean@test.fr", got.Contact.Email)
	assert.NotEmpty(t, got.Contact.Phone)
}

func TestAnalyzeCVContent_BlankInput(t *testing.T) {
	a := NewAnalyzer(nil, Options{})

	for _, text := range []string{"", "   ", "\n\t\n"} {
		got, err := a.AnalyzeCVContent(text, "x")
		assert.Nil(t, got)

		var inputErr *InputError
		require.True(t, errors.As(err, &inputErr), "%q", text)
	}
}

func TestAnalyzeCVContent_FullResume(t *testing.T) {
	sink := newRecordingSink()
	a := NewAnalyzer(nil, Options{Sink: sink})

	got, err := a.AnalyzeCVContent(sampleCV, "")
	require.NoError(t, err)

	assert.Equal(t, "Jean Dupont", got.Consultant)
	assert.Equal(t, "jean.dupont@example.com", got.Contact.Email)
	assert.Equal(t, "+33 6 12 34 56 78", got.Contact.Phone)

	require.NotEmpty(t, got.Missions)
	clients := make([]string, 0, len(got.Missions))
	for _, m := range got.Missions {
		assert.True(t, m.Valid())
		clients = append(clients, m.Client)
	}
	assert.Contains(t, clients, "Société Générale")
	assert.Contains(t, clients, "BNP Paribas")
	assert.Contains(t, got.TechnicalSkills, "Python")
	assert.Contains(t, got.TechnicalSkills, "Java")
	assert.LessOrEqual(t, len(got.TechnicalSkills), 25)
	assert.NoError(t, got.Validate())

	require.Equal(t, []string{"expériences professionnelles"}, sink.sections)
	// The document-level scan runs because a section was found.
	assert.Contains(t, sink.strategies, types.SourceKnownClient)
}

func TestAnalyzeCVContent_OutputBounds(t *testing.T) {
	var b strings.Builder
	for y := 1990; y < 2024; y++ {
		b.WriteString("2000 - 2001 : Consultant chez BNP Paribas. Projet ")
		b.WriteString(strings.Repeat("x", y-1989))
		b.WriteString(" Java Python Go Rust Kotlin Scala Ruby PHP Perl Swift Docker Kubernetes Terraform Ansible Jenkins Git SQL Spark Kafka React Angular Vue Node.js TypeScript.\n\n")
	}
	a := NewAnalyzer(nil, Options{})

	got, err := a.AnalyzeCVContent(b.String(), "")
	require.NoError(t, err)

	assert.LessOrEqual(t, len(got.Missions), 10)
	assert.LessOrEqual(t, len(got.TechnicalSkills), 25)
	assert.LessOrEqual(t, len(got.FunctionalSkills), 10)
	assert.LessOrEqual(t, len([]rune(got.RawPreview)), 1000)
	for _, m := range got.Missions {
		assert.LessOrEqual(t, len(m.TechnicalSkills), 10)
		assert.LessOrEqual(t, len([]rune(m.Summary)), 1000)
	}
	assert.NoError(t, got.Validate())
}

func TestAnalyzeCVContent_VerifiedSuppressesDuplicate(t *testing.T) {
	table, err := overrides.NewTable([]overrides.Entry{{
		Consultant: "Jean Test",
		Missions: []overrides.Record{{
			Client:  "BNP Paribas",
			Start:   "2023-01-01",
			End:     "En cours",
			Summary: "Consultant senior chez BNP Paribas. Technologies: Python, React.",
			Skills:  []string{"Python", "React"},
		}},
	}})
	require.NoError(t, err)

	sink := newRecordingSink()
	a := NewAnalyzer(nil, Options{Verified: table, Sink: sink})

	got, err := a.AnalyzeCVContent(bnpSentence, "jean  test")
	require.NoError(t, err)

	require.Len(t, got.Missions, 1)
	assert.True(t, got.Missions[0].IsVerified())
	assert.Equal(t, 1, sink.strategies[types.SourceVerified])
	require.Len(t, sink.summaries, 1)
	assert.Equal(t, 1, sink.summaries[0].VerifiedMissions)

	// No entry for another consultant
	got, err = a.AnalyzeCVContent(bnpSentence, "Someone Else")
	require.NoError(t, err)
	require.Len(t, got.Missions, 1)
	assert.False(t, got.Missions[0].IsVerified())
}

func TestAnalyzeCVContent_SinkEvents(t *testing.T) {
	sink := newRecordingSink()
	a := NewAnalyzer(nil, Options{Sink: sink})

	_, err := a.AnalyzeCVContent(bnpSentence, "")
	require.NoError(t, err)

	assert.Equal(t, []int{1}, sink.pages)
	assert.Equal(t, []string{WholeDocument}, sink.sections)
	for _, tag := range []string{types.SourceBlocks, types.SourcePattern, types.SourceKnownClient, types.SourceTriplet} {
		assert.Contains(t, sink.strategies, tag)
	}
	assert.NotContains(t, sink.strategies, types.SourceVerified)
	assert.Equal(t, 1, sink.strategies[types.SourcePattern])

	require.Len(t, sink.summaries, 1)
	sum := sink.summaries[0]
	assert.Equal(t, 1, sum.Missions)
	assert.Equal(t, WholeDocument, sum.Section)
	assert.GreaterOrEqual(t, sum.Candidates, 2)
	assert.Zero(t, sum.Warnings)
}

func TestAnalyzeCVContent_PageMarkers(t *testing.T) {
	sink := newRecordingSink()
	a := NewAnalyzer(nil, Options{Sink: sink})

	text := "--- PAGE 1 ---\nJean Dupont\n--- PAGE 2 ---\n" + bnpSentence
	_, err := a.AnalyzeCVContent(text, "")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, sink.pages)
}

func TestAnalyzeCVContent_StrategyFailuresBecomeWarnings(t *testing.T) {
	sink := newRecordingSink()
	a := NewAnalyzer(nil, Options{Sink: sink})
	a.sections = append(a.sections, panicStrategy{}, failingStrategy{})

	got, err := a.AnalyzeCVContent(bnpSentence, "")
	require.NoError(t, err)
	require.Len(t, got.Missions, 1)

	require.Len(t, sink.warnings, 3)
	assert.Equal(t, "boom", sink.warnings[0].Strategy)
	assert.Contains(t, sink.warnings[0].Error(), "unexpected input")
	assert.Equal(t, "failing", sink.warnings[1].Strategy)
	assert.Equal(t, "failing", sink.warnings[2].Strategy)
	assert.Equal(t, 0, sink.strategies["boom"])
	assert.Equal(t, 3, sink.summaries[0].Warnings)
}

func TestAnalyzeCVContent_TruncatesLongInput(t *testing.T) {
	sink := newRecordingSink()
	a := NewAnalyzer(nil, Options{Sink: sink, MaxInputBytes: 64})

	text := bnpSentence + strings.Repeat(" é", 100)
	got, err := a.AnalyzeCVContent(text, "")
	require.NoError(t, err)

	require.NotEmpty(t, sink.warnings)
	assert.Equal(t, "input", sink.warnings[0].Strategy)
	assert.LessOrEqual(t, len(got.RawPreview), 64)
}

func TestMultiSink_FansOut(t *testing.T) {
	first, second := newRecordingSink(), newRecordingSink()
	sink := MultiSink{first, second, NopSink{}}

	sink.OnPage(1)
	sink.OnSectionFound("missions")
	sink.OnStrategyResult("pattern", 2)
	sink.OnWarning(&ExtractionWarning{Strategy: "pattern", Message: "x"})
	sink.OnComplete(Summary{Missions: 2})

	for _, s := range []*recordingSink{first, second} {
		assert.Equal(t, []int{1}, s.pages)
		assert.Equal(t, []string{"missions"}, s.sections)
		assert.Equal(t, 2, s.strategies["pattern"])
		assert.Len(t, s.warnings, 1)
		assert.Len(t, s.summaries, 1)
	}
}

func TestErrors(t *testing.T) {
	cause := errors.New("root")

	inputErr := &InputError{Message: "empty", Cause: cause}
	assert.Equal(t, "input error: empty: root", inputErr.Error())
	assert.ErrorIs(t, inputErr, cause)

	warning := &ExtractionWarning{Strategy: "blocks", Message: "block skipped"}
	assert.Equal(t, "extraction warning: blocks: block skipped", warning.Error())
	assert.Nil(t, warning.Unwrap())
}
