package extraction

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-mission-extractor/internal/gazetteer"
	"github.com/jonathan/cv-mission-extractor/internal/types"
)

const e2eSentence = "2023-01-01 - En cours: Consultant senior chez BNP Paribas. Technologies: Python, React."

func recognizers() Recognizers {
	return NewRecognizers(gazetteer.Default())
}

func TestDefaultSectionStrategies_Order(t *testing.T) {
	var names []string
	for _, s := range DefaultSectionStrategies(gazetteer.Default()) {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{types.SourceBlocks, types.SourcePattern, types.SourceKnownClient, types.SourceTriplet}, names)
}

func TestPattern_Extract(t *testing.T) {
	p := NewPattern(recognizers())

	got, err := p.Extract(e2eSentence)
	require.NoError(t, err)
	require.Len(t, got, 1)

	c := got[0]
	assert.Equal(t, "BNP Paribas", c.Client)
	assert.Equal(t, "2023-01-01", c.Start.String())
	assert.True(t, c.End.IsOngoing())
	assert.Equal(t, []string{"Python", "React"}, c.TechnicalSkills)
	assert.Equal(t, "Consultant senior chez BNP Paribas. Technologies: Python, React.", c.Summary)
	assert.Equal(t, types.SourcePattern, c.SourceStrategy)
}

func TestPattern_YearRangeAndMissingClient(t *testing.T) {
	p := NewPattern(recognizers())
	text := "2019 - 2021 : Développeur Java chez Globex sur la refonte du SI\n2015 - 2016 : lorem ipsum"

	got, err := p.Extract(text)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Globex", got[0].Client)
	assert.Equal(t, "2019-01-01", got[0].Start.String())
	assert.Equal(t, "2021-12-31", got[0].End.String())
}

func TestKnownClient_Extract(t *testing.T) {
	k := NewKnownClient(recognizers())

	got, err := k.Extract(e2eSentence)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "BNP Paribas", got[0].Client)
	assert.Equal(t, "2023-01-01", got[0].Start.String())
	assert.True(t, got[0].End.IsOngoing())
	assert.Contains(t, got[0].TechnicalSkills, "Python")
	assert.Equal(t, types.SourceKnownClient, got[0].SourceStrategy)
}

func TestKnownClient_LoneDateEndsOngoing(t *testing.T) {
	k := NewKnownClient(recognizers())

	got, err := k.Extract("Mission chez AXA en 2020 sur la conformité.")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2020-01-01", got[0].Start.String())
	assert.True(t, got[0].End.IsOngoing())

	got, err = k.Extract("AXA, sans aucune date")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestKnownClient_WindowIsBounded(t *testing.T) {
	k := NewKnownClient(recognizers())
	text := "2010 - 2012 " + strings.Repeat("é", 400) + " AXA " + strings.Repeat("x ", 10)

	got, err := k.Extract(text)
	require.NoError(t, err)
	assert.Empty(t, got, "dates outside the window must not be read")
}

func TestBlocks_Extract(t *testing.T) {
	b := NewBlocks(recognizers())
	text := strings.Join([]string{
		"Société Générale\nJanvier 2019 - Décembre 2020\nDéveloppement d'une plateforme de reporting " +
			"réglementaire en Java et Spring Boot pour la direction des risques.",
		"AXA 2020",
		strings.Repeat("lorem ipsum dolor sit amet ", 5),
	}, "\n\n")

	got, err := b.Extract(text)
	require.NoError(t, err)
	require.Len(t, got, 1)

	c := got[0]
	assert.Equal(t, "Société Générale", c.Client)
	assert.Equal(t, "2019-01-01", c.Start.String())
	assert.Equal(t, "2020-12-01", c.End.String())
	assert.Equal(t, []string{"Java", "Spring Boot"}, c.TechnicalSkills)
	assert.NotEmpty(t, c.Summary)
	assert.Equal(t, types.SourceBlocks, c.SourceStrategy)
}

func TestBlocks_SingleDateLeavesEndUnknown(t *testing.T) {
	b := NewBlocks(recognizers())
	block := "Mission chez AXA depuis 2021 : conception d'une application de gestion des sinistres, " +
		"mise en place d'une chaîne de déploiement et accompagnement des équipes métier."

	got, err := b.Extract(block)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2021-01-01", got[0].Start.String())
	assert.True(t, got[0].End.IsUnknown())
}

func TestSplitBlocks(t *testing.T) {
	got := SplitBlocks("a\n\nb....c\n  \n d…… e\n\n\n")
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, got)
}

func TestTriplet_Extract(t *testing.T) {
	tr := NewTriplet(recognizers())
	text := strings.Join([]string{
		"BNP Paribas",
		"Janvier 2020 - En cours",
		"Chef de projet data",
		"Pilotage de la migration vers le cloud.",
		"Mise en place de pipelines Python et Airflow.",
		"",
		"Acme Corp",
		"Mars 2017 - 2019",
		"Responsable d'équipe",
		"Encadrement de 5 développeurs Java.",
	}, "\n")

	got, err := tr.Extract(text)
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "BNP Paribas", first.Client)
	assert.Equal(t, "2020-01-01", first.Start.String())
	assert.True(t, first.End.IsOngoing())
	assert.Equal(t, "Chef de projet data", first.Role)
	assert.Equal(t, []string{"Python", "Airflow"}, first.TechnicalSkills)
	assert.Contains(t, first.Summary, "migration")

	second := got[1]
	assert.Equal(t, "Acme Corp", second.Client)
	assert.Equal(t, "2017-03-01", second.Start.String())
	assert.Equal(t, "2019-12-31", second.End.String())
	assert.Equal(t, []string{"Java"}, second.TechnicalSkills)
}

func TestTriplet_ArticleLedCompany(t *testing.T) {
	tr := NewTriplet(recognizers())
	text := strings.Join([]string{
		"La Redoute",
		"Janvier 2020 - 2022",
		"Chef de projet digital",
		"Refonte du site e-commerce.",
		"",
		"Les Echos",
		"Mars 2017 - 2019",
		"Responsable éditorial",
		"Pilotage de la rédaction web.",
		"",
		"Decathlon",
		"Juin 2015 - 2016",
		"Chef de produit",
		"Lancement de la marketplace.",
	}, "\n")

	got, err := tr.Extract(text)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "La Redoute", got[0].Client)
	assert.Equal(t, "2020-01-01", got[0].Start.String())
	assert.Equal(t, "Les Echos", got[1].Client)
	assert.Equal(t, "2017-03-01", got[1].Start.String())
	assert.Equal(t, "Decathlon", got[2].Client)
}

func TestTriplet_DescriptionIsBounded(t *testing.T) {
	tr := NewTriplet(recognizers())
	lines := []string{"AXA", "Juin 2018 - 2020", "Manager"}
	for i := 0; i < 12; i++ {
		lines = append(lines, "Pilotage du projet numéro "+strings.Repeat("I", i+1))
	}

	got, err := tr.Extract(strings.Join(lines, "\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, MaxTripletDescriptionLines, strings.Count(got[0].Summary, "Pilotage"))
	assert.Equal(t, "2018-06-01", got[0].Start.String())
}

func TestVerified_IgnoresTextAndTags(t *testing.T) {
	seed := []types.MissionCandidate{{
		Client:          "Initech",
		Start:           types.Fixed(2020, 1, 1),
		End:             types.Fixed(2021, 6, 30),
		TechnicalSkills: []string{"Go"},
	}}
	v := NewVerified(seed)
	seed[0].TechnicalSkills[0] = "mutated"

	got, err := v.Extract("")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, types.SourceVerified, got[0].SourceStrategy)
	assert.Equal(t, []string{"Go"}, got[0].TechnicalSkills)

	got[0].TechnicalSkills[0] = "again"
	again, _ := v.Extract("anything")
	assert.Equal(t, []string{"Go"}, again[0].TechnicalSkills)
}

func TestSummarize(t *testing.T) {
	t.Run("strips leading dates", func(t *testing.T) {
		assert.Equal(t,
			"Consultant senior chez BNP Paribas. Technologies: Python, React.",
			Summarize(e2eSentence))
	})

	t.Run("keeps scoring sentences in document order", func(t *testing.T) {
		text := "Il fait beau. Conception et développement de l'application. Rien à signaler. Migration vers le cloud."
		assert.Equal(t, "Conception et développement de l'application. Migration vers le cloud.", Summarize(text))
	})

	t.Run("falls back to truncation", func(t *testing.T) {
		assert.Equal(t, "Lorem ipsum dolor sit amet", Summarize("  Lorem   ipsum dolor sit amet "))

		long := strings.Repeat("blablabla ", 200)
		got := Summarize(long)
		assert.LessOrEqual(t, utf8.RuneCountInString(got), types.MaxSummaryRunes)
		assert.NotEmpty(t, got)
	})

	t.Run("bounded when every sentence scores", func(t *testing.T) {
		long := strings.Repeat("Développement de l'application métier. ", 60)
		assert.LessOrEqual(t, utf8.RuneCountInString(Summarize(long)), types.MaxSummaryRunes)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", Summarize(""))
	})
}

func TestRole(t *testing.T) {
	assert.Equal(t, "Consultant Senior", Role("Consultant senior chez BNP Paribas"))
	assert.Equal(t, "Chef De Projet", Role("Poste : chef de projet"))
	assert.Equal(t, "Data Engineer", Role("Data engineer"))
	assert.Equal(t, "", Role("lorem ipsum"))
}

func TestGuard_RecoversPanic(t *testing.T) {
	_, ok, err := guard("blocks", 3, func() (types.MissionCandidate, bool) {
		panic("boom")
	})
	assert.False(t, ok)

	var blockErr *BlockError
	require.True(t, errors.As(err, &blockErr))
	assert.Equal(t, 3, blockErr.Index)
	assert.Contains(t, err.Error(), "boom")
}

func TestBounds(t *testing.T) {
	fixed := types.Fixed(2020, 1, 1)

	start, end := bounds(nil, types.Ongoing())
	assert.True(t, start.IsUnknown())
	assert.True(t, end.IsOngoing())

	start, end = bounds([]types.DateBound{types.Ongoing()}, types.Unknown())
	assert.True(t, start.IsUnknown())
	assert.True(t, end.IsOngoing())

	start, end = bounds([]types.DateBound{fixed}, types.Unknown())
	assert.Equal(t, fixed, start)
	assert.True(t, end.IsUnknown())
}
