package extraction

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/cv-mission-extractor/internal/dates"
	"github.com/jonathan/cv-mission-extractor/internal/types"
)

// missionKeywords mark sentences that describe the work done.
var missionKeywords = []string{
	"mission", "projet", "client", "consultant", "application", "plateforme", "architecture",
	"migration", "refonte", "conception", "développement", "developpement", "mise en place",
	"déploiement", "deploiement", "équipe", "equipe", "données", "donnees", "data",
	"technologies", "environnement", "pilotage", "gestion", "analyse", "sécurité", "securite",
	"risques", "reporting", "automatisation", "api", "cloud", "infrastructure", "métier", "metier",
}

// actionVerbs weigh more than keywords: they open accomplishment sentences.
var actionVerbs = []string{
	"développé", "developpe", "conçu", "concu", "piloté", "pilote", "réalisé", "realise",
	"participé", "participe", "encadré", "encadre", "géré", "gere", "implémenté", "implemente",
	"optimisé", "optimise", "migré", "migre", "déployé", "deploye", "assuré", "assure",
	"accompagné", "accompagne", "rédigé", "redige", "animé", "anime", "mis en place",
	"automatisé", "automatise", "industrialisé", "industrialise", "développer", "concevoir",
	"piloter", "mettre en place", "assurer", "accompagner",
}

var (
	sentenceEnd  = regexp.MustCompile(`[.!?…]+(?:\s+|$)|\n+`)
	bulletPrefix = regexp.MustCompile(`^[\s\-–—•*·▪►>]+`)
	spaceRuns    = regexp.MustCompile(`\s+`)
	ellipsisRuns = regexp.MustCompile(`\.{4,}|…{2,}`)
)

type scoredSentence struct {
	text  string
	pos   int
	score int
}

// Summarize condenses text into a mission summary of at most MaxSummaryRunes runes.
// Sentences are scored by mission keywords and action verbs; the best are kept in
// document order. When nothing scores the cleaned text is truncated instead.
func Summarize(text string) string {
	sentences := splitSentences(text)

	var scored []scoredSentence
	for i, s := range sentences {
		if n := scoreSentence(s); n > 0 {
			scored = append(scored, scoredSentence{text: s, pos: i, score: n})
		}
	}
	if len(scored) == 0 {
		return truncateRunes(strings.Join(sentences, " "), types.MaxSummaryRunes)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	var picked []scoredSentence
	budget := types.MaxSummaryRunes
	for _, s := range scored {
		n := utf8.RuneCountInString(s.text)
		if len(picked) > 0 {
			n++
		}
		if n > budget {
			continue
		}
		budget -= n
		picked = append(picked, s)
	}
	if len(picked) == 0 {
		return truncateRunes(scored[0].text, types.MaxSummaryRunes)
	}

	sort.Slice(picked, func(i, j int) bool {
		return picked[i].pos < picked[j].pos
	})
	parts := make([]string, len(picked))
	for i, s := range picked {
		parts[i] = s.text
	}
	return strings.Join(parts, " ")
}

// splitSentences cuts text into cleaned sentences, stripping bullets and leading dates.
func splitSentences(text string) []string {
	text = ellipsisRuns.ReplaceAllString(text, "\n")

	var out []string
	add := func(raw string) {
		s := bulletPrefix.ReplaceAllString(raw, "")
		s = dates.StripLeading(s)
		s = strings.TrimSpace(spaceRuns.ReplaceAllString(s, " "))
		if hasLetter(s) {
			out = append(out, s)
		}
	}

	prev := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		add(text[prev:loc[1]])
		prev = loc[1]
	}
	if prev < len(text) {
		add(text[prev:])
	}
	return out
}

func scoreSentence(s string) int {
	lower := strings.ToLower(s)
	score := 0
	for _, k := range missionKeywords {
		if containsWord(lower, k) {
			score++
		}
	}
	for _, v := range actionVerbs {
		if containsWord(lower, v) {
			score += 2
		}
	}
	return score
}

// containsWord reports whether word occurs in s at letter boundaries.
func containsWord(s, word string) bool {
	for from := 0; from < len(s); {
		i := strings.Index(s[from:], word)
		if i < 0 {
			return false
		}
		start, end := from+i, from+i+len(word)
		before, _ := utf8.DecodeLastRuneInString(s[:start])
		after, _ := utf8.DecodeRuneInString(s[end:])
		if (start == 0 || !unicode.IsLetter(before)) && (end == len(s) || !unicode.IsLetter(after)) {
			return true
		}
		from = end
	}
	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n]))
}
