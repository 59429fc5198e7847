package clients

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/cv-mission-extractor/internal/dates"
	"github.com/jonathan/cv-mission-extractor/internal/types"
)

const (
	// nameWord is a capitalised token; internal dots are allowed (Booking.com), a trailing one is not.
	nameWord = `\p{Lu}[\p{L}\p{N}&'’\-]*(?:\.[\p{L}\p{N}]+)*`
	// namePhrase is up to four capitalised words on one line.
	namePhrase = nameWord + `(?:[ \t]+(?:&[ \t]+)?` + nameWord + `){0,3}`

	roleWords = `consultante?|développeu(?:r|se)|developpeu(?:r|se)|chef\s+de\s+projet|ingénieure?|ingenieure?|` +
		`architecte|analyste|manager|directeur|directrice|responsable|lead|expert|experte|` +
		`data\s+scientist|data\s+engineer|product\s+owner|scrum\s+master|business\s+analyst|` +
		`auditeur|auditrice|pmo|amoa|moa|stagiaire|alternant|alternante`
)

// heuristics run in order; the first one yielding a clean name wins.
var heuristics = []*regexp.Regexp{
	regexp.MustCompile(`(?i:\b(?:` + roleWords + `))[^.\n]{0,60}?(?i:\b(?:chez|pour|client\s*:?))\s+(` + namePhrase + `)`),
	regexp.MustCompile(`(` + namePhrase + `)\s*,?\s+(?:SA|SAS|SASU|SARL|EURL|SNC|GIE|Inc\.?|Ltd\.?|GmbH|LLC)(?:$|[^\p{L}])`),
	regexp.MustCompile(`(?:^|[^\p{L}])(?:Société|Societe|Groupe|Group|SOCIÉTÉ|GROUPE)\s+(` + namePhrase + `)`),
	regexp.MustCompile(`^\s*(` + namePhrase + `)\s*(?:[-–—:|,(/]|\n)`),
}

// Heuristic extracts a client name from span without the gazetteer, or returns "".
func Heuristic(span string) string {
	for _, re := range heuristics {
		for _, m := range re.FindAllStringSubmatch(span, -1) {
			if name := Clean(m[1]); name != "" {
				return name
			}
		}
	}
	return ""
}

var (
	parenthetical  = regexp.MustCompile(`\s*[(\[].*$`)
	trailingSep    = regexp.MustCompile(`[\s\-–—:|,;./]+$`)
	leadingSep     = regexp.MustCompile(`^[\s\-–—:|,;./•*]+`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	digitsOnly     = regexp.MustCompile(`^[\d\s./\-]+$`)
)

// stopWords are capitalised words that open headings or roles rather than company names.
var stopWords = map[string]bool{
	"technologies": true, "technologie": true, "environnement": true, "environnement technique": true,
	"compétences": true, "competences": true, "mission": true, "missions": true, "projet": true,
	"projets": true, "expérience": true, "experience": true, "expériences": true, "client": true,
	"clients": true, "contexte": true, "réalisations": true, "realisations": true, "tâches": true,
	"outils": true, "stack": true, "rôle": true, "role": true, "poste": true, "description": true,
	"formation": true, "langues": true, "certifications": true, "objectif": true, "résumé": true,
	"profil": true, "lorem": true, "depuis": true, "du": true, "de": true, "des": true,
	"en": true, "et": true, "consultant": true, "consultante": true, "développeur": true,
	"developpeur": true, "chef": true, "ingénieur": true, "ingenieur": true, "architecte": true,
	"analyste": true, "manager": true, "directeur": true, "responsable": true, "lead": true,
	"expert": true, "stagiaire": true, "freelance": true, "confidentiel": true, "tel": true,
	"email": true, "e-mail": true, "mail": true,
}

// articles may open a company name ("La Redoute") but are never a name on their own.
var articles = map[string]bool{"le": true, "la": true, "les": true, "l'": true}

// Clean normalises a raw client match: parenthetical asides and trailing separators are
// stripped, spaces collapsed and words title-cased with acronyms kept. Stop words and
// names of MinClientRunes runes or fewer yield "".
func Clean(raw string) string {
	name := parenthetical.ReplaceAllString(raw, "")
	name = leadingSep.ReplaceAllString(name, "")
	name = trailingSep.ReplaceAllString(name, "")
	name = strings.TrimSpace(whitespaceRuns.ReplaceAllString(name, " "))
	if name == "" || digitsOnly.MatchString(name) {
		return ""
	}

	lower := strings.ToLower(name)
	words := strings.Fields(lower)
	lead := words[0]
	if articles[lead] && len(words) > 1 {
		lead = words[1]
	}
	if stopWords[lower] || articles[lower] || stopWords[lead] {
		return ""
	}
	if _, isMonth := dates.MonthNumber(lead); isMonth {
		return ""
	}

	name = cases.Title(language.French, cases.NoLower).String(name)
	if utf8.RuneCountInString(name) <= types.MinClientRunes {
		return ""
	}
	return name
}
