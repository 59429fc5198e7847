package extraction

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var roleTitle = regexp.MustCompile(`(?i)(?:^|[^\p{L}])((?:chef\s+de\s+projet|directeur|directrice|responsable|manager|` +
	`consultante?|développeu(?:r|se)|developpeu(?:r|se)|ingénieure?|ingenieure?|architecte|analyste|` +
	`data\s+scientist|data\s+engineer|product\s+owner|scrum\s+master|business\s+analyst|tech\s+lead|` +
	`lead\s+dev(?:eloper)?|pmo|amoa|moa)` +
	`(?:[ \t]+(?:senior|sénior|junior|confirmée?|technique|fonctionnelle?|principal|data|cloud|devops|` +
	`big\s+data|java|python|full[\s-]?stack|back[\s-]?end|front[\s-]?end|moa|amoa|si|it))*)(?:$|[^\p{L}])`)

// managerialKeyword identifies the role line of a triplet.
var managerialKeyword = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:manager|management|chef|responsable|directeur|directrice|` +
	`head|lead|pilote|coordinat(?:eur|rice)|product\s+owner|scrum\s+master|pmo|consultante?|` +
	`architecte|expert|experte)(?:$|[^\p{L}])`)

// Role returns the first job title found in text, title-cased, or "".
func Role(text string) string {
	m := roleTitle.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return cases.Title(language.French, cases.NoLower).String(spaceRuns.ReplaceAllString(m[1], " "))
}
