package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxNameLines is how many leading lines may hold the consultant's name.
const maxNameLines = 5

// ConsultantFromText guesses the consultant's name from the opening lines of a résumé:
// the first short line of two to four capitalised words without digits. Returns "" otherwise.
func ConsultantFromText(text string) string {
	seen := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if seen++; seen > maxNameLines {
			break
		}
		if looksLikeName(line) {
			return strings.Join(strings.Fields(line), " ")
		}
	}
	return ""
}

func looksLikeName(line string) bool {
	if utf8.RuneCountInString(line) > 40 || headingText(line) == "" {
		return false
	}
	for _, h := range experienceHeaders {
		if strings.HasPrefix(headingText(line), h) {
			return false
		}
	}
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		if !unicode.IsUpper(r) {
			return false
		}
		for _, c := range w {
			if !unicode.IsLetter(c) && c != '-' && c != '\'' && c != '.' {
				return false
			}
		}
	}
	return true
}
