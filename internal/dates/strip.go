package dates

import (
	"regexp"
	"strings"
)

var (
	leadingDate = regexp.MustCompile(`(?i)^\s*(?:(?:du|de|depuis|from|since|en)\s+)?` +
		`(?:(?:` + monthAlternation + `)\.?\s+|\d{1,2}[/.-](?:\d{1,2}[/.-])?)?` +
		year + `(?:[/.-]\d{1,2}\b){0,2}`)
	leadingOngoing = regexp.MustCompile(`(?i)^\s*` + ongoingPhrase)
	leadingGlue    = regexp.MustCompile(`(?i)^(?:\s*[-–—:,|]\s*|\s+(?:à|au|a|to|jusqu'à|jusqu’à)\s+|\s+)`)
)

// StripLeading removes the dates, ranges and ongoing phrases that open s,
// so "2023-01 - En cours : Consultant" becomes "Consultant".
func StripLeading(s string) string {
	for {
		loc := leadingDate.FindStringIndex(s)
		if loc == nil {
			loc = leadingOngoing.FindStringIndex(s)
		}
		if loc == nil || loc[1] == 0 {
			break
		}
		s = s[loc[1]:]
		if glue := leadingGlue.FindStringIndex(s); glue != nil {
			s = s[glue[1]:]
		}
	}
	return strings.TrimSpace(s)
}
