package dates

import "strings"

// monthNumbers maps full and abbreviated month names (French, plus the English
// abbreviations common in French résumés) to 1–12.
var monthNumbers = map[string]int{
	"janvier": 1, "janv": 1, "jan": 1, "january": 1,
	"février": 2, "fevrier": 2, "févr": 2, "fevr": 2, "fév": 2, "fev": 2, "feb": 2, "february": 2,
	"mars": 3, "mar": 3, "march": 3,
	"avril": 4, "avr": 4, "apr": 4, "april": 4,
	"mai": 5, "may": 5,
	"juin": 6, "jun": 6, "june": 6,
	"juillet": 7, "juil": 7, "jul": 7, "july": 7,
	"août": 8, "aout": 8, "aug": 8, "august": 8,
	"septembre": 9, "sept": 9, "sep": 9, "september": 9,
	"octobre": 10, "oct": 10, "october": 10,
	"novembre": 11, "nov": 11, "november": 11,
	"décembre": 12, "decembre": 12, "déc": 12, "dec": 12, "december": 12,
}

// monthAlternation is the regexp alternation of every month key, longest first.
const monthAlternation = `janvier|january|janv|jan|février|fevrier|february|févr|fevr|fév|fev|feb|` +
	`mars|march|mar|avril|april|avr|apr|mai|may|juin|june|jun|juillet|july|juil|jul|` +
	`août|aout|august|aug|septembre|september|sept|sep|octobre|october|oct|` +
	`novembre|november|nov|décembre|decembre|december|déc|dec`

// MonthNumber returns the month number for a (possibly abbreviated) month name.
func MonthNumber(word string) (int, bool) {
	key := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(word), "."))
	n, ok := monthNumbers[key]
	return n, ok
}
