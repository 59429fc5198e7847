// Package dates recognizes and canonicalizes dates and date ranges in free résumé text.
package dates

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/jonathan/cv-mission-extractor/internal/types"
)

// MaxDates bounds the number of values returned by Recognize.
const MaxDates = 6

const (
	year = `((?:19|20)\d{2})`
	// sep joins two ends of a range: a dash, or "à"/"au"/"jusqu'à"/"to".
	sep = `(?:\s*[-–—]\s*|\s+(?:à|a|au|jusqu'(?:à|a)|jusqu’(?:à|a)|to)\s+)`
	// ongoingPhrase is every wording of "still in progress".
	ongoingPhrase = `(?:en\s+cours|à\s+ce\s+jour|a\s+ce\s+jour|ce\s+jour|aujourd'hui|aujourd’hui|présent|present|actuellement|actuel|now|today|current)\b`
)

type kind int

const (
	kindYMD kind = iota
	kindDMY
	kindYearRange
	kindYearOngoing
	kindMonthNameYear
	kindMonthYear
	kindYearMonth
	kindSinceYear
)

type rule struct {
	kind kind
	re   *regexp.Regexp
}

// rules run most specific first; each match claims its span.
var rules = []rule{
	{kindYMD, regexp.MustCompile(`\b` + year + `[-/.](\d{1,2})[-/.](\d{1,2})\b`)},
	{kindDMY, regexp.MustCompile(`\b(\d{1,2})[/.-](\d{1,2})[/.-]` + year + `\b`)},
	{kindYearRange, regexp.MustCompile(`\b` + year + `(?:` + sep + `|\s*/\s*)` + year + `\b`)},
	{kindYearOngoing, regexp.MustCompile(`(?i)\b` + year + sep + ongoingPhrase)},
	{kindMonthNameYear, regexp.MustCompile(`(?i)\b(` + monthAlternation + `)\.?\s+` + year + `\b`)},
	{kindMonthYear, regexp.MustCompile(`\b(\d{1,2})[/.-]` + year + `\b`)},
	{kindYearMonth, regexp.MustCompile(`\b` + year + `[/.-](\d{1,2})\b`)},
	{kindSinceYear, regexp.MustCompile(`(?i)\b(?:depuis|en|since|in)\s+` + year + `\b`)},
}

// ongoingAfter recognizes an ongoing marker directly following a date.
var ongoingAfter = regexp.MustCompile(`(?i)^` + sep + ongoingPhrase)

// ongoingMarker matches a standalone ongoing phrase.
var ongoingMarker = regexp.MustCompile(`(?i)(?:^|[^\p{L}])` + ongoingPhrase + `(?:$|[^\p{L}])`)

// HasOngoingMarker reports whether text mentions work still in progress.
func HasOngoingMarker(text string) bool {
	return ongoingMarker.MatchString(text)
}

// Recognize extracts the dates found in text: concrete dates in ascending order,
// followed by a single Ongoing marker when any match implied one. At most MaxDates values.
func Recognize(text string) []types.DateBound {
	var claimed [][2]int
	found := make(map[string]types.DateBound)
	ongoing := false

	for _, r := range rules {
		for _, m := range r.re.FindAllStringSubmatchIndex(text, -1) {
			span := [2]int{m[0], m[1]}
			if overlaps(claimed, span) {
				continue
			}
			// Claimed even when invalid so a looser rule cannot reread a malformed date.
			claimed = append(claimed, span)
			values, impliesOngoing, ok := interpret(r.kind, text, m)
			if !ok {
				continue
			}
			for _, v := range values {
				found[v.String()] = v
			}
			if impliesOngoing || ongoingAfter.MatchString(text[span[1]:]) {
				ongoing = true
			}
		}
	}

	result := make([]types.DateBound, 0, len(found)+1)
	for _, v := range found {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Before(result[j])
	})
	if ongoing {
		result = append(result, types.Ongoing())
	}
	if len(result) > MaxDates {
		result = result[:MaxDates]
	}
	return result
}

func overlaps(claimed [][2]int, span [2]int) bool {
	for _, c := range claimed {
		if span[0] < c[1] && c[0] < span[1] {
			return true
		}
	}
	return false
}

func interpret(k kind, text string, m []int) ([]types.DateBound, bool, bool) {
	group := func(i int) string {
		if m[2*i] < 0 {
			return ""
		}
		return text[m[2*i]:m[2*i+1]]
	}
	num := func(i int) int {
		n, _ := strconv.Atoi(group(i))
		return n
	}

	switch k {
	case kindYMD:
		return fixed(num(1), num(2), num(3))
	case kindDMY:
		return fixed(num(3), num(2), num(1))
	case kindYearRange:
		y1, y2 := num(1), num(2)
		if y2 < y1 {
			return nil, false, false
		}
		return []types.DateBound{types.StartOfYear(y1), types.EndOfYear(y2)}, false, true
	case kindYearOngoing:
		return []types.DateBound{types.StartOfYear(num(1))}, true, true
	case kindMonthNameYear:
		month, ok := MonthNumber(group(1))
		if !ok {
			return nil, false, false
		}
		return []types.DateBound{types.Fixed(num(2), month, 1)}, false, true
	case kindMonthYear:
		return fixed(num(2), num(1), 1)
	case kindYearMonth:
		return fixed(num(1), num(2), 1)
	case kindSinceYear:
		return []types.DateBound{types.StartOfYear(num(1))}, false, true
	}
	return nil, false, false
}

func fixed(y, mo, d int) ([]types.DateBound, bool, bool) {
	if mo < 1 || mo > 12 || d < 1 || d > 31 {
		return nil, false, false
	}
	date := types.Fixed(y, mo, d)
	if date.Day() != d {
		// Clamped: the text named a day the month does not have.
		return nil, false, false
	}
	return []types.DateBound{date}, false, true
}

// ParsePoint parses a single date token such as "2023", "2023-04", "2023-04-12",
// "04/2023", "12/04/2023" or "avril 2023". yearEnd selects December 31st for a bare year.
func ParsePoint(token string, yearEnd bool) (types.DateBound, bool) {
	if ongoingMarker.MatchString(token) {
		return types.Ongoing(), true
	}
	if m := bareYear.FindStringSubmatch(token); m != nil {
		y, _ := strconv.Atoi(m[1])
		if yearEnd {
			return types.EndOfYear(y), true
		}
		return types.StartOfYear(y), true
	}
	values := Recognize(token)
	for _, v := range values {
		if v.IsFixed() {
			return v, true
		}
	}
	return types.Unknown(), false
}

var bareYear = regexp.MustCompile(`^\s*` + year + `\s*$`)
