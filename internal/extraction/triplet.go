package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/cv-mission-extractor/internal/clients"
	"github.com/jonathan/cv-mission-extractor/internal/dates"
	"github.com/jonathan/cv-mission-extractor/internal/skills"
	"github.com/jonathan/cv-mission-extractor/internal/types"
)

const (
	// MaxTripletDescriptionLines bounds the description read after a triplet.
	MaxTripletDescriptionLines = 8
	// maxCompanyWords is the longest company line accepted without a gazetteer match.
	maxCompanyWords = 3
)

// tripletDate matches "<word> <year>" optionally followed by a dash and an end.
var tripletDate = regexp.MustCompile(`^(\p{L}+)\.?\s+((?:19|20)\d{2})\s*(?:[-–—]\s*(.*))?$`)

// Triplet reads missions laid out as a company line, a date line and a role line.
type Triplet struct {
	rec Recognizers
}

// NewTriplet returns the triplet-format strategy.
func NewTriplet(rec Recognizers) *Triplet {
	return &Triplet{rec: rec}
}

// Name returns the source tag.
func (t *Triplet) Name() string { return types.SourceTriplet }

type tripletHead struct {
	client string
	start  types.DateBound
	end    types.DateBound
	role   string
}

// Extract scans line windows and emits one candidate per triplet.
func (t *Triplet) Extract(text string) ([]types.MissionCandidate, error) {
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	var out []types.MissionCandidate
	for i := 0; i+2 < len(lines); i++ {
		head, ok := t.head(lines, i)
		if !ok {
			continue
		}

		var desc []string
		j := i + 3
		for ; j < len(lines) && len(desc) < MaxTripletDescriptionLines; j++ {
			if lines[j] == "" {
				break
			}
			if _, next := t.head(lines, j); next {
				break
			}
			desc = append(desc, lines[j])
		}

		body := strings.Join(desc, "\n")
		all := strings.Join(append([]string{lines[i], lines[i+1], lines[i+2]}, desc...), "\n")
		c := types.MissionCandidate{
			Client:          head.client,
			Start:           head.start,
			End:             head.end,
			Role:            head.role,
			Summary:         Summarize(body),
			TechnicalSkills: t.rec.Skills.Recognize(all, skills.MissionSkillLimit),
			SourceStrategy:  types.SourceTriplet,
		}
		if c.Summary == "" {
			c.Summary = head.role
		}
		if c.Valid() {
			out = append(out, c)
		}
		i = j - 1
	}
	return out, nil
}

// head reports whether lines[i:i+3] form a company/date/role triplet.
func (t *Triplet) head(lines []string, i int) (tripletHead, bool) {
	if i+2 >= len(lines) {
		return tripletHead{}, false
	}
	company, dateLine, roleLine := lines[i], lines[i+1], lines[i+2]
	if company == "" || roleLine == "" || !managerialKeyword.MatchString(roleLine) {
		return tripletHead{}, false
	}
	m := tripletDate.FindStringSubmatch(dateLine)
	if m == nil {
		return tripletHead{}, false
	}

	client := t.rec.Clients.Known(company)
	if client == "" && len(strings.Fields(company)) <= maxCompanyWords {
		client = clients.Clean(company)
	}
	if client == "" {
		return tripletHead{}, false
	}

	year, _ := strconv.Atoi(m[2])
	start := types.StartOfYear(year)
	if month, ok := dates.MonthNumber(m[1]); ok {
		start = types.Fixed(year, month, 1)
	}

	end := types.Unknown()
	switch rest := strings.TrimSpace(m[3]); {
	case rest == "":
	case dates.HasOngoingMarker(rest):
		end = types.Ongoing()
	default:
		if v, ok := dates.ParsePoint(rest, true); ok {
			end = v
		}
	}

	return tripletHead{
		client: client,
		start:  start,
		end:    end,
		role:   strings.Join(strings.Fields(roleLine), " "),
	}, true
}
