package analysis

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/jonathan/cv-mission-extractor/internal/types"
)

// DefaultPhoneRegion is the region assumed for numbers written without a country code.
const DefaultPhoneRegion = "FR"

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneShape   = regexp.MustCompile(`(?:\+\d{1,3}[ .\-]?)?(?:\(0\)[ .\-]?)?\d(?:[ .\-]?\d){8,13}`)
)

// RecognizeContact returns the first email and the first plausible phone number in text.
// Phone numbers keep the spelling found in the text.
func RecognizeContact(text string) types.Contact {
	var c types.Contact
	if m := emailPattern.FindString(text); m != "" {
		c.Email = m
	}
	for _, m := range phoneShape.FindAllString(text, -1) {
		num, err := phonenumbers.Parse(m, DefaultPhoneRegion)
		if err != nil || !phonenumbers.IsPossibleNumber(num) {
			continue
		}
		c.Phone = strings.TrimSpace(m)
		break
	}
	return c
}
