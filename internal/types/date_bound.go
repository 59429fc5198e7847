// Package types provides type definitions for structured data used throughout the cv-mission-extractor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// OngoingLabel is the wire form of an open-ended end date.
const OngoingLabel = "En cours"

// DateKind tags the variant held by a DateBound.
type DateKind int

const (
	// DateUnknown is the zero value: no date could be established.
	DateUnknown DateKind = iota
	// DateFixed is a concrete calendar day.
	DateFixed
	// DateOngoing marks work that has not ended yet.
	DateOngoing
)

// DateBound is a canonical point in time: Fixed(y, m, d), Ongoing or Unknown.
// The zero value is Unknown. Values are immutable.
type DateBound struct {
	kind  DateKind
	year  int
	month int
	day   int
}

// Fixed returns a concrete date bound. Out-of-range months and days are clamped.
func Fixed(year, month, day int) DateBound {
	if month < 1 {
		month = 1
	}
	if month > 12 {
		month = 12
	}
	if last := daysIn(year, month); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return DateBound{kind: DateFixed, year: year, month: month, day: day}
}

// Ongoing returns the open-ended marker.
func Ongoing() DateBound {
	return DateBound{kind: DateOngoing}
}

// Unknown returns the unknown marker.
func Unknown() DateBound {
	return DateBound{}
}

// StartOfYear returns January 1st of year.
func StartOfYear(year int) DateBound {
	return Fixed(year, 1, 1)
}

// EndOfYear returns December 31st of year.
func EndOfYear(year int) DateBound {
	return Fixed(year, 12, 31)
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsFixed reports whether d is a concrete date.
func (d DateBound) IsFixed() bool { return d.kind == DateFixed }

// IsOngoing reports whether d is the open-ended marker.
func (d DateBound) IsOngoing() bool { return d.kind == DateOngoing }

// IsUnknown reports whether d is unknown.
func (d DateBound) IsUnknown() bool { return d.kind == DateUnknown }

// Comparable reports whether d takes part in ordering. Unknown never does.
func (d DateBound) Comparable() bool { return d.kind != DateUnknown }

// Year returns the year of a fixed date, 0 otherwise.
func (d DateBound) Year() int { return d.year }

// Month returns the month of a fixed date, 0 otherwise.
func (d DateBound) Month() int { return d.month }

// Day returns the day of a fixed date, 0 otherwise.
func (d DateBound) Day() int { return d.day }

// Time converts a fixed date to a UTC time. Other variants return the zero time.
func (d DateBound) Time() time.Time {
	if d.kind != DateFixed {
		return time.Time{}
	}
	return time.Date(d.year, time.Month(d.month), d.day, 0, 0, 0, 0, time.UTC)
}

// Compare orders comparable bounds: fixed dates chronologically, any fixed date before Ongoing.
// Unknown compares greater than everything so that it sorts last for display;
// callers that must exclude Unknown check Comparable first.
func (d DateBound) Compare(other DateBound) int {
	rank := func(b DateBound) int {
		switch b.kind {
		case DateFixed:
			return 0
		case DateOngoing:
			return 1
		default:
			return 2
		}
	}
	if r1, r2 := rank(d), rank(other); r1 != r2 {
		if r1 < r2 {
			return -1
		}
		return 1
	}
	if d.kind != DateFixed {
		return 0
	}
	switch {
	case d.year != other.year:
		return sign(d.year - other.year)
	case d.month != other.month:
		return sign(d.month - other.month)
	default:
		return sign(d.day - other.day)
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

// Before reports whether d sorts strictly before other.
func (d DateBound) Before(other DateBound) bool {
	return d.Compare(other) < 0
}

// String returns the wire form: YYYY-MM-DD, "En cours" or "".
func (d DateBound) String() string {
	switch d.kind {
	case DateFixed:
		return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
	case DateOngoing:
		return OngoingLabel
	default:
		return ""
	}
}

// ParseDateBound parses the wire forms plus the shorthand YYYY and YYYY-MM.
// The ongoing label is matched case-insensitively.
func ParseDateBound(s string) (DateBound, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unknown(), nil
	}
	if strings.EqualFold(s, OngoingLabel) {
		return Ongoing(), nil
	}

	parts := strings.Split(s, "-")
	if len(parts) > 3 {
		return Unknown(), fmt.Errorf("invalid date %q", s)
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Unknown(), fmt.Errorf("invalid date %q: %w", s, err)
		}
		nums[i] = n
	}
	if len(parts[0]) != 4 {
		return Unknown(), fmt.Errorf("invalid date %q: year must have four digits", s)
	}

	switch len(nums) {
	case 1:
		return StartOfYear(nums[0]), nil
	case 2:
		if nums[1] < 1 || nums[1] > 12 {
			return Unknown(), fmt.Errorf("invalid date %q: month out of range", s)
		}
		return Fixed(nums[0], nums[1], 1), nil
	default:
		if nums[1] < 1 || nums[1] > 12 || nums[2] < 1 || nums[2] > daysIn(nums[0], nums[1]) {
			return Unknown(), fmt.Errorf("invalid date %q: day or month out of range", s)
		}
		return Fixed(nums[0], nums[1], nums[2]), nil
	}
}

// MarshalJSON encodes the wire form as a JSON string.
func (d DateBound) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes the wire form.
func (d *DateBound) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDateBound(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalText lets DateBound be decoded from YAML scalars and flags.
func (d *DateBound) UnmarshalText(text []byte) error {
	parsed, err := ParseDateBound(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
