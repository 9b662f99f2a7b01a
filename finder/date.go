package finder

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// Layouts tried for "<start_date> <year>" strings such as "Jul 2 2026".
var calendarLayouts = []string{
	"Jan 2 2006",
	"January 2 2006",
	"Jan. 2 2006",
	"Jan 2, 2006",
	"Mon, Jan 2 2006",
	"Mon Jan 2 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// datePhrase matches "Sat, Nov 7" style prefixes of the free-text when field.
var datePhrase = regexp.MustCompile(`(\w+),?\s+(\w+)\s+(\d+)`)

// DateNormalizer turns the provider's loose date strings into instants.
// It never fails: anything it cannot read is reported as unknown.
type DateNormalizer struct {
	location *time.Location
	clock    func() time.Time
}

// NewDateNormalizer returns a normalizer reading dates in loc. A nil clock
// means time.Now.
func NewDateNormalizer(loc *time.Location, clock func() time.Time) *DateNormalizer {
	if loc == nil {
		loc = time.Local
	}
	if clock == nil {
		clock = time.Now
	}
	return &DateNormalizer{location: loc, clock: clock}
}

func (n *DateNormalizer) Location() *time.Location {
	return n.location
}

// Now is the normalizer's current instant in its location.
func (n *DateNormalizer) Now() time.Time {
	return n.clock().In(n.location)
}

// Normalize resolves an event date relative to now. The boolean is false when
// the date is unknown.
//
// startDate is read with now's year appended. If that fails, a when text
// mentioning "today" resolves to now, and a when text that looks like
// "Sat, Nov 7 ..." is parsed as a date.
func (n *DateNormalizer) Normalize(startDate, when string, now time.Time) (t time.Time, ok bool) {
	defer func() {
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()

	now = now.In(n.location)
	year := strconv.Itoa(now.Year())
	if s := strings.TrimSpace(startDate); s != "" {
		if parsed, ok := n.parseCalendar(s + " " + year); ok {
			return parsed, true
		}
	}

	when = strings.TrimSpace(when)
	if when == "" {
		return time.Time{}, false
	}
	if containsFold(when, "today") {
		return now, true
	}

	match := datePhrase.FindStringSubmatch(when)
	if match == nil {
		return time.Time{}, false
	}
	if parsed, ok := n.parseCalendar(match[2] + " " + match[3] + " " + year); ok {
		return parsed, true
	}
	return n.parseFreeText(when, now)
}

func (n *DateNormalizer) parseCalendar(value string) (time.Time, bool) {
	for _, layout := range calendarLayouts {
		if parsed, err := time.ParseInLocation(layout, value, n.location); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func (n *DateNormalizer) parseFreeText(value string, now time.Time) (time.Time, bool) {
	cfg := &dateparser.Configuration{
		Languages:       []string{"en"},
		CurrentTime:     now,
		DefaultTimezone: n.location,
	}
	parsed, err := dateparser.Parse(cfg, value)
	if err != nil || parsed.Time.IsZero() {
		return time.Time{}, false
	}
	return parsed.Time, true
}

// startOfDay truncates t to midnight in loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
