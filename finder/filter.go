package finder

import (
	"strings"
	"time"

	"event-finder/models"
)

// Address markers that identify an event as virtual.
var virtualMarkers = []string{"hosted by", "online", "virtual"}

// Engine runs the filter, sort and render pipeline over a cached result list.
// It never modifies the slices it is given.
type Engine struct {
	dates *DateNormalizer
}

func NewEngine(dates *DateNormalizer) *Engine {
	if dates == nil {
		dates = NewDateNormalizer(nil, nil)
	}
	return &Engine{dates: dates}
}

func (e *Engine) Dates() *DateNormalizer {
	return e.dates
}

// Filter returns the events matching state, in their original order. The
// date, category and text steps are applied in that order.
func (e *Engine) Filter(events []models.EventRecord, state FilterState, now time.Time) []models.EventRecord {
	filtered := make([]models.EventRecord, len(events))
	copy(filtered, events)

	if state.DateRange != "" && state.DateRange != DateRangeAll {
		filtered = e.filterByDate(filtered, state.DateRange, now)
	}
	if state.Category != "" && state.Category != CategoryAll {
		filtered = filterByCategory(filtered, state.Category)
	}
	if term := strings.ToLower(strings.TrimSpace(state.SearchText)); term != "" {
		filtered = filterByText(filtered, term)
	}
	return filtered
}

func (e *Engine) filterByDate(events []models.EventRecord, dateRange DateRange, now time.Time) []models.EventRecord {
	loc := e.dates.Location()
	today := startOfDay(now, loc)
	weekFromNow := today.AddDate(0, 0, 7)
	monthFromNow := today.AddDate(0, 1, 0)

	out := make([]models.EventRecord, 0, len(events))
	for _, event := range events {
		if event.StartDate() == "" {
			continue
		}
		date, ok := e.dates.Normalize(event.StartDate(), event.When(), now)
		if !ok {
			continue
		}

		var keep bool
		switch dateRange {
		case DateRangeToday:
			// The date must fall in the coming week and the provider must
			// also have labelled the event as today.
			keep = within(date, today, weekFromNow) && containsFold(event.When(), "today")
		case DateRangeThisWeek:
			keep = within(date, today, weekFromNow)
		case DateRangeThisMonth:
			keep = within(date, today, monthFromNow)
		default:
			keep = true
		}
		if keep {
			out = append(out, event)
		}
	}
	return out
}

func filterByCategory(events []models.EventRecord, category Category) []models.EventRecord {
	wantVirtual := category == CategoryVirtual
	out := make([]models.EventRecord, 0, len(events))
	for _, event := range events {
		if IsVirtual(event) == wantVirtual {
			out = append(out, event)
		}
	}
	return out
}

func filterByText(events []models.EventRecord, term string) []models.EventRecord {
	out := make([]models.EventRecord, 0, len(events))
	for _, event := range events {
		if strings.Contains(strings.ToLower(event.Title), term) ||
			strings.Contains(strings.ToLower(event.Description), term) {
			out = append(out, event)
		}
	}
	return out
}

// IsVirtual reports whether the event's address carries a virtual marker.
// Events without an address count as in person.
func IsVirtual(event models.EventRecord) bool {
	address := strings.ToLower(event.JoinedAddress(" "))
	for _, marker := range virtualMarkers {
		if strings.Contains(address, marker) {
			return true
		}
	}
	return false
}

// within reports start <= t < end.
func within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
