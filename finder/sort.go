package finder

import (
	"slices"
	"strings"
	"time"

	"event-finder/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// unknownDate is where events without a readable date sort.
var unknownDate = time.Unix(0, 0)

// Sort returns a stably sorted copy of events. Dates are read relative to now.
// Relevance keeps the provider's order.
func (e *Engine) Sort(events []models.EventRecord, key SortKey, now time.Time) []models.EventRecord {
	sorted := make([]models.EventRecord, len(events))
	copy(sorted, events)

	switch key {
	case SortDate:
		e.sortByDate(sorted, now)
	case SortTitle:
		sortByTitle(sorted)
	}
	return sorted
}

func (e *Engine) sortByDate(events []models.EventRecord, now time.Time) {
	type keyed struct {
		event models.EventRecord
		at    time.Time
	}

	keys := make([]keyed, len(events))
	for i, event := range events {
		at, ok := e.dates.Normalize(event.StartDate(), event.When(), now)
		if !ok {
			at = unknownDate
		}
		keys[i] = keyed{event: event, at: at}
	}

	slices.SortStableFunc(keys, func(a, b keyed) int {
		return a.at.Compare(b.at)
	})
	for i := range keys {
		events[i] = keys[i].event
	}
}

func sortByTitle(events []models.EventRecord) {
	collator := collate.New(language.English)
	type keyed struct {
		event models.EventRecord
		title string
	}

	keys := make([]keyed, len(events))
	for i, event := range events {
		keys[i] = keyed{event: event, title: strings.ToLower(event.Title)}
	}

	slices.SortStableFunc(keys, func(a, b keyed) int {
		return collator.CompareString(a.title, b.title)
	})
	for i := range keys {
		events[i] = keys[i].event
	}
}
