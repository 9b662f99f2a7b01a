package finder

import (
	"time"

	"event-finder/models"
)

// referenceNow is Monday 2026-10-19 15:00 UTC.
var referenceNow = time.Date(2026, time.October, 19, 15, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(NewDateNormalizer(time.UTC, func() time.Time { return referenceNow }))
}

func event(title, startDate, when string, address ...string) models.EventRecord {
	record := models.EventRecord{Title: title, Address: address}
	if startDate != "" || when != "" {
		record.Date = &models.EventDate{StartDate: startDate, When: when}
	}
	return record
}

func titles(events []models.EventRecord) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Title
	}
	return out
}
