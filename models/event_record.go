package models

import "strings"

// EventRecord is a single entry of the provider's "events_results" array.
// Every field is optional upstream; the zero value means "not supplied".
type EventRecord struct {
	Title            string       `json:"title,omitempty"`
	Description      string       `json:"description,omitempty"`
	Date             *EventDate   `json:"date,omitempty"`
	Address          []string     `json:"address,omitempty"`
	Link             string       `json:"link,omitempty"`
	EventLocationMap *LocationMap `json:"event_location_map,omitempty"`
	TicketInfo       []TicketInfo `json:"ticket_info,omitempty"`
	Venue            *Venue       `json:"venue,omitempty"`
	Thumbnail        string       `json:"thumbnail,omitempty"`
	Image            string       `json:"image,omitempty"`
}

// EventDate holds the two loosely formatted date strings the provider sends,
// e.g. start_date "Jul 2" and when "Today, 7 – 10 PM".
type EventDate struct {
	StartDate string `json:"start_date,omitempty"`
	When      string `json:"when,omitempty"`
}

// Venue describes where the event takes place.
type Venue struct {
	Name    string  `json:"name,omitempty"`
	Rating  float64 `json:"rating,omitempty"`
	Reviews int     `json:"reviews,omitempty"`
	Link    string  `json:"link,omitempty"`
}

// TicketInfo is one ticket or info source. LinkType is "tickets" or "more info".
type TicketInfo struct {
	Source   string `json:"source,omitempty"`
	Link     string `json:"link,omitempty"`
	LinkType string `json:"link_type,omitempty"`
}

// LocationMap links to the provider's map of the event location.
type LocationMap struct {
	Image       string `json:"image,omitempty"`
	Link        string `json:"link,omitempty"`
	SerpapiLink string `json:"serpapi_link,omitempty"`
}

// StartDate returns date.start_date or "" when the record has no date.
func (e EventRecord) StartDate() string {
	if e.Date == nil {
		return ""
	}
	return e.Date.StartDate
}

// When returns date.when or "" when the record has no date.
func (e EventRecord) When() string {
	if e.Date == nil {
		return ""
	}
	return e.Date.When
}

// JoinedAddress joins the address lines with sep.
func (e EventRecord) JoinedAddress(sep string) string {
	return strings.Join(e.Address, sep)
}
