package finder

import (
	"fmt"
	"html"
	"strconv"
	"time"

	"event-finder/models"
)

const (
	defaultTitle       = "Untitled Event"
	defaultDescription = "No description available."
	defaultDateText    = "Date TBA"
	defaultAddress     = "Location TBA"
	defaultLink        = "#"
	ticketsLinkType    = "tickets"
)

// DisplayEvent is the presentation form of an EventRecord. Every string is
// already HTML-escaped and can be embedded in markup verbatim.
type DisplayEvent struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	DateText     string `json:"date_text"`
	Address      string `json:"address"`
	VenueName    string `json:"venue_name,omitempty"`
	VenueRating  string `json:"venue_rating,omitempty"`
	VenueReviews string `json:"venue_reviews,omitempty"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	Link         string `json:"link"`
	TicketLink   string `json:"ticket_link"`
}

// ToView maps an event to its escaped display form.
func ToView(event models.EventRecord) DisplayEvent {
	view := DisplayEvent{
		Title:       escape(orDefault(event.Title, defaultTitle)),
		Description: escape(orDefault(event.Description, defaultDescription)),
		DateText:    escape(orDefault(event.When(), orDefault(event.StartDate(), defaultDateText))),
		Address:     escape(defaultAddress),
		Thumbnail:   escape(event.Thumbnail),
		Link:        escape(orDefault(event.Link, defaultLink)),
		TicketLink:  escape(TicketLink(event)),
	}
	if len(event.Address) > 0 {
		view.Address = escape(event.JoinedAddress(", "))
	}
	if event.Venue != nil && event.Venue.Name != "" {
		view.VenueName = escape(event.Venue.Name)
		if event.Venue.Rating > 0 {
			view.VenueRating = strconv.FormatFloat(event.Venue.Rating, 'f', -1, 64)
			if event.Venue.Reviews > 0 {
				view.VenueReviews = strconv.Itoa(event.Venue.Reviews)
			}
		}
	}
	return view
}

// ToViews maps events in order.
func ToViews(events []models.EventRecord) []DisplayEvent {
	views := make([]DisplayEvent, len(events))
	for i, event := range events {
		views[i] = ToView(event)
	}
	return views
}

// TicketLink picks the "tickets" entry, then the first ticket entry, then the
// event link, then "#". The result is not escaped.
func TicketLink(event models.EventRecord) string {
	for _, ticket := range event.TicketInfo {
		if ticket.LinkType == ticketsLinkType && ticket.Link != "" {
			return ticket.Link
		}
	}
	if len(event.TicketInfo) > 0 && event.TicketInfo[0].Link != "" {
		return event.TicketInfo[0].Link
	}
	return orDefault(event.Link, defaultLink)
}

// Apply runs filter, sort and render for the given state.
func (e *Engine) Apply(events []models.EventRecord, state FilterState, now time.Time) []DisplayEvent {
	return ToViews(e.Sort(e.Filter(events, state, now), state.SortKey, now))
}

// ResultsHeading is the escaped "Events in {city}" heading.
func ResultsHeading(city string) string {
	return escape("Events in " + city)
}

// CountLabel renders "1 event" or "N events".
func CountLabel(n int) string {
	if n == 1 {
		return "1 event"
	}
	return fmt.Sprintf("%d events", n)
}

func escape(s string) string {
	return html.EscapeString(s)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
