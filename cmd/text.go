package cmd

import (
	"fmt"
	"html"
	"io"

	"event-finder/controller"
	"event-finder/finder"
)

const noResultsText = "No events found. Try another city or loosen the filters."

// printSnapshot is the terminal presenter. Display fields arrive HTML-escaped
// and are unescaped for plain text.
func printSnapshot(w io.Writer, s controller.Snapshot) {
	if s.Message != "" {
		fmt.Fprintln(w, s.Message)
	}
	switch s.State {
	case controller.StateDisplayed, controller.StateEmpty:
		fmt.Fprintf(w, "%s (%s)\n", html.UnescapeString(s.Heading()), s.CountLabel())
		if s.State == controller.StateEmpty {
			fmt.Fprintln(w, noResultsText)
			return
		}
		for i, event := range s.Events {
			fmt.Fprintln(w)
			printEvent(w, i+1, event)
		}
	}
}

func printEvent(w io.Writer, n int, e finder.DisplayEvent) {
	fmt.Fprintf(w, "%d. %s\n", n, html.UnescapeString(e.Title))
	fmt.Fprintf(w, "   When:    %s\n", html.UnescapeString(e.DateText))
	fmt.Fprintf(w, "   Where:   %s\n", html.UnescapeString(e.Address))
	if e.VenueName != "" {
		venue := html.UnescapeString(e.VenueName)
		if e.VenueRating != "" {
			venue += " (" + e.VenueRating
			if e.VenueReviews != "" {
				venue += ", " + e.VenueReviews + " reviews"
			}
			venue += ")"
		}
		fmt.Fprintf(w, "   Venue:   %s\n", venue)
	}
	fmt.Fprintf(w, "   Details: %s\n", html.UnescapeString(e.Link))
	fmt.Fprintf(w, "   Tickets: %s\n", html.UnescapeString(e.TicketLink))
}

// filterFlags are the filter options shared by search and chart.
type filterFlags struct {
	dateRange  string
	category   string
	searchText string
	sortKey    string
}

func (f filterFlags) parse() (finder.FilterState, error) {
	return finder.ParseFilterState(f.dateRange, f.category, f.searchText, f.sortKey)
}
