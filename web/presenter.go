package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"event-finder/controller"
	"event-finder/finder"
)

//go:embed templates/page.html
var templates embed.FS

// Option is one entry of a filter select.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Card is an event card. Text fields come from finder.DisplayEvent, which is
// already escaped, so they are marked as trusted HTML here.
type Card struct {
	Title         template.HTML
	Description   template.HTML
	DateText      template.HTML
	Address       template.HTML
	VenueName     template.HTML
	VenueRating   string
	VenueReviews  string
	ThumbnailAttr template.HTMLAttr
	LinkAttr      template.HTMLAttr
	TicketAttr    template.HTMLAttr
}

// Page is the data behind the results page.
type Page struct {
	City         string
	SearchText   string
	Message      string
	Heading      template.HTML
	CountLabel   string
	Busy         bool
	ShowControls bool
	NoResults    bool
	Cards        []Card
	DateRanges   []Option
	Categories   []Option
	SortKeys     []Option
}

// Presenter renders controller snapshots as HTML.
type Presenter struct {
	tmpl *template.Template
}

func NewPresenter() (*Presenter, error) {
	tmpl, err := template.ParseFS(templates, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return &Presenter{tmpl: tmpl}, nil
}

// Render writes the page for snapshot to w.
func (p *Presenter) Render(w io.Writer, snapshot controller.Snapshot) error {
	if err := p.tmpl.Execute(w, NewPage(snapshot)); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

// NewPage builds the page data for snapshot.
func NewPage(snapshot controller.Snapshot) Page {
	loaded := snapshot.State == controller.StateDisplayed || snapshot.State == controller.StateEmpty
	page := Page{
		City:         snapshot.City,
		SearchText:   snapshot.Filter.SearchText,
		Message:      snapshot.Message,
		Heading:      template.HTML(snapshot.Heading()),
		CountLabel:   snapshot.CountLabel(),
		Busy:         snapshot.State == controller.StateLoading,
		ShowControls: loaded && snapshot.Total > 0,
		NoResults:    snapshot.State == controller.StateEmpty,
		DateRanges: options(string(snapshot.Filter.DateRange), []Option{
			{Value: string(finder.DateRangeAll), Label: "All Dates"},
			{Value: string(finder.DateRangeToday), Label: "Today"},
			{Value: string(finder.DateRangeThisWeek), Label: "This Week"},
			{Value: string(finder.DateRangeThisMonth), Label: "This Month"},
		}),
		Categories: options(string(snapshot.Filter.Category), []Option{
			{Value: string(finder.CategoryAll), Label: "All Types"},
			{Value: string(finder.CategoryVirtual), Label: "Virtual"},
			{Value: string(finder.CategoryInPerson), Label: "In Person"},
		}),
		SortKeys: options(string(snapshot.Filter.SortKey), []Option{
			{Value: string(finder.SortRelevance), Label: "Relevance"},
			{Value: string(finder.SortDate), Label: "Date"},
			{Value: string(finder.SortTitle), Label: "Title"},
		}),
	}
	if loaded {
		page.Cards = make([]Card, len(snapshot.Events))
		for i, event := range snapshot.Events {
			page.Cards[i] = NewCard(event)
		}
	}
	return page
}

// NewCard converts an escaped DisplayEvent into template values.
func NewCard(event finder.DisplayEvent) Card {
	card := Card{
		Title:        template.HTML(event.Title),
		Description:  template.HTML(event.Description),
		DateText:     template.HTML(event.DateText),
		Address:      template.HTML(event.Address),
		VenueName:    template.HTML(event.VenueName),
		VenueRating:  event.VenueRating,
		VenueReviews: event.VenueReviews,
		LinkAttr:     attr("href", safeURL(event.Link)),
		TicketAttr:   attr("href", safeURL(event.TicketLink)),
	}
	if thumbnail := safeURL(event.Thumbnail); thumbnail != "#" {
		card.ThumbnailAttr = attr("src", thumbnail)
	}
	return card
}

func options(selected string, opts []Option) []Option {
	for i := range opts {
		opts[i].Selected = opts[i].Value == selected
	}
	return opts
}

// safeURL keeps escaped http(s) URLs and replaces anything else, including
// javascript: URLs, with "#".
func safeURL(escaped string) string {
	lower := strings.ToLower(strings.TrimSpace(escaped))
	if strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") {
		return strings.TrimSpace(escaped)
	}
	return "#"
}

// attr builds name="value" from an already escaped value.
func attr(name, escapedValue string) template.HTMLAttr {
	return template.HTMLAttr(name + `="` + escapedValue + `"`)
}
