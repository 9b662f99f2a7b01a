package web

import (
	"bytes"
	"html/template"
	"testing"

	"event-finder/controller"
	"event-finder/finder"
	"event-finder/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, snapshot controller.Snapshot) string {
	t.Helper()
	presenter, err := NewPresenter()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, presenter.Render(&buf, snapshot))
	return buf.String()
}

func displayedSnapshot(events ...models.EventRecord) controller.Snapshot {
	return controller.Snapshot{
		State:  controller.StateDisplayed,
		City:   "Austin",
		Filter: finder.DefaultFilterState(),
		Events: finder.ToViews(events),
		Total:  len(events),
	}
}

func TestPresenter_RendersCards(t *testing.T) {
	html := render(t, displayedSnapshot(
		models.EventRecord{
			Title:      "Blues on the Green",
			Date:       &models.EventDate{StartDate: "Oct 19", When: "Today, 6 PM"},
			Address:    []string{"Zilker Park", "Austin, TX"},
			Venue:      &models.Venue{Name: "Zilker Park", Rating: 4.8, Reviews: 1200},
			Link:       "https://example.com/blues?a=1&b=2",
			TicketInfo: []models.TicketInfo{{Link: "https://tickets.example.com/blues", LinkType: "tickets"}},
			Thumbnail:  "https://img.example.com/blues.jpg",
		},
		models.EventRecord{},
	))

	assert.Contains(t, html, "Events in Austin")
	assert.Contains(t, html, "2 events")
	assert.Contains(t, html, "Blues on the Green")
	assert.Contains(t, html, "Today, 6 PM")
	assert.Contains(t, html, "Zilker Park, Austin, TX")
	assert.Contains(t, html, "4.8")
	assert.Contains(t, html, "(1200 reviews)")
	assert.Contains(t, html, `href="https://tickets.example.com/blues"`)
	assert.Contains(t, html, `href="https://example.com/blues?a=1&amp;b=2"`)
	assert.Contains(t, html, `src="https://img.example.com/blues.jpg"`)
	assert.Contains(t, html, "Untitled Event")
	assert.Contains(t, html, "Location TBA")
	assert.Contains(t, html, `<option value="all" selected>All Dates</option>`)
}

func TestPresenter_EscapesProviderMarkup(t *testing.T) {
	html := render(t, displayedSnapshot(models.EventRecord{
		Title:       "<script>alert('x')</script>",
		Description: `<img src=x onerror="alert(1)">`,
		Link:        "javascript:alert(1)",
		Thumbnail:   `https://img.example.com/a.jpg" onerror="alert(1)`,
	}))

	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;")
	assert.NotContains(t, html, `<img src=x`)
	assert.NotContains(t, html, "javascript:")
	assert.NotContains(t, html, `" onerror="alert(1)`)
	assert.Contains(t, html, `href="#"`)
}

func TestPresenter_ErrorAndEmptyStates(t *testing.T) {
	html := render(t, controller.Snapshot{
		State:   controller.StateError,
		City:    "Austin",
		Filter:  finder.DefaultFilterState(),
		Message: "Failed to fetch events: API rate limit exceeded. Please try again later.",
	})
	assert.Contains(t, html, "API rate limit exceeded")
	assert.NotContains(t, html, "No events found")
	assert.NotContains(t, html, `name="date_range"`)

	html = render(t, controller.Snapshot{
		State:  controller.StateEmpty,
		City:   "Nowhere",
		Filter: finder.DefaultFilterState(),
	})
	assert.Contains(t, html, "No events found")
	assert.NotContains(t, html, `name="date_range"`)
}

func TestPresenter_FilteredToNothingKeepsControls(t *testing.T) {
	html := render(t, controller.Snapshot{
		State:  controller.StateEmpty,
		City:   "Austin",
		Filter: finder.FilterState{DateRange: finder.DateRangeToday, Category: finder.CategoryVirtual, SearchText: "jazz", SortKey: finder.SortTitle},
		Events: []finder.DisplayEvent{},
		Total:  3,
	})

	assert.Contains(t, html, "No events found")
	assert.Contains(t, html, `<option value="today" selected>Today</option>`)
	assert.Contains(t, html, `<option value="virtual" selected>Virtual</option>`)
	assert.Contains(t, html, `<option value="title" selected>Title</option>`)
	assert.Contains(t, html, `value="jazz"`)
}

func TestPresenter_IdlePage(t *testing.T) {
	html := render(t, controller.Snapshot{State: controller.StateIdle, Filter: finder.DefaultFilterState()})

	assert.Contains(t, html, `name="city"`)
	assert.NotContains(t, html, `class="event-card"`)
	assert.NotContains(t, html, "No events found")
}

func TestNewCard(t *testing.T) {
	card := NewCard(finder.DisplayEvent{
		Title:      "A &amp; B",
		Link:       "HTTPS://example.com",
		TicketLink: "ftp://example.com",
	})

	assert.Equal(t, template.HTML("A &amp; B"), card.Title)
	assert.Equal(t, template.HTMLAttr(`href="HTTPS://example.com"`), card.LinkAttr)
	assert.Equal(t, template.HTMLAttr(`href="#"`), card.TicketAttr)
	assert.Empty(t, card.ThumbnailAttr)
}
