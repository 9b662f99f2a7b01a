package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"event-finder/client"
	"event-finder/finder"
	"event-finder/models"

	"github.com/rs/zerolog"
)

type State string

const (
	StateIdle      State = "idle"
	StateLoading   State = "loading"
	StateDisplayed State = "displayed"
	StateEmpty     State = "empty"
	StateError     State = "error"
)

const (
	MessageBlankCity   = "Please enter a city name"
	MessageInvalidKey  = "Invalid API key. Please check your configuration."
	MessageRateLimited = "API rate limit exceeded. Please try again later."
	MessageNetwork     = "Network error. Please check your internet connection."
	MessageUnknown     = "Unknown API error"

	fetchFailedPrefix = "Failed to fetch events: "
)

var (
	// ErrSuperseded is returned by Search when a newer search finished first
	// or is still running; the response was discarded.
	ErrSuperseded = errors.New("search superseded by a newer search")

	// ErrNoResults is returned by the Set methods before any search completed.
	ErrNoResults = errors.New("search for a city first")
)

// ValidationError rejects a search before any fetch is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Fetcher retrieves the raw event list for a trimmed city.
type Fetcher interface {
	FetchEvents(ctx context.Context, city string) ([]models.EventRecord, error)
}

// Snapshot is a copy of the controller state for presenters.
type Snapshot struct {
	State   State
	City    string
	Filter  finder.FilterState
	Events  []finder.DisplayEvent
	Total   int
	Message string
}

// Heading is the escaped "Events in {city}" title.
func (s Snapshot) Heading() string {
	return finder.ResultsHeading(s.City)
}

// CountLabel describes how many events are displayed.
func (s Snapshot) CountLabel() string {
	return finder.CountLabel(len(s.Events))
}

// SearchController owns the cached event list and the filter state, and
// recomputes the displayed view whenever either changes. It is safe for
// concurrent use; the lock is never held while fetching.
type SearchController struct {
	fetcher Fetcher
	engine  *finder.Engine
	logger  zerolog.Logger

	mu         sync.Mutex
	state      State
	city       string
	events     []models.EventRecord
	filter     finder.FilterState
	view       []finder.DisplayEvent
	message    string
	generation uint64
}

func NewSearchController(fetcher Fetcher, engine *finder.Engine, logger zerolog.Logger) *SearchController {
	return &SearchController{
		fetcher: fetcher,
		engine:  engine,
		logger:  logger.With().Str("component", "search_controller").Logger(),
		state:   StateIdle,
		filter:  finder.DefaultFilterState(),
	}
}

// Search fetches events for city and displays them. A blank city returns a
// *ValidationError without fetching. Fetch failures put the controller in
// StateError and are returned. If another search was started meanwhile, the
// response is dropped and ErrSuperseded returned.
func (c *SearchController) Search(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)

	c.mu.Lock()
	if city == "" {
		c.message = MessageBlankCity
		c.mu.Unlock()
		return &ValidationError{Message: MessageBlankCity}
	}
	c.generation++
	generation := c.generation
	c.state = StateLoading
	c.city = city
	c.events = nil
	c.view = nil
	c.message = ""
	c.mu.Unlock()

	c.logger.Debug().Str("city", city).Uint64("generation", generation).Msg("searching events")
	events, err := c.fetcher.FetchEvents(ctx, city)

	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		c.logger.Debug().Str("city", city).Uint64("generation", generation).Msg("discarding stale response")
		return ErrSuperseded
	}

	if err != nil {
		c.state = StateError
		c.message = FailureMessage(err)
		c.logger.Warn().Err(err).Str("city", city).Msg("event search failed")
		return err
	}

	c.events = events
	c.filter = finder.FilterState{
		DateRange: finder.DateRangeAll,
		Category:  finder.CategoryAll,
		SortKey:   c.filter.SortKey,
	}
	if len(events) == 0 {
		c.view = []finder.DisplayEvent{}
		c.state = StateEmpty
		return nil
	}
	c.recompute()
	return nil
}

// SetDateRange changes the date filter and recomputes the view.
func (c *SearchController) SetDateRange(dateRange finder.DateRange) error {
	return c.update(func(s *finder.FilterState) { s.DateRange = dateRange })
}

// SetCategory changes the category filter and recomputes the view.
func (c *SearchController) SetCategory(category finder.Category) error {
	return c.update(func(s *finder.FilterState) { s.Category = category })
}

// SetSearchText changes the text filter and recomputes the view.
func (c *SearchController) SetSearchText(text string) error {
	return c.update(func(s *finder.FilterState) { s.SearchText = text })
}

// SetSortKey changes the sort order and recomputes the view.
func (c *SearchController) SetSortKey(key finder.SortKey) error {
	return c.update(func(s *finder.FilterState) { s.SortKey = key })
}

// SetFilter replaces the whole filter state and recomputes the view.
func (c *SearchController) SetFilter(state finder.FilterState) error {
	return c.update(func(s *finder.FilterState) { *s = state })
}

func (c *SearchController) update(change func(*finder.FilterState)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDisplayed && c.state != StateEmpty {
		return ErrNoResults
	}
	next := c.filter
	change(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	c.filter = next
	c.recompute()
	return nil
}

// recompute rebuilds the view from the cached list. Callers hold mu.
func (c *SearchController) recompute() {
	c.view = c.engine.Apply(c.events, c.filter, c.engine.Dates().Now())
	if len(c.view) == 0 {
		c.state = StateEmpty
	} else {
		c.state = StateDisplayed
	}
}

// Snapshot returns a copy of the current state.
func (c *SearchController) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	events := make([]finder.DisplayEvent, len(c.view))
	copy(events, c.view)
	return Snapshot{
		State:   c.state,
		City:    c.city,
		Filter:  c.filter,
		Events:  events,
		Total:   len(c.events),
		Message: c.message,
	}
}

// Busy reports whether a search is in flight; presenters make the search
// control inert while it is.
func (c *SearchController) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateLoading
}

// FailureMessage turns a fetch error into the message shown to the user.
func FailureMessage(err error) string {
	return fetchFailedPrefix + failureReason(err)
}

func failureReason(err error) string {
	var statusErr *client.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusUnauthorized,
			statusErr.StatusCode == http.StatusForbidden,
			statusErr.Code == models.ErrorCodeConfig,
			statusErr.Code == models.ErrorCodeUpstreamUnauthorized:
			return MessageInvalidKey
		case statusErr.StatusCode == http.StatusTooManyRequests,
			statusErr.Code == models.ErrorCodeUpstreamRateLimited,
			statusErr.Code == models.ErrorCodeRateLimited:
			return MessageRateLimited
		default:
			return fmt.Sprintf("API request failed with status %d", statusErr.StatusCode)
		}
	}
	if errors.Is(err, client.ErrNetwork) {
		return MessageNetwork
	}
	var payloadErr *client.PayloadError
	if errors.As(err, &payloadErr) {
		if payloadErr.Message == "" {
			return MessageUnknown
		}
		return payloadErr.Message
	}
	return err.Error()
}
