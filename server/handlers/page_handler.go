package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/url"

	"event-finder/client"
	"event-finder/controller"
	"event-finder/finder"
	"event-finder/models"
	"event-finder/server/middleware"
	services "event-finder/service"
	"event-finder/web"

	"github.com/rs/zerolog"
)

const (
	DATE_RANGE_QUERY_ARG = "date_range"
	CATEGORY_QUERY_ARG   = "category"
	SEARCH_QUERY_ARG     = "q"
	SORT_QUERY_ARG       = "sort"
)

// PageHandler serves the server-rendered results page. A plain search fetches
// through the event service and keeps the list in results; submitting the
// filter form re-filters that kept list.
type PageHandler struct {
	eventService EventSearcher
	results      services.EventsCache
	engine       *finder.Engine
	presenter    *web.Presenter
}

func NewPageHandler(eventService EventSearcher, results services.EventsCache, engine *finder.Engine, presenter *web.Presenter) *PageHandler {
	return &PageHandler{eventService: eventService, results: results, engine: engine, presenter: presenter}
}

// Page answers GET /?city=&date_range=&category=&q=&sort=.
func (h *PageHandler) Page(w http.ResponseWriter, r *http.Request) {
	logger := middleware.LoggerFromContext(r.Context())
	query := r.URL.Query()
	status := http.StatusOK

	fetcher := &resultsFetcher{
		fetcher: NewServiceFetcher(h.eventService),
		results: h.results,
		reuse:   isFilterChange(query),
		logger:  logger,
	}
	search := controller.NewSearchController(fetcher, h.engine, *logger)
	if query.Has(CITY_QUERY_ARG) {
		_ = search.Search(r.Context(), query.Get(CITY_QUERY_ARG))
	}

	var filterErr error
	if search.Snapshot().Total > 0 {
		filter, err := finder.ParseFilterState(
			query.Get(DATE_RANGE_QUERY_ARG),
			query.Get(CATEGORY_QUERY_ARG),
			query.Get(SEARCH_QUERY_ARG),
			query.Get(SORT_QUERY_ARG),
		)
		if err == nil {
			err = search.SetFilter(filter)
		}
		filterErr = err
	}

	snapshot := search.Snapshot()
	if filterErr != nil {
		status = http.StatusBadRequest
		snapshot.Message = filterErr.Error()
	}

	var buf bytes.Buffer
	if err := h.presenter.Render(&buf, snapshot); err != nil {
		logger.Error().Err(err).Msg("error rendering page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// isFilterChange reports whether the request came from the filter form rather
// than a new search.
func isFilterChange(query url.Values) bool {
	return query.Has(DATE_RANGE_QUERY_ARG) ||
		query.Has(CATEGORY_QUERY_ARG) ||
		query.Has(SEARCH_QUERY_ARG) ||
		query.Has(SORT_QUERY_ARG)
}

// resultsFetcher serves a filter change from the list kept for the city and
// falls back to a fetch when nothing is kept. Store failures are logged only.
type resultsFetcher struct {
	fetcher controller.Fetcher
	results services.EventsCache
	reuse   bool
	logger  *zerolog.Logger
}

func (f *resultsFetcher) FetchEvents(ctx context.Context, city string) ([]models.EventRecord, error) {
	if f.results == nil {
		return f.fetcher.FetchEvents(ctx, city)
	}
	if f.reuse {
		events, found, err := f.results.GetEvents(city)
		if err != nil {
			f.logger.Warn().Err(err).Str("city", city).Msg("error reading page results")
		} else if found {
			f.logger.Debug().Str("city", city).Int("count", len(events)).Msg("re-filtering kept results")
			return events, nil
		}
	}

	events, err := f.fetcher.FetchEvents(ctx, city)
	if err != nil {
		return nil, err
	}
	if err := f.results.SetEvents(city, events); err != nil {
		f.logger.Warn().Err(err).Str("city", city).Msg("error keeping page results")
	}
	return events, nil
}

// ServiceFetcher adapts the event service to controller.Fetcher. Service
// errors are reported the way the JSON API would report them.
type ServiceFetcher struct {
	eventService EventSearcher
}

func NewServiceFetcher(eventService EventSearcher) *ServiceFetcher {
	return &ServiceFetcher{eventService: eventService}
}

func (f *ServiceFetcher) FetchEvents(ctx context.Context, city string) ([]models.EventRecord, error) {
	response, err := f.eventService.SearchEvents(ctx, city)
	if err != nil {
		status, body := ErrorResponseFor(err)
		return nil, &client.StatusError{
			StatusCode: status,
			Message:    body.Error,
			Details:    body.Details,
			Code:       body.Code,
		}
	}
	return response.Events, nil
}
