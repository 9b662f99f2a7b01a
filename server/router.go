package server

import (
	"net/http"

	"event-finder/config"
	"event-finder/metrics"
	"event-finder/server/middleware"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// EventRoutes serves the JSON API.
type EventRoutes interface {
	Health(w http.ResponseWriter, r *http.Request)
	GetEvents(w http.ResponseWriter, r *http.Request)
}

// PageRoutes serves the HTML results page.
type PageRoutes interface {
	Page(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	eventHandler EventRoutes
	pageHandler  PageRoutes
	router       *mux.Router
	cfg          config.Config
	logger       zerolog.Logger
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	eventHandler EventRoutes,
	pageHandler PageRoutes,
	router *mux.Router,
	cfg config.Config,
	logger zerolog.Logger) *Router {
	return &Router{
		eventHandler: eventHandler,
		pageHandler:  pageHandler,
		router:       router,
		cfg:          cfg,
		logger:       logger,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(
		middleware.RequestID(r.logger),
		middleware.RequestLogging(r.logger),
		metrics.HTTPMiddleware,
		middleware.CORS(r.cfg.CORS, r.logger),
	)

	// Both routes that reach the provider share one per-client budget.
	limit := middleware.RateLimit(r.cfg.RateLimit)

	r.router.HandleFunc("/api/health", r.eventHandler.Health).Methods(http.MethodGet, http.MethodOptions)

	// expects ?city={city(string)}
	r.router.Handle("/api/events", limit(http.HandlerFunc(r.eventHandler.GetEvents))).Methods(http.MethodGet, http.MethodOptions)

	// expects ?city=&date_range=&category=&q=&sort=, all optional
	r.router.Handle("/", limit(http.HandlerFunc(r.pageHandler.Page))).Methods(http.MethodGet)

	r.router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
}
