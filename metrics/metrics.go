package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "event_finder"

// Registry holds every metric exported on /metrics.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// UpstreamRequestsTotal counts calls to the event provider by outcome
// (ok, provider_error, http_<status>, transport).
var UpstreamRequestsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of event provider requests",
	},
	[]string{"outcome"},
)

// UpstreamRequestDuration records provider latency in seconds.
var UpstreamRequestDuration = promauto.With(Registry).NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Event provider request latency in seconds",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	},
)

// EventsCacheLookupsTotal counts events cache lookups by result (hit, miss, error).
var EventsCacheLookupsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_cache_lookups_total",
		Help:      "Total number of events cache lookups",
	},
	[]string{"result"},
)

// EventsReturned records how many events a successful search relayed.
var EventsReturned = promauto.With(Registry).NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "events_returned",
		Help:      "Number of events relayed per successful search",
		Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
	},
)
