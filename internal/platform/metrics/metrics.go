package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP metrics
var (
	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Ledger metrics
var (
	EntriesPosted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_entries_posted_total",
			Help: "Journal entries written, by kind.",
		},
		[]string{"kind"},
	)

	EntriesReversed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ledger_entries_reversed_total",
		Help: "Sale entries reversed.",
	})

	PostingFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_posting_failures_total",
			Help: "Failed posting or reversal attempts, by operation and reason.",
		},
		[]string{"operation", "reason"},
	)

	TaxAboveTopBracket = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ledger_tax_above_top_bracket_total",
		Help: "Tax computations where RBT12 exceeded the top bracket.",
	})

	buildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "build_info",
			Help: "Ledger build information.",
		},
		[]string{"version", "commit"},
	)
)

var registerOnce sync.Once

// Init registers every collector in the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpInFlight, httpRequestsTotal, httpRequestDuration,
			EntriesPosted, EntriesReversed, PostingFailures, TaxAboveTopBracket,
			buildInfo,
		)
	})
}

// SetBuildInfo sets build_info{version, commit} to 1.
func SetBuildInfo(version, commit string) {
	buildInfo.WithLabelValues(version, commit).Set(1)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// GinMiddleware measures request count, latency and in-flight requests.
// Routes are labelled with their pattern so path parameters do not explode cardinality.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		httpInFlight.Inc()
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		httpRequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		httpInFlight.Dec()
	}
}
