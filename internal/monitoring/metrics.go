package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method", "status_code"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status_code"},
	)
)

var (
	BidsAcceptedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auction_bids_accepted_total",
			Help: "Total number of accepted bids",
		},
	)

	BidsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auction_bids_rejected_total",
			Help: "Total number of rejected bids by reason",
		},
		[]string{"reason"},
	)

	ItemsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auction_items_created_total",
			Help: "Total number of items created",
		},
	)

	AuctionsStartedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auction_starts_total",
			Help: "Total number of auction start commands that succeeded",
		},
	)

	WebsocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_clients_connected",
			Help: "Number of currently connected websocket clients",
		},
	)
)

// GinMiddleware records request counts and latencies per route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		statusCode := strconv.Itoa(c.Writer.Status())

		HTTPRequestDuration.WithLabelValues(handler, c.Request.Method, statusCode).Observe(time.Since(start).Seconds())
		HTTPRequestsTotal.WithLabelValues(handler, c.Request.Method, statusCode).Inc()
	}
}
