package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "orders_api",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "orders_api",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	ordersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "orders_api",
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Orders created.",
		},
	)

	ordersDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "orders_api",
			Subsystem: "orders",
			Name:      "deleted_total",
			Help:      "Orders deleted.",
		},
	)

	orderNumberRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "orders_api",
			Subsystem: "orders",
			Name:      "number_retries_total",
			Help:      "Order creations retried after an order number collision.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		ordersCreated,
		ordersDeleted,
		orderNumberRetries,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func OrderCreated() {
	ordersCreated.Inc()
}

func OrderDeleted() {
	ordersDeleted.Inc()
}

func OrderNumberRetry() {
	orderNumberRetries.Inc()
}
