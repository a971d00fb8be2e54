package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/navbryce/yatube/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const namespace = "yatube"

// Registry is the application's metric registry, exported at /metrics
var Registry = prometheus.NewRegistry()

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	PageCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "page_cache",
			Name:      "lookups_total",
			Help:      "Page cache lookups by result (hit|miss)",
		},
		[]string{"result"},
	)

	PostsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_created_total",
			Help:      "Posts created through the create form",
		},
	)
)

func init() {
	Registry.MustRegister(
		HTTPRequests,
		HTTPRequestDuration,
		PageCacheLookups,
		PostsCreated,
		collectors.NewGoCollector(),
	)
}

// Middleware records request counts and latencies keyed by the matched route pattern
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(
		Registry,
		promhttp.HandlerOpts{
			ErrorLog:      &errorLogger{logging.NewPackageLogger("metrics")},
			ErrorHandling: promhttp.ContinueOnError,
		},
	)
}

type errorLogger struct {
	zerolog.Logger
}

// Println implements promhttp.Logger
func (l *errorLogger) Println(v ...interface{}) {
	l.Error().Msg(fmt.Sprint(v...))
}
