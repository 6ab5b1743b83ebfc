package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request-level instruments.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// CheckoutMetrics records domain-level instruments for the checkout flow.
//
// persistenceFailures exists so that "payment captured but no billing record
// written" is distinguishable in monitoring from ordinary validation noise.
type CheckoutMetrics struct {
	sessionsCreated     prometheus.Counter
	completions         *prometheus.CounterVec
	persistenceFailures prometheus.Counter
}

func NewHTTPMetrics() *HTTPMetrics {
	return newHTTPMetrics(prometheus.DefaultRegisterer)
}

func newHTTPMetrics(registerer prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	registerer.MustRegister(m.requests, m.duration)
	return m
}

func NewCheckoutMetrics() *CheckoutMetrics {
	return newCheckoutMetrics(prometheus.DefaultRegisterer)
}

func newCheckoutMetrics(registerer prometheus.Registerer) *CheckoutMetrics {
	m := &CheckoutMetrics{
		sessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "checkout_sessions_created_total",
			Help: "Hosted checkout sessions created.",
		}),
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checkout_completions_total",
			Help: "Checkout completion resolutions by result.",
		}, []string{"result"}),
		persistenceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "checkout_persistence_failures_total",
			Help: "Billing records that could not be persisted after capture.",
		}),
	}
	registerer.MustRegister(m.sessionsCreated, m.completions, m.persistenceFailures)
	return m
}

func (m *CheckoutMetrics) SessionCreated() {
	if m == nil {
		return
	}
	m.sessionsCreated.Inc()
}

func (m *CheckoutMetrics) CompletionResolved(result string) {
	if m == nil {
		return
	}
	result = strings.TrimSpace(result)
	if result == "" {
		result = "unknown"
	}
	m.completions.WithLabelValues(result).Inc()
}

func (m *CheckoutMetrics) PersistenceFailed() {
	if m == nil {
		return
	}
	m.persistenceFailures.Inc()
}

// GinMiddleware records per-request counters and latency.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		m.requests.WithLabelValues(route, method, status).Inc()
		m.duration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
