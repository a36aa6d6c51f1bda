package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once     sync.Once
	registry *Registry
)

// Render sources.
const (
	SourceCLI       = "cli"
	SourceForm      = "form"
	SourceAPI       = "api"
	SourceWebSocket = "websocket"
)

// Registry holds all spagen metrics.
type Registry struct {
	// Render metrics
	RendersTotal      *prometheus.CounterVec
	RenderFailures    *prometheus.CounterVec
	RenderDuration    *prometheus.HistogramVec
	NetworkStatements prometheus.Histogram
	SecretsGenerated  prometheus.Counter

	// System metrics
	Uptime      prometheus.Gauge
	APIRequests *prometheus.CounterVec
	APILatency  *prometheus.HistogramVec
	WSClients   prometheus.Gauge
}

// Get returns the global metrics registry, creating it if necessary.
func Get() *Registry {
	once.Do(func() {
		registry = newRegistry()
	})
	return registry
}

func newRegistry() *Registry {
	r := &Registry{}

	// Render metrics
	r.RendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spagen_renders_total",
		Help: "Total configurations rendered",
	}, []string{"source"})

	r.RenderFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spagen_render_failures_total",
		Help: "Render requests rejected before rendering",
	}, []string{"source", "reason"})

	r.RenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "spagen_render_duration_seconds",
		Help:    "Time spent validating and rendering",
		Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
	}, []string{"source"})

	r.NetworkStatements = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "spagen_bgp_network_statements",
		Help:    "BGP network statements per rendered configuration",
		Buckets: prometheus.LinearBuckets(1, 4, 8),
	})

	r.SecretsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spagen_secrets_generated_total",
		Help: "Total preshared keys generated",
	})

	// System metrics
	r.Uptime = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "spagen_uptime_seconds",
		Help: "Server uptime in seconds",
	})

	r.APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spagen_api_requests_total",
		Help: "Total API requests",
	}, []string{"method", "path", "status"})

	r.APILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "spagen_api_request_duration_seconds",
		Help:    "API request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	r.WSClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "spagen_websocket_clients",
		Help: "Connected live preview clients",
	})

	return r
}

// RecordRender records a successful render.
func (r *Registry) RecordRender(source string, statements int, seconds float64) {
	r.RendersTotal.WithLabelValues(source).Inc()
	r.RenderDuration.WithLabelValues(source).Observe(seconds)
	r.NetworkStatements.Observe(float64(statements))
}

// RecordRenderFailure records a rejected render request.
func (r *Registry) RecordRenderFailure(source, reason string) {
	r.RenderFailures.WithLabelValues(source, reason).Inc()
}

// RecordAPIRequest records an API request.
func (r *Registry) RecordAPIRequest(method, path string, status int, duration float64) {
	r.APIRequests.WithLabelValues(method, path, statusString(status)).Inc()
	r.APILatency.WithLabelValues(method, path).Observe(duration)
}

// statusString converts an HTTP status code to string.
func statusString(status int) string {
	return fmt.Sprintf("%d", status)
}
