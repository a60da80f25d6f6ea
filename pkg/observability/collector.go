package observability

import (
	"net/http"
	"time"

	pkgerrors "cathedral-bridge/pkg/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the bridge
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Bridge metrics
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	DocumentBytes     *prometheus.HistogramVec
}

// NewCollector creates a collector with its own registry
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Exports, imports and validations by outcome",
			},
			[]string{"operation", "status", "code"},
		),
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of exports, imports and validations",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		DocumentBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "document_bytes",
				Help:      "Size of serialized documents",
				Buckets:   prometheus.ExponentialBuckets(256, 4, 10),
			},
			[]string{"operation"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.Operations,
		c.OperationDuration,
		c.DocumentBytes,
	)
	return c
}

// ObserveOperation implements ports.MetricsRecorder
func (c *Collector) ObserveOperation(operation string, duration time.Duration, bytes int, err error) {
	status, code := outcome(err)
	c.Operations.WithLabelValues(operation, status, code).Inc()
	c.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if bytes > 0 {
		c.DocumentBytes.WithLabelValues(operation).Observe(float64(bytes))
	}
}

// ObserveHTTP records one served request
func (c *Collector) ObserveHTTP(method, route string, status int, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, http.StatusText(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler exposes the registry in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// GetRegistry returns the Prometheus registry for this collector
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}

func outcome(err error) (status, code string) {
	if err == nil {
		return "success", "OK"
	}
	return "failure", pkgerrors.Code(err)
}
