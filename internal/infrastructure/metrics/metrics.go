package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Valuation metrics
	ValuationsComputed prometheus.Counter
	ValuationErrors    *prometheus.CounterVec
	ValuationDuration  prometheus.Histogram
	EntriesApplied     prometheus.Counter
	AssetsPerValuation prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		ValuationsComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "valuation_computations_total",
			Help: "Total number of valuations computed",
		}),
		ValuationErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "valuation_errors_total",
				Help: "Total number of failed valuations by error type",
			},
			[]string{"error_type"},
		),
		ValuationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "valuation_duration_seconds",
			Help:    "Duration of valuation computations",
			Buckets: prometheus.DefBuckets,
		}),
		EntriesApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "valuation_entries_applied_total",
			Help: "Total number of journal entries applied",
		}),
		AssetsPerValuation: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "valuation_assets_per_computation",
			Help:    "Number of assets in each computed valuation",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		}),

		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "valuation_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "valuation_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "valuation_redis_operations_total",
				Help: "Total number of Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "valuation_redis_errors_total",
				Help: "Total number of Redis errors",
			},
			[]string{"operation"},
		),

		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "valuation_rate_limit_hits_total",
				Help: "Total number of rate limited requests",
			},
			[]string{"path"},
		),
	}
}
