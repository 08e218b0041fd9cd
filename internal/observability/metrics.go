package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentalhealth_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// StoreOperationLatency records document store latency by backend, operation and collection.
	StoreOperationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mentalhealth_store_operation_latency_seconds",
		Help:    "Document store operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "operation", "collection"})

	// StoreErrors counts failed document store operations.
	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentalhealth_store_errors_total",
		Help: "Total number of failed document store operations",
	}, []string{"backend", "operation", "collection"})

	// DegradedReads counts fetches that fell back to an empty default after a store failure.
	DegradedReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentalhealth_degraded_reads_total",
		Help: "Total number of reads answered with a default value after a failure",
	}, []string{"operation"})

	// FeedCacheLookups counts feed cache hits, misses and stale writes that were skipped.
	FeedCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentalhealth_feed_cache_lookups_total",
		Help: "Feed cache lookups by result",
	}, []string{"result"})

	// RewardsGranted counts XP grants and badge awards made by the rewards engine.
	RewardsGranted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mentalhealth_rewards_granted_total",
		Help: "Rewards granted by kind",
	}, []string{"kind"})
)

// StoreMetrics records latency and failures for one store backend.
type StoreMetrics struct {
	backend string
}

// NewStoreMetrics returns a new StoreMetrics instance.
func NewStoreMetrics(backend string) *StoreMetrics {
	return &StoreMetrics{backend: backend}
}

// ObserveOperation records the latency of a store operation and counts it as failed when err is set.
func (m *StoreMetrics) ObserveOperation(operation, collection string, start time.Time, err error) {
	StoreOperationLatency.WithLabelValues(m.backend, operation, collection).Observe(time.Since(start).Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(m.backend, operation, collection).Inc()
	}
}

// TrackOperation returns a function that records the operation when called (e.g. defer).
func (m *StoreMetrics) TrackOperation(operation, collection string) func(err error) {
	start := time.Now()
	return func(err error) {
		m.ObserveOperation(operation, collection, start, err)
	}
}
