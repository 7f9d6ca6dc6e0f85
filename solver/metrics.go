// SPDX-License-Identifier: MIT

package solver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "flowroute"

// Metrics holds the Prometheus collectors fed by a Solver.
type Metrics struct {
	// Demands counts finished demands.
	// Labels: status (routed, unroutable), reason (none, no_path, ...)
	Demands *prometheus.CounterVec

	// SearchDuration measures one path search.
	SearchDuration prometheus.Histogram

	// CacheHits and CacheMisses count path cache lookups.
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// CacheEntries is the number of cached node pairs after the last commit.
	CacheEntries prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered but usable. Registering twice on the same
// registry panics, as promauto does.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Demands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "demands_total",
			Help:      "Demands processed by final status and reason",
		}, []string{"status", "reason"}),
		SearchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "search_duration_seconds",
			Help:      "Path search duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}),
		CacheHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "path_cache_hits_total",
			Help:      "Path cache lookups that found an entry",
		}),
		CacheMisses: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "path_cache_misses_total",
			Help:      "Path cache lookups that found nothing",
		}),
		CacheEntries: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "path_cache_entries",
			Help:      "Node pairs held by the path cache",
		}),
	}
}

func (m *Metrics) observeOutcome(o Outcome) {
	if m == nil {
		return
	}
	m.Demands.WithLabelValues(o.Status.String(), o.Reason.String()).Inc()
}

func (m *Metrics) observeSearch(seconds float64) {
	if m == nil {
		return
	}
	m.SearchDuration.Observe(seconds)
}

// observeCache adds the lookups made since prev.
func (m *Metrics) observeCache(prev, now cacheSnapshot) {
	if m == nil {
		return
	}
	m.CacheHits.Add(float64(now.Hits - prev.Hits))
	m.CacheMisses.Add(float64(now.Misses - prev.Misses))
	m.CacheEntries.Set(float64(now.Entries))
}

type cacheSnapshot struct {
	Hits, Misses, Entries int
}
