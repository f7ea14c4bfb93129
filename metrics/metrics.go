// Package metrics exports index build activity to Prometheus.
package metrics

import (
	"github.com/poiesic/pinyinsearch/dict"
	"github.com/poiesic/pinyinsearch/index"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pinyinsearch"

// Collector records registry and converter activity.
// It implements index.BuildMonitor; MissFunc feeds the converter.
type Collector struct {
	builds        *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	items         *prometheus.GaugeVec
	cacheHits     *prometheus.CounterVec
	cacheMisses   *prometheus.CounterVec
	snapshots     *prometheus.CounterVec
	cacheClears   prometheus.Counter
	lookupMisses  *prometheus.CounterVec
}

var _ index.BuildMonitor = (*Collector)(nil)

// NewCollector creates a collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "index",
			Name:      "builds_total",
			Help:      "Index builds by handle and result.",
		}, []string{"index", "result"}),
		buildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "index",
			Name:      "build_duration_seconds",
			Help:      "Time spent in InitIndex.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"index"}),
		items: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "index",
			Name:      "items",
			Help:      "Items held by each index after its last load.",
		}, []string{"index"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Indices restored from the cache store.",
		}, []string{"index"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Cached loads that had to build.",
		}, []string{"index"}),
		snapshots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "snapshots_total",
			Help:      "Index snapshots written to the cache store.",
		}, []string{"index"}),
		cacheClears: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "clears_total",
			Help:      "Times the cache store was emptied.",
		}),
		lookupMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dict",
			Name:      "lookup_misses_total",
			Help:      "Syllables a double pinyin layout could not encode.",
		}, []string{"scheme"}),
	}

	for _, collector := range []prometheus.Collector{
		c.builds, c.buildDuration, c.items, c.cacheHits,
		c.cacheMisses, c.snapshots, c.cacheClears, c.lookupMisses,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// BuildStarted implements index.BuildMonitor.
func (c *Collector) BuildStarted(string) {}

// BuildFinished implements index.BuildMonitor.
func (c *Collector) BuildFinished(report index.BuildReport) {
	result := "ok"
	if report.Err != nil {
		result = "error"
	}
	c.builds.WithLabelValues(report.ID, result).Inc()
	c.buildDuration.WithLabelValues(report.ID).Observe(report.Elapsed().Seconds())
	c.items.WithLabelValues(report.ID).Set(float64(report.Items))
}

// CacheHit implements index.BuildMonitor.
func (c *Collector) CacheHit(id string, items int) {
	c.cacheHits.WithLabelValues(id).Inc()
	c.items.WithLabelValues(id).Set(float64(items))
}

// CacheMiss implements index.BuildMonitor.
func (c *Collector) CacheMiss(id string) {
	c.cacheMisses.WithLabelValues(id).Inc()
}

// Snapshot implements index.BuildMonitor.
func (c *Collector) Snapshot(id string, _ int) {
	c.snapshots.WithLabelValues(id).Inc()
}

// CacheCleared implements index.BuildMonitor.
func (c *Collector) CacheCleared() {
	c.cacheClears.Inc()
}

// MissFunc returns a hook counting converter lookup misses per scheme.
func (c *Collector) MissFunc() dict.MissFunc {
	return func(scheme, _ string) {
		c.lookupMisses.WithLabelValues(scheme).Inc()
	}
}
