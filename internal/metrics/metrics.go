package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResourceList   = "list"
	ResourceDetail = "detail"
	ResourceImage  = "image"
)

// Metrics records cache and remote fetch activity. A nil *Metrics is a no-op.
type Metrics struct {
	registry      *prometheus.Registry
	cacheLookups  *prometheus.CounterVec
	remoteFetches *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	persistFail   *prometheus.CounterVec
	listItems     prometheus.Gauge
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_lookups_total",
		Help: "Cache freshness checks by resource and result",
	}, []string{"resource", "result"})

	remoteFetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_remote_fetches_total",
		Help: "Remote API calls by resource and result",
	}, []string{"resource", "result"})

	fetchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_remote_fetch_duration_seconds",
		Help:    "Remote API call latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource"})

	persistFail := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_persist_failures_total",
		Help: "Snapshot writes that failed",
	}, []string{"key"})

	listItems := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_list_items",
		Help: "Entities in the accumulated list",
	})

	registry.MustRegister(cacheLookups, remoteFetches, fetchDuration, persistFail, listItems)

	return &Metrics{
		registry:      registry,
		cacheLookups:  cacheLookups,
		remoteFetches: remoteFetches,
		fetchDuration: fetchDuration,
		persistFail:   persistFail,
		listItems:     listItems,
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveCacheLookup(resource string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(resource, result).Inc()
}

func (m *Metrics) ObserveFetch(resource string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "failed"
	}
	m.remoteFetches.WithLabelValues(resource, result).Inc()
	m.fetchDuration.WithLabelValues(resource).Observe(duration.Seconds())
}

func (m *Metrics) RecordPersistFailure(key string) {
	if m == nil {
		return
	}
	m.persistFail.WithLabelValues(key).Inc()
}

func (m *Metrics) SetListSize(n int) {
	if m == nil {
		return
	}
	m.listItems.Set(float64(n))
}
