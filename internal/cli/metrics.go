package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/casegraph/pkg/observability"
)

// promMetrics implements the observability hooks on Prometheus collectors.
type promMetrics struct {
	updates        prometheus.Counter
	updateDuration prometheus.Histogram
	renderedNodes  prometheus.Gauge
	renderedLinks  prometheus.Gauge
	markers        prometheus.Gauge
	unresolved     prometheus.Counter

	cacheOps   *prometheus.CounterVec
	cacheBytes prometheus.Counter

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func newPromMetrics(reg prometheus.Registerer) *promMetrics {
	m := &promMetrics{
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: appName, Name: "chart_updates_total",
			Help: "Timeline update passes.",
		}),
		updateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: appName, Name: "chart_update_duration_seconds",
			Help:    "Time spent in one timeline update pass.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		renderedNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: appName, Name: "chart_nodes",
			Help: "Nodes drawn by the latest update.",
		}),
		renderedLinks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: appName, Name: "chart_links",
			Help: "Links drawn by the latest update.",
		}),
		markers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: appName, Name: "chart_markers",
			Help: "Arrowhead markers after the latest update.",
		}),
		unresolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: appName, Name: "chart_unresolved_links_total",
			Help: "Links drawn with at least one fallback endpoint.",
		}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: appName, Name: "cache_operations_total",
			Help: "Cache lookups and writes by result.",
		}, []string{"op", "key_type"}),
		cacheBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: appName, Name: "cache_written_bytes_total",
			Help: "Bytes written to the cache.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: appName, Name: "http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: appName, Name: "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		m.updates, m.updateDuration, m.renderedNodes, m.renderedLinks, m.markers, m.unresolved,
		m.cacheOps, m.cacheBytes, m.requests, m.requestDuration,
	)
	return m
}

// install registers m as the process-wide hooks.
func (m *promMetrics) install() {
	observability.SetChartHooks(m)
	observability.SetCacheHooks(m)
	observability.SetServerHooks(m)
}

func (m *promMetrics) OnUpdateStart(nodes, links int) {}

func (m *promMetrics) OnUpdateComplete(stats observability.UpdateStats, d time.Duration) {
	m.updates.Inc()
	m.updateDuration.Observe(d.Seconds())
	m.renderedNodes.Set(float64(stats.Nodes))
	m.renderedLinks.Set(float64(stats.Links))
	m.markers.Set(float64(stats.Markers))
}

func (m *promMetrics) OnUnresolvedLink(source, target string) { m.unresolved.Inc() }

func (m *promMetrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues("hit", keyType).Inc()
}

func (m *promMetrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues("miss", keyType).Inc()
}

func (m *promMetrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheOps.WithLabelValues("set", keyType).Inc()
	m.cacheBytes.Add(float64(size))
}

func (m *promMetrics) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.ChartHooks  = (*promMetrics)(nil)
	_ observability.CacheHooks  = (*promMetrics)(nil)
	_ observability.ServerHooks = (*promMetrics)(nil)
)
