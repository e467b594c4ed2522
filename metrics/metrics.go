package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/theoremus-urban-solutions/gtfs-departures/gtfs"
)

// Collector owns a private registry so tests can create as many as they like.
type Collector struct {
	reg *prometheus.Registry

	Entities *prometheus.GaugeVec // kind label: agency|stop|route|...
	FeedValid prometheus.Gauge    // 1 valid, 0 expired, -1 unknown

	Queries       *prometheus.CounterVec // kind label: name|code|template
	QueryResults  prometheus.Histogram
	QueryDuration prometheus.Histogram

	AssemblyDuration prometheus.Histogram
	FeedLoads        *prometheus.CounterVec // result label: ok|error
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gtfs_feed_entities",
			Help: "Number of entities in the loaded feed.",
		}, []string{"kind"}),
		FeedValid: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gtfs_feed_valid",
			Help: "1 if today is inside the feed validity window, 0 if not, -1 if unknown.",
		}),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gtfs_departure_queries_total",
			Help: "Departure queries served.",
		}, []string{"kind"}),
		QueryResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gtfs_departure_query_results",
			Help:    "Departures returned per query.",
			Buckets: prometheus.LinearBuckets(0, 5, 6),
		}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gtfs_departure_query_duration_seconds",
			Help:    "Duration of departure queries.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 15),
		}),
		AssemblyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gtfs_feed_assembly_duration_seconds",
			Help:    "Duration of loading and assembling a feed.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		FeedLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gtfs_feed_loads_total",
			Help: "Feed loads by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.Entities, c.FeedValid,
		c.Queries, c.QueryResults, c.QueryDuration,
		c.AssemblyDuration, c.FeedLoads,
	)
	return c
}

// ObserveFeed records entity counts and the validity of a freshly loaded feed.
func (c *Collector) ObserveFeed(feed *gtfs.Feed, valid, known bool, took time.Duration) {
	for kind, n := range feed.Counts().ByKind() {
		c.Entities.WithLabelValues(kind).Set(float64(n))
	}
	switch {
	case !known:
		c.FeedValid.Set(-1)
	case valid:
		c.FeedValid.Set(1)
	default:
		c.FeedValid.Set(0)
	}
	c.AssemblyDuration.Observe(took.Seconds())
	c.FeedLoads.WithLabelValues("ok").Inc()
}

func (c *Collector) ObserveFeedError() {
	c.FeedLoads.WithLabelValues("error").Inc()
}

func (c *Collector) ObserveQuery(kind string, results int, took time.Duration) {
	c.Queries.WithLabelValues(kind).Inc()
	c.QueryResults.Observe(float64(results))
	c.QueryDuration.Observe(took.Seconds())
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Registry exposes the private registry, for tests and extra collectors.
func (c *Collector) Registry() *prometheus.Registry { return c.reg }
