package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/theoremus-urban-solutions/gtfs-departures/gtfs/gtfstest"
)

func TestObserveFeed(t *testing.T) {
	c := NewCollector()
	c.ObserveFeed(gtfstest.Feed(t), true, true, 250*time.Millisecond)

	assert.Equal(t, 4.0, testutil.ToFloat64(c.Entities.WithLabelValues("stop")))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.Entities.WithLabelValues("stop_time")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.FeedValid))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.FeedLoads.WithLabelValues("ok")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.AssemblyDuration))
}

func TestFeedValidGauge(t *testing.T) {
	feed := gtfstest.Feed(t)
	c := NewCollector()

	c.ObserveFeed(feed, false, true, 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.FeedValid))

	c.ObserveFeed(feed, false, false, 0)
	assert.Equal(t, -1.0, testutil.ToFloat64(c.FeedValid))
}

func TestObserveQueryAndErrors(t *testing.T) {
	c := NewCollector()
	c.ObserveQuery("name", 3, time.Millisecond)
	c.ObserveQuery("name", 0, time.Millisecond)
	c.ObserveQuery("template", 1, time.Millisecond)
	c.ObserveFeedError()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Queries.WithLabelValues("name")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Queries.WithLabelValues("template")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.FeedLoads.WithLabelValues("error")))
}

func TestCollectorsAreIndependent(t *testing.T) {
	a, b := NewCollector(), NewCollector()
	a.ObserveFeedError()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.FeedLoads.WithLabelValues("error")))
	assert.NotSame(t, a.Registry(), b.Registry())
}
