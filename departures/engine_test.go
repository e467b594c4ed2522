package departures_test

import (
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/gtfs-departures/departures"
	"github.com/theoremus-urban-solutions/gtfs-departures/gtfs"
	"github.com/theoremus-urban-solutions/gtfs-departures/gtfs/gtfstest"
)

// 2024-01-15 is a Monday, 2024-01-20 a Saturday.
func at(y int, m time.Month, d, hh, mm, ss int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, hh, mm, ss, 0, time.UTC) }
}

func tripIDs(services []departures.UpcomingService) []string {
	ids := make([]string, 0, len(services))
	for _, s := range services {
		ids = append(ids, s.Trip.ID)
	}
	return ids
}

func TestUpcomingServicesForStopName(t *testing.T) {
	engine := departures.NewEngine(gtfstest.Feed(t), departures.WithClock(at(2024, time.January, 15, 7, 0, 0)))

	got := engine.UpcomingServicesForStopName("Central")
	require.Len(t, got, 2)

	assert.Equal(t, "T2", got[0].Trip.ID)
	assert.Equal(t, "R1", got[0].Route.ID)
	assert.Equal(t, "S1", got[0].Stop.ID)
	assert.Equal(t, "Downtown Loop", got[0].Direction)
	assert.Equal(t, time.Date(2024, time.January, 15, 7, 45, 0, 0, time.UTC), got[0].Departure)

	assert.Equal(t, "T1", got[1].Trip.ID)
	assert.Equal(t, "Harbour", got[1].Direction)
	assert.Equal(t, time.Date(2024, time.January, 15, 8, 0, 0, 0, time.UTC), got[1].Departure)
}

func TestStopNameIgnoresCase(t *testing.T) {
	engine := departures.NewEngine(gtfstest.Feed(t), departures.WithClock(at(2024, time.January, 15, 7, 0, 0)))
	assert.Equal(t, []string{"T2", "T1"}, tripIDs(engine.UpcomingServicesForStopName("cEnTrAl")))
	assert.Empty(t, engine.UpcomingServicesForStopName("Centra"))
}

func TestEqualTimesKeepRowOrder(t *testing.T) {
	engine := departures.NewEngine(gtfstest.Feed(t), departures.WithClock(at(2024, time.January, 15, 7, 0, 0)))

	got := engine.UpcomingServicesForStopName("Market Square")
	assert.Equal(t, []string{"T1", "T2"}, tripIDs(got))
	for _, s := range got {
		assert.Equal(t, time.Date(2024, time.January, 15, 8, 10, 0, 0, time.UTC), s.Departure)
	}
}

func TestResultsAreOrderedByTime(t *testing.T) {
	raw := gtfstest.Raw()
	raw.Trips = append(raw.Trips, gtfstest.Trip("R1", "WK", "T4", "Harbour"))
	// Listed out of time order on purpose.
	raw.StopTimes = append(raw.StopTimes,
		gtfstest.StopTime("T4", "S3", 1, "07:55:00", "07:55:00"),
	)
	feed, err := gtfs.Assemble(raw)
	require.NoError(t, err)

	engine := departures.NewEngine(feed, departures.WithClock(at(2024, time.January, 15, 7, 0, 0)))
	got := engine.UpcomingServicesForStopName("Market Square")
	assert.Equal(t, []string{"T4", "T1", "T2"}, tripIDs(got))
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Departure.Before(got[i-1].Departure))
	}
}

func TestUpcomingServicesGracePeriod(t *testing.T) {
	feed := gtfstest.Feed(t)

	engine := departures.NewEngine(feed, departures.WithClock(at(2024, time.January, 15, 8, 0, 30)))
	assert.Equal(t, []string{"T1"}, tripIDs(engine.UpcomingServicesForStopName("Central")))

	engine = departures.NewEngine(feed, departures.WithClock(at(2024, time.January, 15, 8, 1, 1)))
	assert.Empty(t, engine.UpcomingServicesForStopName("Central"))

	engine = departures.NewEngine(feed,
		departures.WithClock(at(2024, time.January, 15, 8, 4, 0)),
		departures.WithGracePeriod(5*time.Minute),
	)
	assert.Equal(t, []string{"T1"}, tripIDs(engine.UpcomingServicesForStopName("Central")))

	engine = departures.NewEngine(feed,
		departures.WithClock(at(2024, time.January, 15, 7, 45, 1)),
		departures.WithGracePeriod(0),
	)
	assert.Equal(t, []string{"T1"}, tripIDs(engine.UpcomingServicesForStopName("Central")))
}

func TestCutoffDoesNotWrapPastMidnight(t *testing.T) {
	engine := departures.NewEngine(gtfstest.Feed(t), departures.WithClock(at(2024, time.January, 20, 0, 0, 30)))

	got := engine.UpcomingServicesForStopName("Central")
	require.Len(t, got, 1)
	assert.Equal(t, "T3", got[0].Trip.ID)
	assert.Equal(t, "Terminal", got[0].Direction)
	// 25:30:00 is folded onto the query day.
	assert.Equal(t, time.Date(2024, time.January, 20, 1, 30, 0, 0, time.UTC), got[0].Departure)
}

func TestWeekdayFiltering(t *testing.T) {
	engine := departures.NewEngine(gtfstest.Feed(t), departures.WithClock(at(2024, time.January, 20, 7, 0, 0)))
	assert.Empty(t, engine.UpcomingServicesForStopName("Market Square"))
}

func TestServiceDates(t *testing.T) {
	feed := gtfstest.Feed(t)
	monday := at(2024, time.January, 1, 7, 0, 0)

	plain := departures.NewEngine(feed, departures.WithClock(monday))
	assert.Len(t, plain.UpcomingServicesForStopName("Central"), 2)

	strict := departures.NewEngine(feed, departures.WithClock(monday), departures.WithServiceDates(true))
	assert.Empty(t, strict.UpcomingServicesForStopName("Central"))

	strict = departures.NewEngine(feed, departures.WithClock(at(2024, time.January, 15, 7, 0, 0)), departures.WithServiceDates(true))
	assert.Len(t, strict.UpcomingServicesForStopName("Central"), 2)
}

func TestUpcomingServicesLimit(t *testing.T) {
	raw := gtfstest.Raw()
	for i := 0; i < 30; i++ {
		id := fmt.Sprintf("X%02d", i)
		raw.Trips = append(raw.Trips, gtfstest.Trip("R1", "WK", id, "Harbour"))
		tm := fmt.Sprintf("09:%02d:00", 59-i)
		raw.StopTimes = append(raw.StopTimes, gtfstest.StopTime(id, "S3", 1, tm, tm))
	}
	feed, err := gtfs.Assemble(raw)
	require.NoError(t, err)
	clock := departures.WithClock(at(2024, time.January, 15, 7, 0, 0))

	got := departures.NewEngine(feed, clock).UpcomingServicesForStopName("Market Square")
	require.Len(t, got, departures.DefaultLimit)
	assert.Equal(t, []string{"T1", "T2"}, tripIDs(got[:2]))
	assert.Equal(t, "X29", got[2].Trip.ID)
	assert.Equal(t, time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC), got[2].Departure)

	got = departures.NewEngine(feed, clock, departures.WithLimit(5)).UpcomingServicesForStopName("Market Square")
	assert.Len(t, got, 5)

	got = departures.NewEngine(feed, clock, departures.WithLimit(0)).UpcomingServicesForStopName("Market Square")
	assert.Len(t, got, departures.DefaultLimit)
}

func TestUpcomingServicesForStopCode(t *testing.T) {
	engine := departures.NewEngine(gtfstest.Feed(t), departures.WithClock(at(2024, time.January, 15, 7, 0, 0)))

	assert.Equal(t, []string{"T2", "T1"}, tripIDs(engine.UpcomingServicesForStopCode("c1")))
	assert.Empty(t, engine.UpcomingServicesForStopCode("C2"))
	assert.Equal(t, []string{"T1", "T2"}, tripIDs(engine.UpcomingServicesForStopCode("M3")))
	assert.Empty(t, engine.UpcomingServicesForStopCode("ZZ"))
}

func TestUpcomingServicesForStopTemplate(t *testing.T) {
	saturday := departures.NewEngine(gtfstest.Feed(t), departures.WithClock(at(2024, time.January, 20, 0, 0, 0)))

	got := saturday.UpcomingServicesForStopTemplate(departures.StopTemplate{Name: "central", Code: "c2"})
	assert.Equal(t, []string{"T3"}, tripIDs(got))
	assert.Empty(t, saturday.UpcomingServicesForStopTemplate(departures.StopTemplate{Name: "Central", Code: "C1"}))
	assert.Empty(t, saturday.UpcomingServicesForStopTemplate(departures.StopTemplate{Name: "Market Square", Code: "C2"}))

	monday := departures.NewEngine(gtfstest.Feed(t), departures.WithClock(at(2024, time.January, 15, 7, 0, 0)))
	assert.Equal(t, []string{"T2", "T1"}, tripIDs(monday.UpcomingServicesForStopTemplate(departures.StopTemplate{Name: "Central"})))
}

func TestEmptyQueriesReturnEmptySlices(t *testing.T) {
	engine := departures.NewEngine(gtfstest.Feed(t), departures.WithClock(at(2024, time.January, 15, 7, 0, 0)))

	for _, got := range [][]departures.UpcomingService{
		engine.UpcomingServicesForStopName(""),
		engine.UpcomingServicesForStopCode(""),
		engine.UpcomingServicesForStopTemplate(departures.StopTemplate{}),
		engine.UpcomingServicesForStopTemplate(departures.StopTemplate{Code: "C1"}),
		engine.UpcomingServicesForStopName("Nowhere"),
	} {
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestEngineLocation(t *testing.T) {
	sofia, err := time.LoadLocation("Europe/Sofia")
	require.NoError(t, err)

	// 05:30 UTC is 07:30 in Sofia in January.
	engine := departures.NewEngine(gtfstest.Feed(t),
		departures.WithClock(at(2024, time.January, 15, 5, 30, 0)),
		departures.WithLocation(sofia),
	)
	assert.Equal(t, sofia, engine.Location())

	got := engine.UpcomingServicesForStopName("Central")
	require.Equal(t, []string{"T2", "T1"}, tripIDs(got))
	assert.True(t, got[0].Departure.Equal(time.Date(2024, time.January, 15, 7, 45, 0, 0, sofia)))
	assert.Equal(t, sofia, got[0].Departure.Location())

	defaulted := departures.NewEngine(gtfstest.Feed(t), departures.WithLocation(nil))
	assert.Equal(t, time.UTC, defaulted.Location())
}

func TestIsFeedCurrentlyValid(t *testing.T) {
	feed := gtfstest.Feed(t)

	valid, known := departures.NewEngine(feed, departures.WithClock(at(2025, time.March, 3, 12, 0, 0))).IsFeedCurrentlyValid()
	assert.True(t, known)
	assert.True(t, valid)

	valid, known = departures.NewEngine(feed, departures.WithClock(at(2027, time.March, 3, 12, 0, 0))).IsFeedCurrentlyValid()
	assert.True(t, known)
	assert.False(t, valid)

	raw := gtfstest.Raw()
	raw.FeedInfos = nil
	noInfo, err := gtfs.Assemble(raw)
	require.NoError(t, err)
	_, known = departures.NewEngine(noInfo).IsFeedCurrentlyValid()
	assert.False(t, known)
}

func TestEngineDoesNotModifyFeed(t *testing.T) {
	feed := gtfstest.Feed(t)
	before := feed.Counts()
	first := feed.StopTimes[0]

	engine := departures.NewEngine(feed, departures.WithClock(at(2024, time.January, 15, 7, 0, 0)))
	engine.UpcomingServicesForStopName("Central")
	engine.UpcomingServicesForStopName("Market Square")

	assert.Same(t, feed, engine.Feed())
	assert.Equal(t, before, feed.Counts())
	assert.Same(t, first, feed.StopTimes[0])
}
