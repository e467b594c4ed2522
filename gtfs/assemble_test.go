package gtfs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/gtfs-departures/gtfs"
	"github.com/theoremus-urban-solutions/gtfs-departures/gtfs/gtfstest"
)

func TestAssembleFixture(t *testing.T) {
	feed := gtfstest.Feed(t)

	assert.Equal(t, gtfs.Counts{
		Agencies:      1,
		Stops:         4,
		Routes:        2,
		Trips:         3,
		StopTimes:     5,
		Calendars:     2,
		CalendarDates: 1,
		FeedInfos:     1,
	}, feed.Counts())

	s1 := feed.Stop("S1")
	require.NotNil(t, s1)
	assert.Equal(t, "Central", s1.Name)
	require.NotNil(t, s1.Code)
	assert.Equal(t, "C1", *s1.Code)
	require.NotNil(t, s1.PlatformCode)
	assert.Equal(t, "1", *s1.PlatformCode)
	assert.Equal(t, gtfs.WheelchairUnknown, s1.WheelchairBoarding)
	assert.Nil(t, feed.Stop("STN").Code)

	r1 := feed.Route("R1")
	require.NotNil(t, r1)
	assert.Equal(t, gtfs.RouteTypeBus, r1.Type)
	assert.Equal(t, "12", r1.Name())
	assert.Nil(t, r1.SortOrder)
	assert.Equal(t, gtfs.ContinuousImpossible, r1.ContinuousPickup)
	assert.Equal(t, "Airport Express", feed.Route("R2").Name())

	t1 := feed.Trip("T1")
	require.NotNil(t, t1)
	require.NotNil(t, t1.Direction)
	assert.Equal(t, gtfs.DirectionOutbound, *t1.Direction)
	assert.Nil(t, feed.Trip("T3").Direction)
	assert.Nil(t, feed.Trip("T2").Headsign)

	// Stop times keep row order.
	require.Len(t, feed.StopTimes, 5)
	assert.Equal(t, "T1", feed.StopTimes[0].Trip.ID)
	assert.Equal(t, "T2", feed.StopTimes[2].Trip.ID)
	assert.Equal(t, "01:30:00", feed.StopTimes[4].EffectiveTime().String())
	assert.Equal(t, gtfs.TimepointExact, feed.StopTimes[0].Timepoint)
	assert.Nil(t, feed.StopTimes[0].ShapeDistTravelled)

	arrivalOnly := feed.StopTimes[3]
	assert.Nil(t, arrivalOnly.DepartureTime)
	require.NotNil(t, arrivalOnly.ArrivalTime)
	assert.Equal(t, gtfs.NewTimeOfDay(8, 10, 0), arrivalOnly.EffectiveTime())

	require.Len(t, feed.CalendarDates, 1)
	assert.Same(t, feed.Calendar("WK"), feed.CalendarDates[0].Service)
	assert.Equal(t, gtfs.ServiceRemoved, feed.CalendarDates[0].ExceptionType)
}

func TestAssembleInfersSingleAgency(t *testing.T) {
	feed := gtfstest.Feed(t)
	r2 := feed.Route("R2")
	require.NotNil(t, r2)
	require.NotNil(t, r2.Agency)
	assert.Same(t, feed.Agencies[0], r2.Agency)
}

func TestAssembleReferencesResolveToFeedEntities(t *testing.T) {
	feed := gtfstest.Feed(t)

	for _, route := range feed.Routes {
		assert.Same(t, feed.Agency(route.Agency.ID), route.Agency, route.ID)
	}
	for _, trip := range feed.Trips {
		assert.Same(t, feed.Route(trip.Route.ID), trip.Route, trip.ID)
		assert.Same(t, feed.Calendar(trip.Service.ID), trip.Service, trip.ID)
	}
	for _, st := range feed.StopTimes {
		assert.Same(t, feed.Trip(st.Trip.ID), st.Trip)
		assert.Same(t, feed.Stop(st.Stop.ID), st.Stop)
	}
}

func TestAssembleSortsAndLooksUp(t *testing.T) {
	feed := gtfstest.Feed(t)

	ids := make([]string, 0, len(feed.Stops))
	for _, s := range feed.Stops {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"S1", "S2", "S3", "STN"}, ids)
	assert.IsIncreasing(t, ids)

	for _, s := range feed.Stops {
		assert.Same(t, s, feed.Stop(s.ID))
	}
	for _, tr := range feed.Trips {
		assert.Same(t, tr, feed.Trip(tr.ID))
	}
	assert.Nil(t, feed.Stop("nope"))
	assert.Nil(t, feed.Trip(""))
	assert.Nil(t, feed.Route("R3"))
}

func TestAssembleParentStations(t *testing.T) {
	feed := gtfstest.Feed(t)

	station := feed.Stop("STN")
	require.NotNil(t, station)
	assert.False(t, station.HasParent())
	assert.Nil(t, feed.ParentStation(station))
	assert.Equal(t, gtfs.LocationTypeStation, station.LocationType)

	for _, id := range []string{"S1", "S2"} {
		stop := feed.Stop(id)
		require.True(t, stop.HasParent(), id)
		assert.Same(t, station, feed.ParentStation(stop), id)
		assert.Same(t, station, feed.Stops[stop.ParentIndex], id)
	}
	assert.Nil(t, feed.ParentStation(feed.Stop("S3")))
	assert.Nil(t, feed.ParentStation(nil))
}

func TestAssembleEmptyFeed(t *testing.T) {
	feed, err := gtfs.Assemble(&gtfs.RawFeed{})
	require.NoError(t, err)
	assert.Equal(t, gtfs.Counts{}, feed.Counts())
	assert.Nil(t, feed.Info())
}

func TestAssembleErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(raw *gtfs.RawFeed)
		kind   error
		entity string
		field  string
		value  string
	}{
		{
			name: "route without agency among several agencies",
			mutate: func(raw *gtfs.RawFeed) {
				b := gtfs.NewAgencyRow()
				b.ID, b.Name, b.URL, b.Timezone = "B", "Regional", "https://regional.example", "UTC"
				raw.Agencies = append(raw.Agencies, b)
			},
			kind:   gtfs.ErrAmbiguousReference,
			entity: "route",
			field:  "agency_id",
		},
		{
			name: "agency without id among several agencies",
			mutate: func(raw *gtfs.RawFeed) {
				b := gtfs.NewAgencyRow()
				b.Name, b.URL, b.Timezone = "Regional", "https://regional.example", "UTC"
				raw.Agencies = append(raw.Agencies, b)
			},
			kind:   gtfs.ErrMissingRequiredField,
			entity: "agency",
			field:  "agency_id",
		},
		{
			name:   "agency without timezone",
			mutate: func(raw *gtfs.RawFeed) { raw.Agencies[0].Timezone = "" },
			kind:   gtfs.ErrMissingRequiredField,
			entity: "agency",
			field:  "agency_timezone",
		},
		{
			name:   "route with unknown agency",
			mutate: func(raw *gtfs.RawFeed) { raw.Routes[0].AgencyID = "Z" },
			kind:   gtfs.ErrReferenceNotFound,
			entity: "route",
			field:  "agency_id",
			value:  "Z",
		},
		{
			name:   "route without names",
			mutate: func(raw *gtfs.RawFeed) { raw.Routes[1].LongName = "" },
			kind:   gtfs.ErrMissingRequiredField,
			entity: "route",
			field:  "route_short_name",
		},
		{
			name:   "route without type",
			mutate: func(raw *gtfs.RawFeed) { raw.Routes[0].Type = gtfs.Unset },
			kind:   gtfs.ErrMissingRequiredField,
			entity: "route",
			field:  "route_type",
		},
		{
			name:   "extended route type",
			mutate: func(raw *gtfs.RawFeed) { raw.Routes[0].Type = 700 },
			kind:   gtfs.ErrUnknownEnumValue,
			field:  "route_type",
			value:  "700",
		},
		{
			name:   "stop with missing parent",
			mutate: func(raw *gtfs.RawFeed) { raw.Stops[1].ParentStation = "NOPE" },
			kind:   gtfs.ErrReferenceNotFound,
			entity: "stop",
			field:  "parent_station",
			value:  "NOPE",
		},
		{
			name: "parent that is itself a child",
			mutate: func(raw *gtfs.RawFeed) {
				raw.Stops = append(raw.Stops, gtfstest.Stop("BA1", "", "Boarding area", "S1"))
			},
			kind:   gtfs.ErrReferenceNotFound,
			entity: "stop",
			value:  "S1",
		},
		{
			name:   "stop with unknown location type",
			mutate: func(raw *gtfs.RawFeed) { raw.Stops[3].LocationType = 9 },
			kind:   gtfs.ErrUnknownEnumValue,
			entity: "stop",
			field:  "location_type",
		},
		{
			name:   "duplicate stop id",
			mutate: func(raw *gtfs.RawFeed) { raw.Stops = append(raw.Stops, gtfstest.Stop("S3", "", "Again", "")) },
			kind:   gtfs.ErrDuplicateID,
			entity: "stop",
			value:  "S3",
		},
		{
			name:   "duplicate trip id",
			mutate: func(raw *gtfs.RawFeed) { raw.Trips[1].ID = "T1" },
			kind:   gtfs.ErrDuplicateID,
			entity: "trip",
			value:  "T1",
		},
		{
			name:   "calendar day flag not given",
			mutate: func(raw *gtfs.RawFeed) { raw.Calendars[0].Sunday = gtfs.Unset },
			kind:   gtfs.ErrMissingRequiredField,
			entity: "calendar",
			field:  "sunday",
		},
		{
			name:   "calendar day flag out of range",
			mutate: func(raw *gtfs.RawFeed) { raw.Calendars[1].Monday = 2 },
			kind:   gtfs.ErrUnknownEnumValue,
			entity: "calendar",
			field:  "monday",
			value:  "2",
		},
		{
			name:   "calendar with malformed end date",
			mutate: func(raw *gtfs.RawFeed) { raw.Calendars[0].EndDate = "2026-12-31" },
			kind:   gtfs.ErrMalformedDate,
			entity: "calendar",
			field:  "end_date",
		},
		{
			name:   "trip with unknown route",
			mutate: func(raw *gtfs.RawFeed) { raw.Trips[0].RouteID = "R9" },
			kind:   gtfs.ErrReferenceNotFound,
			entity: "trip",
			field:  "route_id",
			value:  "R9",
		},
		{
			name:   "trip with unknown service",
			mutate: func(raw *gtfs.RawFeed) { raw.Trips[2].ServiceID = "HOLIDAY" },
			kind:   gtfs.ErrReferenceNotFound,
			entity: "trip",
			field:  "service_id",
			value:  "HOLIDAY",
		},
		{
			name:   "trip with bad direction",
			mutate: func(raw *gtfs.RawFeed) { raw.Trips[0].DirectionID = 2 },
			kind:   gtfs.ErrUnknownEnumValue,
			entity: "trip",
			field:  "direction_id",
		},
		{
			name: "stop time without any time",
			mutate: func(raw *gtfs.RawFeed) {
				raw.StopTimes[0].ArrivalTime = ""
				raw.StopTimes[0].DepartureTime = ""
			},
			kind:   gtfs.ErrMissingRequiredField,
			entity: "stop_time",
			field:  "arrival_time",
		},
		{
			name:   "stop time without sequence",
			mutate: func(raw *gtfs.RawFeed) { raw.StopTimes[1].StopSequence = gtfs.Unset },
			kind:   gtfs.ErrMissingRequiredField,
			entity: "stop_time",
			field:  "stop_sequence",
		},
		{
			name:   "stop time with unknown stop",
			mutate: func(raw *gtfs.RawFeed) { raw.StopTimes[4].StopID = "S9" },
			kind:   gtfs.ErrReferenceNotFound,
			entity: "stop_time",
			field:  "stop_id",
			value:  "S9",
		},
		{
			name:   "stop time with bad pickup type",
			mutate: func(raw *gtfs.RawFeed) { raw.StopTimes[0].PickupType = 7 },
			kind:   gtfs.ErrUnknownEnumValue,
			entity: "stop_time",
		},
		{
			name:   "calendar date with unknown service",
			mutate: func(raw *gtfs.RawFeed) { raw.CalendarDates[0].ServiceID = "X" },
			kind:   gtfs.ErrReferenceNotFound,
			entity: "calendar_date",
			field:  "service_id",
			value:  "X",
		},
		{
			name:   "calendar date with zero exception type",
			mutate: func(raw *gtfs.RawFeed) { raw.CalendarDates[0].ExceptionType = 0 },
			kind:   gtfs.ErrUnknownEnumValue,
			entity: "calendar_date",
			field:  "exception_type",
		},
		{
			name:   "calendar date with malformed date",
			mutate: func(raw *gtfs.RawFeed) { raw.CalendarDates[0].Date = "20240132" },
			kind:   gtfs.ErrMalformedDate,
			entity: "calendar_date",
			field:  "date",
		},
		{
			name:   "feed info without language",
			mutate: func(raw *gtfs.RawFeed) { raw.FeedInfos[0].Lang = "" },
			kind:   gtfs.ErrMissingRequiredField,
			entity: "feed_info",
			field:  "feed_lang",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := gtfstest.Raw()
			tt.mutate(raw)

			feed, err := gtfs.Assemble(raw)
			require.Error(t, err)
			assert.Nil(t, feed)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)

			var fe *gtfs.FeedError
			require.True(t, errors.As(err, &fe))
			if tt.entity != "" {
				assert.Equal(t, tt.entity, fe.Entity)
			}
			if tt.field != "" {
				assert.Equal(t, tt.field, fe.Field)
			}
			if tt.value != "" {
				assert.Equal(t, tt.value, fe.Value)
			}
		})
	}
}

func TestAmbiguousAgencyIsAlsoMissingField(t *testing.T) {
	raw := gtfstest.Raw()
	b := gtfs.NewAgencyRow()
	b.ID, b.Name, b.URL, b.Timezone = "B", "Regional", "https://regional.example", "UTC"
	raw.Agencies = append(raw.Agencies, b)

	_, err := gtfs.Assemble(raw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gtfs.ErrAmbiguousReference))
	assert.True(t, errors.Is(err, gtfs.ErrMissingRequiredField))
	assert.False(t, errors.Is(err, gtfs.ErrReferenceNotFound))
}

func TestAssembleReportsRow(t *testing.T) {
	raw := gtfstest.Raw()
	raw.StopTimes[3].StopID = "S9"

	_, err := gtfs.Assemble(raw)
	var fe *gtfs.FeedError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 4, fe.Row)
	assert.Contains(t, err.Error(), "stop_time row 4")
}

func TestAssembleIgnoresMalformedTimeWhenOtherIsGiven(t *testing.T) {
	raw := gtfstest.Raw()
	raw.StopTimes[0].ArrivalTime = "8h00"

	feed, err := gtfs.Assemble(raw)
	require.NoError(t, err)
	st := feed.StopTimes[0]
	assert.Nil(t, st.ArrivalTime)
	assert.Equal(t, gtfs.NewTimeOfDay(8, 0, 0), st.EffectiveTime())
}
