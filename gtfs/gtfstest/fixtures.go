// Package gtfstest provides a small feed for tests, both as raw rows and as
// feed files.
//
// The feed has one agency (A, UTC), a station STN with two platforms S1 and
// S2 named "Central", a standalone stop S3 "Market Square", a bus route R1
// and a rail route R2 without agency_id, weekday (WK) and weekend (WE)
// services, and three trips:
//
//	T1  R1 WK  headsign Harbour   S1 08:00, S3 08:10
//	T2  R1 WK  no headsign        S1 07:45, S3 08:10 (arrival only)
//	T3  R2 WE  headsign Terminal  S2 25:30
package gtfstest

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/gtfs-departures/gtfs"
)

// Files is the fixture feed as CSV text, keyed by file name.
func Files() map[string]string {
	return map[string]string{
		"agency.txt": "agency_id,agency_name,agency_url,agency_timezone\n" +
			"A,Metro Transit,https://metro.example,UTC\n",
		"stops.txt": "stop_id,stop_code,stop_name,stop_lat,stop_lon,location_type,parent_station,platform_code\n" +
			"STN,,Central Station,42.69,23.32,1,,\n" +
			"S1,C1,Central,42.691,23.321,0,STN,1\n" +
			"S2,C2,Central,42.692,23.322,0,STN,2\n" +
			"S3,M3,Market Square,42.70,23.33,0,,\n",
		"routes.txt": "route_id,agency_id,route_short_name,route_long_name,route_type\n" +
			"R1,A,12,Downtown Loop,3\n" +
			"R2,,,Airport Express,2\n",
		"calendar.txt": "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
			"WK,1,1,1,1,1,0,0,20240101,20261231\n" +
			"WE,0,0,0,0,0,1,1,20240101,20261231\n",
		"trips.txt": "route_id,service_id,trip_id,trip_headsign,direction_id\n" +
			"R1,WK,T1,Harbour,0\n" +
			"R1,WK,T2,,1\n" +
			"R2,WE,T3,Terminal,\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"T1,08:00:00,08:00:00,S1,1\n" +
			"T1,08:10:00,08:10:00,S3,2\n" +
			"T2,07:45:00,07:45:00,S1,1\n" +
			"T2,08:10:00,,S3,2\n" +
			"T3,25:30:00,25:30:00,S2,1\n",
		"calendar_dates.txt": "service_id,date,exception_type\n" +
			"WK,20240101,2\n",
		"feed_info.txt": "feed_publisher_name,feed_publisher_url,feed_lang,feed_start_date,feed_end_date\n" +
			"Metro Transit,https://metro.example,en,20240101,20261231\n",
	}
}

// Raw is the fixture feed as rows, equal to what the loader reads from Files.
func Raw() *gtfs.RawFeed {
	agency := gtfs.NewAgencyRow()
	agency.ID, agency.Name, agency.URL, agency.Timezone = "A", "Metro Transit", "https://metro.example", "UTC"

	station := Stop("STN", "", "Central Station", "")
	station.Lat, station.Lon = 42.69, 23.32
	station.LocationType = int(gtfs.LocationTypeStation)
	s1 := Stop("S1", "C1", "Central", "STN")
	s1.Lat, s1.Lon, s1.PlatformCode = 42.691, 23.321, "1"
	s2 := Stop("S2", "C2", "Central", "STN")
	s2.Lat, s2.Lon, s2.PlatformCode = 42.692, 23.322, "2"
	s3 := Stop("S3", "M3", "Market Square", "")
	s3.Lat, s3.Lon = 42.70, 23.33

	r1 := Route("R1", "A", "12", "Downtown Loop", int(gtfs.RouteTypeBus))
	r2 := Route("R2", "", "", "Airport Express", int(gtfs.RouteTypeRail))

	t1 := Trip("R1", "WK", "T1", "Harbour")
	t1.DirectionID = 0
	t2 := Trip("R1", "WK", "T2", "")
	t2.DirectionID = 1
	t3 := Trip("R2", "WE", "T3", "Terminal")

	exception := gtfs.NewCalendarDateRow()
	exception.ServiceID, exception.Date, exception.ExceptionType = "WK", "20240101", int(gtfs.ServiceRemoved)

	info := gtfs.NewFeedInfoRow()
	info.PublisherName, info.PublisherURL, info.Lang = "Metro Transit", "https://metro.example", "en"
	info.StartDate, info.EndDate = "20240101", "20261231"

	return &gtfs.RawFeed{
		Agencies: []gtfs.AgencyRow{agency},
		Stops:    []gtfs.StopRow{station, s1, s2, s3},
		Routes:   []gtfs.RouteRow{r1, r2},
		Trips:    []gtfs.TripRow{t1, t2, t3},
		StopTimes: []gtfs.StopTimeRow{
			StopTime("T1", "S1", 1, "08:00:00", "08:00:00"),
			StopTime("T1", "S3", 2, "08:10:00", "08:10:00"),
			StopTime("T2", "S1", 1, "07:45:00", "07:45:00"),
			StopTime("T2", "S3", 2, "08:10:00", ""),
			StopTime("T3", "S2", 1, "25:30:00", "25:30:00"),
		},
		Calendars: []gtfs.CalendarRow{
			Calendar("WK", "1111100", "20240101", "20261231"),
			Calendar("WE", "0000011", "20240101", "20261231"),
		},
		CalendarDates: []gtfs.CalendarDateRow{exception},
		FeedInfos:     []gtfs.FeedInfoRow{info},
	}
}

// Feed assembles Raw and fails the test on error.
func Feed(t testing.TB) *gtfs.Feed {
	t.Helper()
	feed, err := gtfs.Assemble(Raw())
	require.NoError(t, err)
	return feed
}

func Stop(id, code, name, parent string) gtfs.StopRow {
	row := gtfs.NewStopRow()
	row.ID, row.Code, row.Name, row.ParentStation = id, code, name, parent
	return row
}

func Route(id, agency, shortName, longName string, routeType int) gtfs.RouteRow {
	row := gtfs.NewRouteRow()
	row.ID, row.AgencyID, row.ShortName, row.LongName, row.Type = id, agency, shortName, longName, routeType
	return row
}

func Trip(route, service, id, headsign string) gtfs.TripRow {
	row := gtfs.NewTripRow()
	row.RouteID, row.ServiceID, row.ID, row.Headsign = route, service, id, headsign
	return row
}

func StopTime(trip, stop string, seq int, arrival, departure string) gtfs.StopTimeRow {
	row := gtfs.NewStopTimeRow()
	row.TripID, row.StopID, row.StopSequence = trip, stop, seq
	row.ArrivalTime, row.DepartureTime = arrival, departure
	return row
}

// Calendar takes the day flags as seven '0'/'1' characters, Monday first.
func Calendar(id, days, start, end string) gtfs.CalendarRow {
	row := gtfs.NewCalendarRow()
	row.ServiceID, row.StartDate, row.EndDate = id, start, end
	flags := []*int{&row.Monday, &row.Tuesday, &row.Wednesday, &row.Thursday, &row.Friday, &row.Saturday, &row.Sunday}
	for i, f := range flags {
		*f = int(days[i] - '0')
	}
	return row
}

// WriteDir writes files into a fresh temporary directory and returns its path.
func WriteDir(t testing.TB, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

// ZipBytes packs files into an in-memory zip archive.
func ZipBytes(t testing.TB, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
