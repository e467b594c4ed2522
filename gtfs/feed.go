package gtfs

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Feed is the assembled, immutable transit network. Agencies, Stops, Routes,
// Trips and Calendars are ordered by id; StopTimes, CalendarDates and
// FeedInfos keep the order of their rows.
//
// A Feed is safe for concurrent reads.
type Feed struct {
	Agencies      []*Agency
	Stops         []*Stop
	Routes        []*Route
	Trips         []*Trip
	StopTimes     []*StopTime
	Calendars     []*Calendar
	CalendarDates []*CalendarDate
	FeedInfos     []*FeedInfo
}

// Counts is the number of entities per kind.
type Counts struct {
	Agencies      int `json:"agencies"`
	Stops         int `json:"stops"`
	Routes        int `json:"routes"`
	Trips         int `json:"trips"`
	StopTimes     int `json:"stopTimes"`
	Calendars     int `json:"calendars"`
	CalendarDates int `json:"calendarDates"`
	FeedInfos     int `json:"feedInfos"`
}

func (f *Feed) Counts() Counts {
	return Counts{
		Agencies:      len(f.Agencies),
		Stops:         len(f.Stops),
		Routes:        len(f.Routes),
		Trips:         len(f.Trips),
		StopTimes:     len(f.StopTimes),
		Calendars:     len(f.Calendars),
		CalendarDates: len(f.CalendarDates),
		FeedInfos:     len(f.FeedInfos),
	}
}

// ByKind flattens Counts for labelled metrics.
func (c Counts) ByKind() map[string]int {
	return map[string]int{
		entityAgency:       c.Agencies,
		entityStop:         c.Stops,
		entityRoute:        c.Routes,
		entityTrip:         c.Trips,
		entityStopTime:     c.StopTimes,
		entityCalendar:     c.Calendars,
		entityCalendarDate: c.CalendarDates,
		entityFeedInfo:     c.FeedInfos,
	}
}

func (f *Feed) Agency(id string) *Agency     { return findSorted(f.Agencies, id, agencyID) }
func (f *Feed) Stop(id string) *Stop         { return findSorted(f.Stops, id, stopID) }
func (f *Feed) Route(id string) *Route       { return findSorted(f.Routes, id, routeID) }
func (f *Feed) Trip(id string) *Trip         { return findSorted(f.Trips, id, tripID) }
func (f *Feed) Calendar(id string) *Calendar { return findSorted(f.Calendars, id, calendarID) }

// ParentStation returns the station a stop belongs to, or nil.
func (f *Feed) ParentStation(s *Stop) *Stop {
	if s == nil || !s.HasParent() || s.ParentIndex >= len(f.Stops) {
		return nil
	}
	return f.Stops[s.ParentIndex]
}

// Info returns the first feed_info entry, or nil when the feed has none.
func (f *Feed) Info() *FeedInfo {
	if len(f.FeedInfos) == 0 {
		return nil
	}
	return f.FeedInfos[0]
}

// Location resolves the timezone of the first agency. Feeds without agencies
// or with an unknown zone name fall back to UTC.
func (f *Feed) Location() *time.Location {
	if len(f.Agencies) == 0 || f.Agencies[0].Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(f.Agencies[0].Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", f.Agencies[0].Timezone).Msg("Unknown agency timezone, using UTC")
		return time.UTC
	}
	return loc
}

// ServiceRunsOn reports whether the service operates on the calendar day of
// date: the weekly pattern within the service range, overridden by any
// calendar_dates exception for that day.
func (f *Feed) ServiceRunsOn(c *Calendar, date time.Time) bool {
	for _, cd := range f.CalendarDates {
		if cd.Service != c || !sameDay(cd.Date, date) {
			continue
		}
		return cd.ExceptionType == ServiceAdded
	}
	if !sameOrBefore(c.StartDate, date) || !sameOrBefore(date, c.EndDate) {
		return false
	}
	return c.RunsOn(date.Weekday())
}

func sameDay(a, b time.Time) bool {
	return sameOrBefore(a, b) && sameOrBefore(b, a)
}
