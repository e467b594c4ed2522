package gtfs

import (
	"time"

	"github.com/rs/zerolog/log"
)

const (
	entityAgency       = "agency"
	entityStop         = "stop"
	entityRoute        = "route"
	entityTrip         = "trip"
	entityStopTime     = "stop_time"
	entityCalendar     = "calendar"
	entityCalendarDate = "calendar_date"
	entityFeedInfo     = "feed_info"
)

// Assemble validates the raw rows and resolves every cross-file reference,
// building kinds in dependency order: agencies, stops, calendars, routes,
// trips, stop times, calendar dates, feed info. The first violation aborts
// the whole load.
func Assemble(raw *RawFeed) (*Feed, error) {
	start := time.Now()

	agencies, err := assembleAgencies(raw.Agencies)
	if err != nil {
		return nil, err
	}
	stops, err := assembleStops(raw.Stops)
	if err != nil {
		return nil, err
	}
	calendars, err := assembleCalendars(raw.Calendars)
	if err != nil {
		return nil, err
	}
	routes, err := assembleRoutes(raw.Routes, agencies)
	if err != nil {
		return nil, err
	}
	trips, err := assembleTrips(raw.Trips, routes, calendars)
	if err != nil {
		return nil, err
	}
	stopTimes, err := assembleStopTimes(raw.StopTimes, trips, stops)
	if err != nil {
		return nil, err
	}
	calendarDates, err := assembleCalendarDates(raw.CalendarDates, calendars)
	if err != nil {
		return nil, err
	}
	feedInfos, err := assembleFeedInfos(raw.FeedInfos)
	if err != nil {
		return nil, err
	}

	feed := &Feed{
		Agencies:      agencies.items,
		Stops:         stops.items,
		Routes:        routes.items,
		Trips:         trips.items,
		StopTimes:     stopTimes,
		Calendars:     calendars.items,
		CalendarDates: calendarDates,
		FeedInfos:     feedInfos,
	}
	log.Debug().
		Interface("counts", feed.Counts()).
		Dur("took", time.Since(start)).
		Msg("Feed assembled")
	return feed, nil
}

func assembleAgencies(rows []AgencyRow) (sortedIndex[Agency], error) {
	many := len(rows) > 1
	out := make([]*Agency, 0, len(rows))
	for i, row := range rows {
		if err := checkRequired(entityAgency, row); err != nil {
			return sortedIndex[Agency]{}, withRow(err, entityAgency, i+1)
		}
		if many && row.ID == "" {
			return sortedIndex[Agency]{}, withRow(missingField(entityAgency, "agency_id"), entityAgency, i+1)
		}
		out = append(out, &Agency{
			ID:       row.ID,
			Name:     row.Name,
			URL:      row.URL,
			Timezone: row.Timezone,
			Lang:     optional(row.Lang),
			Phone:    optional(row.Phone),
			FareURL:  optional(row.FareURL),
			Email:    optional(row.Email),
		})
	}
	logAssembled(entityAgency, len(out))
	return newSortedIndex(entityAgency, out, agencyID)
}

// assembleStops resolves stations first, then the stops that name them as parent.
func assembleStops(rows []StopRow) (sortedIndex[Stop], error) {
	var roots, children []int
	for i, row := range rows {
		if row.ParentStation == "" {
			roots = append(roots, i)
		} else {
			children = append(children, i)
		}
	}

	parents := make([]*Stop, 0, len(roots))
	for _, i := range roots {
		stop, err := buildStop(rows[i])
		if err != nil {
			return sortedIndex[Stop]{}, withRow(err, entityStop, i+1)
		}
		parents = append(parents, stop)
	}
	parentIndex, err := newSortedIndex(entityStop, parents, stopID)
	if err != nil {
		return sortedIndex[Stop]{}, err
	}

	all := make([]*Stop, 0, len(rows))
	all = append(all, parentIndex.items...)
	for _, i := range children {
		row := rows[i]
		stop, err := buildStop(row)
		if err != nil {
			return sortedIndex[Stop]{}, withRow(err, entityStop, i+1)
		}
		parent, ok := parentIndex.find(row.ParentStation)
		if !ok {
			return sortedIndex[Stop]{}, withRow(referenceNotFound(entityStop, "parent_station", row.ParentStation), entityStop, i+1)
		}
		mustMatch(entityStop, row.ParentStation, parent.ID)
		all = append(all, stop)
	}

	index, err := newSortedIndex(entityStop, all, stopID)
	if err != nil {
		return sortedIndex[Stop]{}, err
	}
	for _, stop := range index.items {
		if stop.ParentStationID == nil {
			continue
		}
		pos, _ := index.position(*stop.ParentStationID)
		stop.ParentIndex = pos
	}
	logAssembled(entityStop, index.len())
	return index, nil
}

func buildStop(row StopRow) (*Stop, error) {
	if err := checkRequired(entityStop, row); err != nil {
		return nil, err
	}
	locationType, err := ParseLocationType(row.LocationType)
	if err != nil {
		return nil, err
	}
	wheelchair, err := ParseWheelchairAccessibility(row.WheelchairBoarding)
	if err != nil {
		return nil, err
	}
	return &Stop{
		ID:                 row.ID,
		Code:               optional(row.Code),
		Name:               row.Name,
		Desc:               row.Desc,
		Lat:                row.Lat,
		Lon:                row.Lon,
		ZoneID:             row.ZoneID,
		URL:                optional(row.URL),
		LocationType:       locationType,
		ParentStationID:    optional(row.ParentStation),
		Timezone:           optional(row.Timezone),
		WheelchairBoarding: wheelchair,
		LevelID:            optional(row.LevelID),
		PlatformCode:       optional(row.PlatformCode),
		ParentIndex:        -1,
	}, nil
}

func assembleCalendars(rows []CalendarRow) (sortedIndex[Calendar], error) {
	out := make([]*Calendar, 0, len(rows))
	for i, row := range rows {
		calendar, err := buildCalendar(row)
		if err != nil {
			return sortedIndex[Calendar]{}, withRow(err, entityCalendar, i+1)
		}
		out = append(out, calendar)
	}
	logAssembled(entityCalendar, len(out))
	return newSortedIndex(entityCalendar, out, calendarID)
}

func buildCalendar(row CalendarRow) (*Calendar, error) {
	if err := checkRequired(entityCalendar, row); err != nil {
		return nil, err
	}
	days := []struct {
		name string
		flag int
	}{
		{"monday", row.Monday},
		{"tuesday", row.Tuesday},
		{"wednesday", row.Wednesday},
		{"thursday", row.Thursday},
		{"friday", row.Friday},
		{"saturday", row.Saturday},
		{"sunday", row.Sunday},
	}
	for _, d := range days {
		if d.flag != 0 && d.flag != 1 {
			return nil, UnknownEnumError(d.name, d.flag)
		}
	}
	start, err := ParseDate(row.StartDate)
	if err != nil {
		return nil, withField(err, "start_date")
	}
	end, err := ParseDate(row.EndDate)
	if err != nil {
		return nil, withField(err, "end_date")
	}
	return &Calendar{
		ID:        row.ServiceID,
		Monday:    row.Monday == 1,
		Tuesday:   row.Tuesday == 1,
		Wednesday: row.Wednesday == 1,
		Thursday:  row.Thursday == 1,
		Friday:    row.Friday == 1,
		Saturday:  row.Saturday == 1,
		Sunday:    row.Sunday == 1,
		StartDate: start,
		EndDate:   end,
	}, nil
}

func assembleRoutes(rows []RouteRow, agencies sortedIndex[Agency]) (sortedIndex[Route], error) {
	many := agencies.len() > 1
	out := make([]*Route, 0, len(rows))
	for i, row := range rows {
		if err := checkRequired(entityRoute, row); err != nil {
			return sortedIndex[Route]{}, withRow(err, entityRoute, i+1)
		}

		var agency *Agency
		switch {
		case row.AgencyID == "" && many:
			return sortedIndex[Route]{}, &FeedError{Err: ErrAmbiguousReference, Entity: entityRoute, Field: "agency_id", Row: i + 1}
		case row.AgencyID == "":
			// With a single agency the column may be left out.
			agency, _ = agencies.only()
		default:
			found, ok := agencies.find(row.AgencyID)
			if !ok {
				return sortedIndex[Route]{}, withRow(referenceNotFound(entityRoute, "agency_id", row.AgencyID), entityRoute, i+1)
			}
			mustMatch(entityRoute, row.AgencyID, found.ID)
			agency = found
		}

		route, err := buildRoute(row, agency)
		if err != nil {
			return sortedIndex[Route]{}, withRow(err, entityRoute, i+1)
		}
		out = append(out, route)
	}
	logAssembled(entityRoute, len(out))
	return newSortedIndex(entityRoute, out, routeID)
}

func buildRoute(row RouteRow, agency *Agency) (*Route, error) {
	routeType, err := ParseRouteType(row.Type)
	if err != nil {
		return nil, err
	}
	pickup, err := ParseContinuousHandling(row.ContinuousPickup)
	if err != nil {
		return nil, err
	}
	dropOff, err := ParseContinuousHandling(row.ContinuousDropOff)
	if err != nil {
		return nil, err
	}
	var sortOrder *int
	if row.SortOrder != Unset {
		v := row.SortOrder
		sortOrder = &v
	}
	return &Route{
		ID:                row.ID,
		Agency:            agency,
		ShortName:         row.ShortName,
		LongName:          row.LongName,
		Desc:              row.Desc,
		Type:              routeType,
		URL:               optional(row.URL),
		Color:             optional(row.Color),
		TextColor:         optional(row.TextColor),
		SortOrder:         sortOrder,
		ContinuousPickup:  pickup,
		ContinuousDropOff: dropOff,
	}, nil
}

func assembleTrips(rows []TripRow, routes sortedIndex[Route], calendars sortedIndex[Calendar]) (sortedIndex[Trip], error) {
	out := make([]*Trip, 0, len(rows))
	for i, row := range rows {
		if err := checkRequired(entityTrip, row); err != nil {
			return sortedIndex[Trip]{}, withRow(err, entityTrip, i+1)
		}
		route, ok := routes.find(row.RouteID)
		if !ok {
			return sortedIndex[Trip]{}, withRow(referenceNotFound(entityTrip, "route_id", row.RouteID), entityTrip, i+1)
		}
		mustMatch(entityTrip, row.RouteID, route.ID)
		service, ok := calendars.find(row.ServiceID)
		if !ok {
			return sortedIndex[Trip]{}, withRow(referenceNotFound(entityTrip, "service_id", row.ServiceID), entityTrip, i+1)
		}
		mustMatch(entityTrip, row.ServiceID, service.ID)

		trip, err := buildTrip(row, route, service)
		if err != nil {
			return sortedIndex[Trip]{}, withRow(err, entityTrip, i+1)
		}
		out = append(out, trip)
	}
	logAssembled(entityTrip, len(out))
	return newSortedIndex(entityTrip, out, tripID)
}

func buildTrip(row TripRow, route *Route, service *Calendar) (*Trip, error) {
	var direction *Direction
	if row.DirectionID != Unset {
		d, err := ParseDirection(row.DirectionID)
		if err != nil {
			return nil, err
		}
		direction = &d
	}
	wheelchair, err := ParseWheelchairAccessibility(row.WheelchairAccessible)
	if err != nil {
		return nil, err
	}
	bikes, err := ParseBikesAllowed(row.BikesAllowed)
	if err != nil {
		return nil, err
	}
	return &Trip{
		Route:                route,
		Service:              service,
		ID:                   row.ID,
		Headsign:             optional(row.Headsign),
		ShortName:            optional(row.ShortName),
		Direction:            direction,
		BlockID:              optional(row.BlockID),
		ShapeID:              optional(row.ShapeID),
		WheelchairAccessible: wheelchair,
		BikesAllowed:         bikes,
	}, nil
}

func assembleStopTimes(rows []StopTimeRow, trips sortedIndex[Trip], stops sortedIndex[Stop]) ([]*StopTime, error) {
	out := make([]*StopTime, 0, len(rows))
	for i, row := range rows {
		if err := checkRequired(entityStopTime, row); err != nil {
			return nil, withRow(err, entityStopTime, i+1)
		}
		trip, ok := trips.find(row.TripID)
		if !ok {
			return nil, withRow(referenceNotFound(entityStopTime, "trip_id", row.TripID), entityStopTime, i+1)
		}
		mustMatch(entityStopTime, row.TripID, trip.ID)
		stop, ok := stops.find(row.StopID)
		if !ok {
			return nil, withRow(referenceNotFound(entityStopTime, "stop_id", row.StopID), entityStopTime, i+1)
		}
		mustMatch(entityStopTime, row.StopID, stop.ID)

		stopTime, err := buildStopTime(row, trip, stop)
		if err != nil {
			return nil, withRow(err, entityStopTime, i+1)
		}
		out = append(out, stopTime)
	}
	logAssembled(entityStopTime, len(out))
	return out, nil
}

func buildStopTime(row StopTimeRow, trip *Trip, stop *Stop) (*StopTime, error) {
	arrival := parseOptionalTime(row.ArrivalTime)
	departure := parseOptionalTime(row.DepartureTime)
	if arrival == nil && departure == nil {
		return nil, missingField(entityStopTime, "arrival_time")
	}
	pickup, err := ParseStopHandling(row.PickupType)
	if err != nil {
		return nil, err
	}
	dropOff, err := ParseStopHandling(row.DropOffType)
	if err != nil {
		return nil, err
	}
	continuousPickup, err := ParseContinuousHandling(row.ContinuousPickup)
	if err != nil {
		return nil, err
	}
	continuousDropOff, err := ParseContinuousHandling(row.ContinuousDropOff)
	if err != nil {
		return nil, err
	}
	timepoint, err := ParseTimepoint(row.Timepoint)
	if err != nil {
		return nil, err
	}
	var dist *float64
	if row.ShapeDistTravelled != Unset {
		v := row.ShapeDistTravelled
		dist = &v
	}
	return &StopTime{
		Trip:               trip,
		ArrivalTime:        arrival,
		DepartureTime:      departure,
		Stop:               stop,
		StopSequence:       row.StopSequence,
		StopHeadsign:       optional(row.StopHeadsign),
		PickupType:         pickup,
		DropOffType:        dropOff,
		ContinuousPickup:   continuousPickup,
		ContinuousDropOff:  continuousDropOff,
		ShapeDistTravelled: dist,
		Timepoint:          timepoint,
	}, nil
}

func parseOptionalTime(s string) *TimeOfDay {
	t, ok := ParseTimeOfDay(s)
	if !ok {
		return nil
	}
	return &t
}

func assembleCalendarDates(rows []CalendarDateRow, calendars sortedIndex[Calendar]) ([]*CalendarDate, error) {
	out := make([]*CalendarDate, 0, len(rows))
	for i, row := range rows {
		if err := checkRequired(entityCalendarDate, row); err != nil {
			return nil, withRow(err, entityCalendarDate, i+1)
		}
		service, ok := calendars.find(row.ServiceID)
		if !ok {
			return nil, withRow(referenceNotFound(entityCalendarDate, "service_id", row.ServiceID), entityCalendarDate, i+1)
		}
		mustMatch(entityCalendarDate, row.ServiceID, service.ID)

		date, err := ParseDate(row.Date)
		if err != nil {
			return nil, withRow(withField(err, "date"), entityCalendarDate, i+1)
		}
		exception, err := ParseExceptionType(row.ExceptionType)
		if err != nil {
			return nil, withRow(err, entityCalendarDate, i+1)
		}
		out = append(out, &CalendarDate{Service: service, Date: date, ExceptionType: exception})
	}
	logAssembled(entityCalendarDate, len(out))
	return out, nil
}

func assembleFeedInfos(rows []FeedInfoRow) ([]*FeedInfo, error) {
	out := make([]*FeedInfo, 0, len(rows))
	for i, row := range rows {
		if err := checkRequired(entityFeedInfo, row); err != nil {
			return nil, withRow(err, entityFeedInfo, i+1)
		}
		start, err := parseOptionalDate(row.StartDate)
		if err != nil {
			return nil, withRow(withField(err, "feed_start_date"), entityFeedInfo, i+1)
		}
		end, err := parseOptionalDate(row.EndDate)
		if err != nil {
			return nil, withRow(withField(err, "feed_end_date"), entityFeedInfo, i+1)
		}
		out = append(out, &FeedInfo{
			PublisherName: row.PublisherName,
			PublisherURL:  row.PublisherURL,
			Lang:          row.Lang,
			DefaultLang:   optional(row.DefaultLang),
			StartDate:     start,
			EndDate:       end,
			Version:       optional(row.Version),
			ContactEmail:  optional(row.ContactEmail),
			ContactURL:    optional(row.ContactURL),
		})
	}
	logAssembled(entityFeedInfo, len(out))
	return out, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func withField(err error, field string) error {
	if fe, ok := err.(*FeedError); ok && fe.Field == "" {
		fe.Field = field
	}
	return err
}

func logAssembled(entity string, count int) {
	log.Debug().Str("entity", entity).Int("count", count).Msg("Resolved entities")
}
