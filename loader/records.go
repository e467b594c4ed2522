package loader

import (
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/gtfs-departures/gtfs"
)

// Records mirror the column layout of each feed file as plain text. gocsv
// fills the columns present in the header; every other field stays empty and
// the conversion to gtfs rows keeps the format default for it.

type agencyRecord struct {
	ID       string `csv:"agency_id"`
	Name     string `csv:"agency_name"`
	URL      string `csv:"agency_url"`
	Timezone string `csv:"agency_timezone"`
	Lang     string `csv:"agency_lang"`
	Phone    string `csv:"agency_phone"`
	FareURL  string `csv:"agency_fare_url"`
	Email    string `csv:"agency_email"`
}

type stopRecord struct {
	ID                 string `csv:"stop_id"`
	Code               string `csv:"stop_code"`
	Name               string `csv:"stop_name"`
	Desc               string `csv:"stop_desc"`
	Lat                string `csv:"stop_lat"`
	Lon                string `csv:"stop_lon"`
	ZoneID             string `csv:"zone_id"`
	URL                string `csv:"stop_url"`
	LocationType       string `csv:"location_type"`
	ParentStation      string `csv:"parent_station"`
	Timezone           string `csv:"stop_timezone"`
	WheelchairBoarding string `csv:"wheelchair_boarding"`
	LevelID            string `csv:"level_id"`
	PlatformCode       string `csv:"platform_code"`
}

type routeRecord struct {
	ID                string `csv:"route_id"`
	AgencyID          string `csv:"agency_id"`
	ShortName         string `csv:"route_short_name"`
	LongName          string `csv:"route_long_name"`
	Desc              string `csv:"route_desc"`
	Type              string `csv:"route_type"`
	URL               string `csv:"route_url"`
	Color             string `csv:"route_color"`
	TextColor         string `csv:"route_text_color"`
	SortOrder         string `csv:"route_sort_order"`
	ContinuousPickup  string `csv:"continuous_pickup"`
	ContinuousDropOff string `csv:"continuous_drop_off"`
}

type tripRecord struct {
	RouteID              string `csv:"route_id"`
	ServiceID            string `csv:"service_id"`
	ID                   string `csv:"trip_id"`
	Headsign             string `csv:"trip_headsign"`
	ShortName            string `csv:"trip_short_name"`
	DirectionID          string `csv:"direction_id"`
	BlockID              string `csv:"block_id"`
	ShapeID              string `csv:"shape_id"`
	WheelchairAccessible string `csv:"wheelchair_accessible"`
	BikesAllowed         string `csv:"bikes_allowed"`
}

type stopTimeRecord struct {
	TripID            string `csv:"trip_id"`
	ArrivalTime       string `csv:"arrival_time"`
	DepartureTime     string `csv:"departure_time"`
	StopID            string `csv:"stop_id"`
	StopSequence      string `csv:"stop_sequence"`
	StopHeadsign      string `csv:"stop_headsign"`
	PickupType        string `csv:"pickup_type"`
	DropOffType       string `csv:"drop_off_type"`
	ContinuousPickup  string `csv:"continuous_pickup"`
	ContinuousDropOff string `csv:"continuous_drop_off"`
	// Both spellings are found in published feeds.
	ShapeDistTraveled  string `csv:"shape_dist_traveled"`
	ShapeDistTravelled string `csv:"shape_dist_travelled"`
	Timepoint          string `csv:"timepoint"`
}

type calendarRecord struct {
	ServiceID string `csv:"service_id"`
	Monday    string `csv:"monday"`
	Tuesday   string `csv:"tuesday"`
	Wednesday string `csv:"wednesday"`
	Thursday  string `csv:"thursday"`
	Friday    string `csv:"friday"`
	Saturday  string `csv:"saturday"`
	Sunday    string `csv:"sunday"`
	StartDate string `csv:"start_date"`
	EndDate   string `csv:"end_date"`
}

type calendarDateRecord struct {
	ServiceID     string `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType string `csv:"exception_type"`
}

type feedInfoRecord struct {
	PublisherName string `csv:"feed_publisher_name"`
	PublisherURL  string `csv:"feed_publisher_url"`
	Lang          string `csv:"feed_lang"`
	DefaultLang   string `csv:"default_lang"`
	StartDate     string `csv:"feed_start_date"`
	EndDate       string `csv:"feed_end_date"`
	Version       string `csv:"feed_version"`
	ContactEmail  string `csv:"feed_contact_email"`
	ContactURL    string `csv:"feed_contact_url"`
}

// fields copies non-empty columns over row defaults and remembers the first
// numeric column that fails to parse.
type fields struct {
	entity string
	err    error
}

func (f *fields) str(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func (f *fields) int(dst *int, column, v string) {
	v = strings.TrimSpace(v)
	if v == "" || f.err != nil {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f.err = gtfs.MalformedFieldError(f.entity, column, v)
		return
	}
	*dst = n
}

func (f *fields) float(dst *float64, column, v string) {
	v = strings.TrimSpace(v)
	if v == "" || f.err != nil {
		return
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		f.err = gtfs.MalformedFieldError(f.entity, column, v)
		return
	}
	*dst = n
}

func (r *agencyRecord) row() (gtfs.AgencyRow, error) {
	row := gtfs.NewAgencyRow()
	f := fields{entity: "agency"}
	f.str(&row.ID, r.ID)
	f.str(&row.Name, r.Name)
	f.str(&row.URL, r.URL)
	f.str(&row.Timezone, r.Timezone)
	f.str(&row.Lang, r.Lang)
	f.str(&row.Phone, r.Phone)
	f.str(&row.FareURL, r.FareURL)
	f.str(&row.Email, r.Email)
	return row, f.err
}

func (r *stopRecord) row() (gtfs.StopRow, error) {
	row := gtfs.NewStopRow()
	f := fields{entity: "stop"}
	f.str(&row.ID, r.ID)
	f.str(&row.Code, r.Code)
	f.str(&row.Name, r.Name)
	f.str(&row.Desc, r.Desc)
	f.float(&row.Lat, "stop_lat", r.Lat)
	f.float(&row.Lon, "stop_lon", r.Lon)
	f.str(&row.ZoneID, r.ZoneID)
	f.str(&row.URL, r.URL)
	f.int(&row.LocationType, "location_type", r.LocationType)
	f.str(&row.ParentStation, r.ParentStation)
	f.str(&row.Timezone, r.Timezone)
	f.int(&row.WheelchairBoarding, "wheelchair_boarding", r.WheelchairBoarding)
	f.str(&row.LevelID, r.LevelID)
	f.str(&row.PlatformCode, r.PlatformCode)
	return row, f.err
}

func (r *routeRecord) row() (gtfs.RouteRow, error) {
	row := gtfs.NewRouteRow()
	f := fields{entity: "route"}
	f.str(&row.ID, r.ID)
	f.str(&row.AgencyID, r.AgencyID)
	f.str(&row.ShortName, r.ShortName)
	f.str(&row.LongName, r.LongName)
	f.str(&row.Desc, r.Desc)
	f.int(&row.Type, "route_type", r.Type)
	f.str(&row.URL, r.URL)
	f.str(&row.Color, r.Color)
	f.str(&row.TextColor, r.TextColor)
	f.int(&row.SortOrder, "route_sort_order", r.SortOrder)
	f.int(&row.ContinuousPickup, "continuous_pickup", r.ContinuousPickup)
	f.int(&row.ContinuousDropOff, "continuous_drop_off", r.ContinuousDropOff)
	return row, f.err
}

func (r *tripRecord) row() (gtfs.TripRow, error) {
	row := gtfs.NewTripRow()
	f := fields{entity: "trip"}
	f.str(&row.RouteID, r.RouteID)
	f.str(&row.ServiceID, r.ServiceID)
	f.str(&row.ID, r.ID)
	f.str(&row.Headsign, r.Headsign)
	f.str(&row.ShortName, r.ShortName)
	f.int(&row.DirectionID, "direction_id", r.DirectionID)
	f.str(&row.BlockID, r.BlockID)
	f.str(&row.ShapeID, r.ShapeID)
	f.int(&row.WheelchairAccessible, "wheelchair_accessible", r.WheelchairAccessible)
	f.int(&row.BikesAllowed, "bikes_allowed", r.BikesAllowed)
	return row, f.err
}

func (r *stopTimeRecord) row() (gtfs.StopTimeRow, error) {
	row := gtfs.NewStopTimeRow()
	f := fields{entity: "stop_time"}
	f.str(&row.TripID, r.TripID)
	f.str(&row.ArrivalTime, r.ArrivalTime)
	f.str(&row.DepartureTime, r.DepartureTime)
	f.str(&row.StopID, r.StopID)
	f.int(&row.StopSequence, "stop_sequence", r.StopSequence)
	f.str(&row.StopHeadsign, r.StopHeadsign)
	f.int(&row.PickupType, "pickup_type", r.PickupType)
	f.int(&row.DropOffType, "drop_off_type", r.DropOffType)
	f.int(&row.ContinuousPickup, "continuous_pickup", r.ContinuousPickup)
	f.int(&row.ContinuousDropOff, "continuous_drop_off", r.ContinuousDropOff)
	f.float(&row.ShapeDistTravelled, "shape_dist_travelled", r.ShapeDistTravelled)
	f.float(&row.ShapeDistTravelled, "shape_dist_traveled", r.ShapeDistTraveled)
	f.int(&row.Timepoint, "timepoint", r.Timepoint)
	return row, f.err
}

func (r *calendarRecord) row() (gtfs.CalendarRow, error) {
	row := gtfs.NewCalendarRow()
	f := fields{entity: "calendar"}
	f.str(&row.ServiceID, r.ServiceID)
	f.int(&row.Monday, "monday", r.Monday)
	f.int(&row.Tuesday, "tuesday", r.Tuesday)
	f.int(&row.Wednesday, "wednesday", r.Wednesday)
	f.int(&row.Thursday, "thursday", r.Thursday)
	f.int(&row.Friday, "friday", r.Friday)
	f.int(&row.Saturday, "saturday", r.Saturday)
	f.int(&row.Sunday, "sunday", r.Sunday)
	f.str(&row.StartDate, r.StartDate)
	f.str(&row.EndDate, r.EndDate)
	return row, f.err
}

func (r *calendarDateRecord) row() (gtfs.CalendarDateRow, error) {
	row := gtfs.NewCalendarDateRow()
	f := fields{entity: "calendar_date"}
	f.str(&row.ServiceID, r.ServiceID)
	f.str(&row.Date, r.Date)
	f.int(&row.ExceptionType, "exception_type", r.ExceptionType)
	return row, f.err
}

func (r *feedInfoRecord) row() (gtfs.FeedInfoRow, error) {
	row := gtfs.NewFeedInfoRow()
	f := fields{entity: "feed_info"}
	f.str(&row.PublisherName, r.PublisherName)
	f.str(&row.PublisherURL, r.PublisherURL)
	f.str(&row.Lang, r.Lang)
	f.str(&row.DefaultLang, r.DefaultLang)
	f.str(&row.StartDate, r.StartDate)
	f.str(&row.EndDate, r.EndDate)
	f.str(&row.Version, r.Version)
	f.str(&row.ContactEmail, r.ContactEmail)
	f.str(&row.ContactURL, r.ContactURL)
	return row, f.err
}
