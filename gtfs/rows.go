package gtfs

// Unset marks an integer or number column that was not given.
const Unset = -1

// Raw rows hold one line of a feed file, typed as the text encodes it.
// Construct them with the NewXxxRow functions so absent columns carry the
// format defaults.

type AgencyRow struct {
	ID       string `csv:"agency_id"`
	Name     string `csv:"agency_name" validate:"required"`
	URL      string `csv:"agency_url" validate:"required"`
	Timezone string `csv:"agency_timezone" validate:"required"`
	Lang     string `csv:"agency_lang"`
	Phone    string `csv:"agency_phone"`
	FareURL  string `csv:"agency_fare_url"`
	Email    string `csv:"agency_email"`
}

func NewAgencyRow() AgencyRow { return AgencyRow{} }

type StopRow struct {
	ID                 string  `csv:"stop_id" validate:"required"`
	Code               string  `csv:"stop_code"`
	Name               string  `csv:"stop_name"`
	Desc               string  `csv:"stop_desc"`
	Lat                float64 `csv:"stop_lat"`
	Lon                float64 `csv:"stop_lon"`
	ZoneID             string  `csv:"zone_id"`
	URL                string  `csv:"stop_url"`
	LocationType       int     `csv:"location_type"`
	ParentStation      string  `csv:"parent_station"`
	Timezone           string  `csv:"stop_timezone"`
	WheelchairBoarding int     `csv:"wheelchair_boarding"`
	LevelID            string  `csv:"level_id"`
	PlatformCode       string  `csv:"platform_code"`
}

func NewStopRow() StopRow {
	return StopRow{
		LocationType:       int(DefaultLocationType),
		WheelchairBoarding: int(DefaultWheelchairAccessibility),
	}
}

type RouteRow struct {
	ID                string `csv:"route_id" validate:"required"`
	AgencyID          string `csv:"agency_id"`
	ShortName         string `csv:"route_short_name" validate:"required_without=LongName"`
	LongName          string `csv:"route_long_name"`
	Desc              string `csv:"route_desc"`
	Type              int    `csv:"route_type" validate:"ne=-1"`
	URL               string `csv:"route_url"`
	Color             string `csv:"route_color"`
	TextColor         string `csv:"route_text_color"`
	SortOrder         int    `csv:"route_sort_order"`
	ContinuousPickup  int    `csv:"continuous_pickup"`
	ContinuousDropOff int    `csv:"continuous_drop_off"`
}

func NewRouteRow() RouteRow {
	return RouteRow{
		Type:              Unset,
		SortOrder:         Unset,
		ContinuousPickup:  int(DefaultContinuousHandling),
		ContinuousDropOff: int(DefaultContinuousHandling),
	}
}

type TripRow struct {
	RouteID              string `csv:"route_id" validate:"required"`
	ServiceID            string `csv:"service_id" validate:"required"`
	ID                   string `csv:"trip_id" validate:"required"`
	Headsign             string `csv:"trip_headsign"`
	ShortName            string `csv:"trip_short_name"`
	DirectionID          int    `csv:"direction_id"`
	BlockID              string `csv:"block_id"`
	ShapeID              string `csv:"shape_id"`
	WheelchairAccessible int    `csv:"wheelchair_accessible"`
	BikesAllowed         int    `csv:"bikes_allowed"`
}

func NewTripRow() TripRow {
	return TripRow{
		DirectionID:          Unset,
		WheelchairAccessible: int(DefaultWheelchairAccessibility),
		BikesAllowed:         int(DefaultBikesAllowed),
	}
}

type StopTimeRow struct {
	TripID             string  `csv:"trip_id" validate:"required"`
	ArrivalTime        string  `csv:"arrival_time"`
	DepartureTime      string  `csv:"departure_time"`
	StopID             string  `csv:"stop_id" validate:"required"`
	StopSequence       int     `csv:"stop_sequence" validate:"ne=-1"`
	StopHeadsign       string  `csv:"stop_headsign"`
	PickupType         int     `csv:"pickup_type"`
	DropOffType        int     `csv:"drop_off_type"`
	ContinuousPickup   int     `csv:"continuous_pickup"`
	ContinuousDropOff  int     `csv:"continuous_drop_off"`
	ShapeDistTravelled float64 `csv:"shape_dist_traveled"`
	Timepoint          int     `csv:"timepoint"`
}

func NewStopTimeRow() StopTimeRow {
	return StopTimeRow{
		StopSequence:       Unset,
		PickupType:         int(DefaultStopHandling),
		DropOffType:        int(DefaultStopHandling),
		ContinuousPickup:   int(DefaultContinuousHandling),
		ContinuousDropOff:  int(DefaultContinuousHandling),
		ShapeDistTravelled: Unset,
		Timepoint:          int(DefaultTimepoint),
	}
}

// CalendarRow day flags have no default: each must be given as 0 or 1.
type CalendarRow struct {
	ServiceID string `csv:"service_id" validate:"required"`
	Monday    int    `csv:"monday" validate:"ne=-1"`
	Tuesday   int    `csv:"tuesday" validate:"ne=-1"`
	Wednesday int    `csv:"wednesday" validate:"ne=-1"`
	Thursday  int    `csv:"thursday" validate:"ne=-1"`
	Friday    int    `csv:"friday" validate:"ne=-1"`
	Saturday  int    `csv:"saturday" validate:"ne=-1"`
	Sunday    int    `csv:"sunday" validate:"ne=-1"`
	StartDate string `csv:"start_date" validate:"required"`
	EndDate   string `csv:"end_date" validate:"required"`
}

func NewCalendarRow() CalendarRow {
	return CalendarRow{
		Monday:    Unset,
		Tuesday:   Unset,
		Wednesday: Unset,
		Thursday:  Unset,
		Friday:    Unset,
		Saturday:  Unset,
		Sunday:    Unset,
	}
}

type CalendarDateRow struct {
	ServiceID     string `csv:"service_id" validate:"required"`
	Date          string `csv:"date" validate:"required"`
	ExceptionType int    `csv:"exception_type" validate:"ne=-1"`
}

func NewCalendarDateRow() CalendarDateRow {
	return CalendarDateRow{ExceptionType: Unset}
}

type FeedInfoRow struct {
	PublisherName string `csv:"feed_publisher_name" validate:"required"`
	PublisherURL  string `csv:"feed_publisher_url" validate:"required"`
	Lang          string `csv:"feed_lang" validate:"required"`
	DefaultLang   string `csv:"default_lang"`
	StartDate     string `csv:"feed_start_date"`
	EndDate       string `csv:"feed_end_date"`
	Version       string `csv:"feed_version"`
	ContactEmail  string `csv:"feed_contact_email"`
	ContactURL    string `csv:"feed_contact_url"`
}

func NewFeedInfoRow() FeedInfoRow { return FeedInfoRow{} }

// RawFeed is the decoded content of every feed file, one slice per entity kind.
type RawFeed struct {
	Agencies      []AgencyRow
	Stops         []StopRow
	Routes        []RouteRow
	Trips         []TripRow
	StopTimes     []StopTimeRow
	Calendars     []CalendarRow
	CalendarDates []CalendarDateRow
	FeedInfos     []FeedInfoRow
}
