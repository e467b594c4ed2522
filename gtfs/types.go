package gtfs

import "time"

// Entities are built once by Assemble and never modified afterwards.
// Optional attributes are nil when the feed leaves them out.

type Agency struct {
	ID       string
	Name     string
	URL      string
	Timezone string
	Lang     *string
	Phone    *string
	FareURL  *string
	Email    *string
}

type Stop struct {
	ID                 string
	Code               *string
	Name               string
	Desc               string
	Lat                float64
	Lon                float64
	ZoneID             string
	URL                *string
	LocationType       LocationType
	ParentStationID    *string
	Timezone           *string
	WheelchairBoarding WheelchairAccessibility
	LevelID            *string
	PlatformCode       *string

	// ParentIndex is the position of the parent station in Feed.Stops, -1 if none.
	ParentIndex int
}

// HasParent reports whether the stop belongs to a station.
func (s *Stop) HasParent() bool { return s.ParentIndex >= 0 }

type Route struct {
	ID                string
	Agency            *Agency
	ShortName         string
	LongName          string
	Desc              string
	Type              RouteType
	URL               *string
	Color             *string
	TextColor         *string
	SortOrder         *int
	ContinuousPickup  ContinuousHandling
	ContinuousDropOff ContinuousHandling
}

// Name is the short name, or the long name when there is no short one.
func (r *Route) Name() string {
	if r.ShortName != "" {
		return r.ShortName
	}
	return r.LongName
}

type Calendar struct {
	ID        string
	Monday    bool
	Tuesday   bool
	Wednesday bool
	Thursday  bool
	Friday    bool
	Saturday  bool
	Sunday    bool
	StartDate time.Time
	EndDate   time.Time
}

type Trip struct {
	Route                *Route
	Service              *Calendar
	ID                   string
	Headsign             *string
	ShortName            *string
	Direction            *Direction
	BlockID              *string
	ShapeID              *string
	WheelchairAccessible WheelchairAccessibility
	BikesAllowed         BikesAllowed
}

type StopTime struct {
	Trip               *Trip
	ArrivalTime        *TimeOfDay
	DepartureTime      *TimeOfDay
	Stop               *Stop
	StopSequence       int
	StopHeadsign       *string
	PickupType         StopHandling
	DropOffType        StopHandling
	ContinuousPickup   ContinuousHandling
	ContinuousDropOff  ContinuousHandling
	ShapeDistTravelled *float64
	Timepoint          Timepoint
}

// EffectiveTime is the departure time, or the arrival time when no departure is given.
// Assembly guarantees at least one of them.
func (st *StopTime) EffectiveTime() TimeOfDay {
	if st.DepartureTime != nil {
		return *st.DepartureTime
	}
	return *st.ArrivalTime
}

type CalendarDate struct {
	Service       *Calendar
	Date          time.Time
	ExceptionType ExceptionType
}

type FeedInfo struct {
	PublisherName string
	PublisherURL  string
	Lang          string
	DefaultLang   *string
	StartDate     *time.Time
	EndDate       *time.Time
	Version       *string
	ContactEmail  *string
	ContactURL    *string
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
