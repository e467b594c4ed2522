package gtfs

// LocationType describes the kind of a stops.txt location.
type LocationType int

const (
	LocationTypeStop         LocationType = 0
	LocationTypeStation      LocationType = 1
	LocationTypeEntranceExit LocationType = 2
	LocationTypeGenericNode  LocationType = 3
	LocationTypeBoardingArea LocationType = 4

	DefaultLocationType = LocationTypeStop
)

func ParseLocationType(code int) (LocationType, error) {
	return decodeEnum[LocationType]("location_type", code, 0, 4)
}

func (t LocationType) String() string {
	switch t {
	case LocationTypeStop:
		return "STOP"
	case LocationTypeStation:
		return "STATION"
	case LocationTypeEntranceExit:
		return "ENTRANCE_EXIT"
	case LocationTypeGenericNode:
		return "GENERIC_NODE"
	case LocationTypeBoardingArea:
		return "BOARDING_AREA"
	}
	return "UNKNOWN"
}

// WheelchairAccessibility is shared by wheelchair_boarding (stops) and
// wheelchair_accessible (trips).
type WheelchairAccessibility int

const (
	WheelchairUnknown    WheelchairAccessibility = 0
	WheelchairPossible   WheelchairAccessibility = 1
	WheelchairImpossible WheelchairAccessibility = 2

	DefaultWheelchairAccessibility = WheelchairUnknown
)

func ParseWheelchairAccessibility(code int) (WheelchairAccessibility, error) {
	return decodeEnum[WheelchairAccessibility]("wheelchair accessibility", code, 0, 2)
}

func (w WheelchairAccessibility) String() string {
	switch w {
	case WheelchairUnknown:
		return "UNKNOWN"
	case WheelchairPossible:
		return "POSSIBLE"
	case WheelchairImpossible:
		return "IMPOSSIBLE"
	}
	return "INVALID"
}

// ContinuousHandling is the continuous_pickup / continuous_drop_off policy.
type ContinuousHandling int

const (
	ContinuousPossible             ContinuousHandling = 0
	ContinuousImpossible           ContinuousHandling = 1
	ContinuousPhoneAgency          ContinuousHandling = 2
	ContinuousCoordinateWithDriver ContinuousHandling = 3

	DefaultContinuousHandling = ContinuousImpossible
)

func ParseContinuousHandling(code int) (ContinuousHandling, error) {
	return decodeEnum[ContinuousHandling]("continuous handling", code, 0, 3)
}

func (c ContinuousHandling) String() string {
	switch c {
	case ContinuousPossible:
		return "POSSIBLE"
	case ContinuousImpossible:
		return "IMPOSSIBLE"
	case ContinuousPhoneAgency:
		return "PHONE_AGENCY"
	case ContinuousCoordinateWithDriver:
		return "COORDINATE_WITH_DRIVER"
	}
	return "INVALID"
}

// StopHandling is the pickup_type / drop_off_type policy of a stop visit.
type StopHandling int

const (
	StopHandlingRegular              StopHandling = 0
	StopHandlingNone                 StopHandling = 1
	StopHandlingPhoneAgency          StopHandling = 2
	StopHandlingCoordinateWithDriver StopHandling = 3

	DefaultStopHandling = StopHandlingRegular
)

func ParseStopHandling(code int) (StopHandling, error) {
	return decodeEnum[StopHandling]("stop handling", code, 0, 3)
}

func (s StopHandling) String() string {
	switch s {
	case StopHandlingRegular:
		return "REGULAR"
	case StopHandlingNone:
		return "NONE"
	case StopHandlingPhoneAgency:
		return "PHONE_AGENCY"
	case StopHandlingCoordinateWithDriver:
		return "COORDINATE_WITH_DRIVER"
	}
	return "INVALID"
}

// Direction is the optional direction_id of a trip. It has no default.
type Direction int

const (
	DirectionOutbound Direction = 0
	DirectionInbound  Direction = 1
)

func ParseDirection(code int) (Direction, error) {
	return decodeEnum[Direction]("direction_id", code, 0, 1)
}

func (d Direction) String() string {
	switch d {
	case DirectionOutbound:
		return "OUTBOUND"
	case DirectionInbound:
		return "INBOUND"
	}
	return "INVALID"
}

type BikesAllowed int

const (
	BikesUnknown    BikesAllowed = 0
	BikesAllowedYes BikesAllowed = 1
	BikesAllowedNo  BikesAllowed = 2

	DefaultBikesAllowed = BikesUnknown
)

func ParseBikesAllowed(code int) (BikesAllowed, error) {
	return decodeEnum[BikesAllowed]("bikes_allowed", code, 0, 2)
}

func (b BikesAllowed) String() string {
	switch b {
	case BikesUnknown:
		return "UNKNOWN"
	case BikesAllowedYes:
		return "ALLOWED"
	case BikesAllowedNo:
		return "NOT_ALLOWED"
	}
	return "INVALID"
}

// Timepoint tells whether stop times are exact or approximate.
type Timepoint int

const (
	TimepointApproximate Timepoint = 0
	TimepointExact       Timepoint = 1

	DefaultTimepoint = TimepointExact
)

func ParseTimepoint(code int) (Timepoint, error) {
	return decodeEnum[Timepoint]("timepoint", code, 0, 1)
}

func (t Timepoint) String() string {
	switch t {
	case TimepointApproximate:
		return "APPROXIMATE"
	case TimepointExact:
		return "EXACT"
	}
	return "INVALID"
}

// ExceptionType is the calendar_dates.txt exception_type. Its codes start at 1.
type ExceptionType int

const (
	ServiceAdded   ExceptionType = 1
	ServiceRemoved ExceptionType = 2
)

func ParseExceptionType(code int) (ExceptionType, error) {
	return decodeEnum[ExceptionType]("exception_type", code, 1, 2)
}

func (e ExceptionType) String() string {
	switch e {
	case ServiceAdded:
		return "ADDED"
	case ServiceRemoved:
		return "REMOVED"
	}
	return "INVALID"
}

// RouteType covers the basic GTFS route types. Extended (HVT) codes are rejected.
type RouteType int

const (
	RouteTypeTram       RouteType = 0
	RouteTypeSubway     RouteType = 1
	RouteTypeRail       RouteType = 2
	RouteTypeBus        RouteType = 3
	RouteTypeFerry      RouteType = 4
	RouteTypeCableTram  RouteType = 5
	RouteTypeAerialLift RouteType = 6
	RouteTypeFunicular  RouteType = 7
	RouteTypeTrolleybus RouteType = 11
	RouteTypeMonorail   RouteType = 12
)

func ParseRouteType(code int) (RouteType, error) {
	if code == 11 || code == 12 {
		return RouteType(code), nil
	}
	return decodeEnum[RouteType]("route_type", code, 0, 7)
}

func (t RouteType) String() string {
	switch t {
	case RouteTypeTram:
		return "TRAM"
	case RouteTypeSubway:
		return "SUBWAY"
	case RouteTypeRail:
		return "RAIL"
	case RouteTypeBus:
		return "BUS"
	case RouteTypeFerry:
		return "FERRY"
	case RouteTypeCableTram:
		return "CABLE_TRAM"
	case RouteTypeAerialLift:
		return "AERIAL_LIFT"
	case RouteTypeFunicular:
		return "FUNICULAR"
	case RouteTypeTrolleybus:
		return "TROLLEYBUS"
	case RouteTypeMonorail:
		return "MONORAIL"
	}
	return "UNKNOWN"
}

// decodeEnum accepts codes in the contiguous range [lo, hi].
func decodeEnum[T ~int](kind string, code, lo, hi int) (T, error) {
	if code < lo || code > hi {
		return 0, UnknownEnumError(kind, code)
	}
	return T(code), nil
}
