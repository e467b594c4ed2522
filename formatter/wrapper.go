package formatter

import (
	"time"

	"github.com/theoremus-urban-solutions/gtfs-departures/departures"
	"github.com/theoremus-urban-solutions/gtfs-departures/utils"
)

// DepartureBoard is the response body of a departures request.
type DepartureBoard struct {
	ResponseTimestamp string      `json:"ResponseTimestamp"`
	StopName          string      `json:"StopName,omitempty"`
	StopCode          string      `json:"StopCode,omitempty"`
	FeedValid         *bool       `json:"FeedValid"`
	Departures        []Departure `json:"Departures"`
	ErrorCondition    *ErrorInfo  `json:"ErrorCondition,omitempty"`
}

type Departure struct {
	LineRef            string `json:"LineRef"`
	PublishedLineName  string `json:"PublishedLineName"`
	VehicleMode        string `json:"VehicleMode"`
	OperatorRef        string `json:"OperatorRef,omitempty"`
	StopPointRef       string `json:"StopPointRef"`
	StopPointName      string `json:"StopPointName"`
	PlatformCode       string `json:"PlatformCode,omitempty"`
	DatedJourneyRef    string `json:"DatedVehicleJourneyRef"`
	DirectionRef       string `json:"DirectionRef,omitempty"`
	DestinationDisplay string `json:"DestinationDisplay"`
	AimedDepartureTime string `json:"AimedDepartureTime"`
}

type ErrorInfo struct {
	Description string `json:"Description"`
}

// BuildDepartureBoard maps upcoming services to the response shape.
// feedValid is nil when the feed validity is unknown.
func BuildDepartureBoard(query departures.StopTemplate, services []departures.UpcomingService, now time.Time, feedValid *bool) *DepartureBoard {
	board := &DepartureBoard{
		ResponseTimestamp: utils.Iso8601(now),
		StopName:          query.Name,
		StopCode:          query.Code,
		FeedValid:         feedValid,
		Departures:        make([]Departure, 0, len(services)),
	}
	for _, s := range services {
		d := Departure{
			LineRef:            s.Route.ID,
			PublishedLineName:  s.Route.Name(),
			VehicleMode:        s.Route.Type.String(),
			StopPointRef:       s.Stop.ID,
			StopPointName:      s.Stop.Name,
			DatedJourneyRef:    s.Trip.ID,
			DestinationDisplay: s.Direction,
			AimedDepartureTime: utils.Iso8601(s.Departure),
		}
		if s.Route.Agency != nil {
			d.OperatorRef = s.Route.Agency.ID
		}
		if s.Stop.PlatformCode != nil {
			d.PlatformCode = *s.Stop.PlatformCode
		}
		if s.Trip.Direction != nil {
			d.DirectionRef = s.Trip.Direction.String()
		}
		board.Departures = append(board.Departures, d)
	}
	return board
}

// BuildErrorBoard wraps a request error in an otherwise empty board.
func BuildErrorBoard(msg string, now time.Time) *DepartureBoard {
	return &DepartureBoard{
		ResponseTimestamp: utils.Iso8601(now),
		Departures:        []Departure{},
		ErrorCondition:    &ErrorInfo{Description: msg},
	}
}
