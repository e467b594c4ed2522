package departures

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/theoremus-urban-solutions/gtfs-departures/gtfs"
)

const (
	DefaultLimit       = 20
	DefaultGracePeriod = time.Minute
)

// UpcomingService is one scheduled departure from a stop.
type UpcomingService struct {
	Route *gtfs.Route
	Stop  *gtfs.Stop
	Trip  *gtfs.Trip
	// Direction is the trip headsign, or the route long name without one.
	Direction string
	// Departure is today's date at the departure time (arrival time when
	// the stop time has no departure).
	Departure time.Time
}

// StopTemplate selects stops by name, and by code too when Code is set.
type StopTemplate struct {
	Name string
	Code string
}

// visit is a stop time with its position in the feed, used to keep
// equal departure times in row order.
type visit struct {
	stopTime *gtfs.StopTime
	row      int
}

// Engine answers departure queries over an assembled feed. It never modifies
// the feed and is safe for concurrent use.
type Engine struct {
	feed         *gtfs.Feed
	clock        func() time.Time
	location     *time.Location
	limit        int
	grace        time.Duration
	serviceDates bool

	// visits by stop id
	visits map[string][]visit
}

// NewEngine indexes the stop times of feed by stop.
func NewEngine(feed *gtfs.Feed, opts ...Option) *Engine {
	e := &Engine{
		feed:   feed,
		clock:  time.Now,
		limit:  DefaultLimit,
		grace:  DefaultGracePeriod,
		visits: make(map[string][]visit, len(feed.Stops)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.location == nil {
		e.location = feed.Location()
	}
	for i, st := range feed.StopTimes {
		e.visits[st.Stop.ID] = append(e.visits[st.Stop.ID], visit{stopTime: st, row: i})
	}
	return e
}

// Feed returns the feed the engine queries.
func (e *Engine) Feed() *gtfs.Feed { return e.feed }

// Location is the timezone departures are computed in.
func (e *Engine) Location() *time.Location { return e.location }

// UpcomingServicesForStopName returns the next departures from every stop
// whose name equals name, ignoring case.
func (e *Engine) UpcomingServicesForStopName(name string) []UpcomingService {
	if name == "" {
		return []UpcomingService{}
	}
	return e.upcoming(func(s *gtfs.Stop) bool {
		return strings.EqualFold(s.Name, name)
	})
}

// UpcomingServicesForStopCode returns the next departures from every stop
// whose code equals code, ignoring case.
func (e *Engine) UpcomingServicesForStopCode(code string) []UpcomingService {
	if code == "" {
		return []UpcomingService{}
	}
	return e.upcoming(func(s *gtfs.Stop) bool {
		return codeMatches(s, code)
	})
}

// UpcomingServicesForStopTemplate matches by name, narrowed by code when the
// template has one. It tells apart stops sharing a name.
func (e *Engine) UpcomingServicesForStopTemplate(t StopTemplate) []UpcomingService {
	if t.Name == "" {
		return []UpcomingService{}
	}
	return e.upcoming(func(s *gtfs.Stop) bool {
		if !strings.EqualFold(s.Name, t.Name) {
			return false
		}
		return t.Code == "" || codeMatches(s, t.Code)
	})
}

func codeMatches(s *gtfs.Stop, code string) bool {
	return s.Code != nil && strings.EqualFold(*s.Code, code)
}

// IsFeedCurrentlyValid checks today against the feed_info validity window.
// known is false when the feed has no feed_info or it gives no dates.
func (e *Engine) IsFeedCurrentlyValid() (valid, known bool) {
	return e.feed.Info().ValidOn(e.Now())
}

// Now is the engine clock in the engine location.
func (e *Engine) Now() time.Time {
	return e.clock().In(e.location)
}

func (e *Engine) upcoming(match func(*gtfs.Stop) bool) []UpcomingService {
	now := e.Now()
	cutoff := gtfs.TimeOfDayOf(now) - gtfs.TimeOfDay(e.grace/time.Second)
	if cutoff < 0 {
		cutoff = 0
	}

	var matches []visit
	for _, stop := range e.feed.Stops {
		if !match(stop) {
			continue
		}
		for _, v := range e.visits[stop.ID] {
			if v.stopTime.EffectiveTime() < cutoff || !e.runsToday(v.stopTime.Trip.Service, now) {
				continue
			}
			matches = append(matches, v)
		}
	}

	slices.SortFunc(matches, func(a, b visit) int {
		if c := cmp.Compare(a.stopTime.EffectiveTime(), b.stopTime.EffectiveTime()); c != 0 {
			return c
		}
		return cmp.Compare(a.row, b.row)
	})
	if len(matches) > e.limit {
		matches = matches[:e.limit]
	}

	out := make([]UpcomingService, 0, len(matches))
	for _, v := range matches {
		st := v.stopTime
		out = append(out, UpcomingService{
			Route:     st.Trip.Route,
			Stop:      st.Stop,
			Trip:      st.Trip,
			Direction: direction(st.Trip),
			Departure: st.EffectiveTime().On(now, e.location),
		})
	}
	log.Debug().Int("results", len(out)).Str("cutoff", cutoff.String()).Msg("Upcoming services")
	return out
}

func (e *Engine) runsToday(service *gtfs.Calendar, now time.Time) bool {
	if e.serviceDates {
		return e.feed.ServiceRunsOn(service, now)
	}
	return service.RunsOn(now.Weekday())
}

func direction(t *gtfs.Trip) string {
	if t.Headsign != nil {
		return *t.Headsign
	}
	return t.Route.LongName
}
