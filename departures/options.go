package departures

import "time"

type Option func(*Engine)

// WithClock replaces time.Now, mostly for tests.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithLocation sets the timezone "today" and departure times are computed in.
// Defaults to the timezone of the feed's first agency.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.location = loc }
}

// WithLimit caps the number of results per query. Non-positive values keep the default.
func WithLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.limit = n
		}
	}
}

// WithGracePeriod sets how far in the past a departure may be and still be listed.
func WithGracePeriod(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.grace = d
		}
	}
}

// WithServiceDates also checks the service date range and calendar_dates
// exceptions, not only the weekly pattern.
func WithServiceDates(enabled bool) Option {
	return func(e *Engine) { e.serviceDates = enabled }
}
