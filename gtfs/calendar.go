package gtfs

import (
	"fmt"
	"time"
)

// RunsOn reports the weekly flag for day. Weekdays outside Sunday..Saturday
// cannot be produced by the time package and panic.
func (c *Calendar) RunsOn(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return c.Monday
	case time.Tuesday:
		return c.Tuesday
	case time.Wednesday:
		return c.Wednesday
	case time.Thursday:
		return c.Thursday
	case time.Friday:
		return c.Friday
	case time.Saturday:
		return c.Saturday
	case time.Sunday:
		return c.Sunday
	default:
		panic(fmt.Sprintf("gtfs: unknown weekday %d", day))
	}
}

// ValidOn checks date against the publisher's validity window. known is
// false when neither bound is given. A single bound is checked on its own.
func (fi *FeedInfo) ValidOn(date time.Time) (valid, known bool) {
	if fi == nil || (fi.StartDate == nil && fi.EndDate == nil) {
		return false, false
	}
	if fi.StartDate != nil && !sameOrBefore(*fi.StartDate, date) {
		return false, true
	}
	if fi.EndDate != nil && !sameOrBefore(date, *fi.EndDate) {
		return false, true
	}
	return true, true
}
