package gtfs

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// TimeOfDay is a wall-clock time as seconds since midnight, always in [0, 86400).
type TimeOfDay int32

func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(((hour%24)*60+minute)*60 + second)
}

func (t TimeOfDay) Hour() int   { return int(t) / 3600 }
func (t TimeOfDay) Minute() int { return int(t) / 60 % 60 }
func (t TimeOfDay) Second() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// On places the time of day on the calendar day of date in loc.
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, loc)
}

// TimeOfDayOf returns the wall-clock part of ts.
func TimeOfDayOf(ts time.Time) TimeOfDay {
	return NewTimeOfDay(ts.Hour(), ts.Minute(), ts.Second())
}

// ParseTimeOfDay parses a GTFS time (HH:MM:SS, or H:MM:SS). Hours of 24 and
// above belong to the previous service day and are folded back into 0-23.
// Empty or malformed input reports ok == false.
func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 || len(parts[0]) == 0 || len(parts[0]) > 3 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	second, err := strconv.Atoi(parts[2])
	if err != nil || second < 0 || second > 59 {
		return 0, false
	}
	for hour >= 24 {
		hour -= 24
	}
	return NewTimeOfDay(hour, minute, second), true
}

const dateLayout = "20060102"

// ParseDate parses a YYYYMMDD service date into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	malformed := &FeedError{Err: ErrMalformedDate, Value: s}
	if len(s) != 8 {
		return time.Time{}, malformed
	}
	year, err := strconv.Atoi(s[0:4])
	if err != nil {
		return time.Time{}, malformed
	}
	month, err := strconv.Atoi(s[4:6])
	if err != nil {
		return time.Time{}, malformed
	}
	day, err := strconv.Atoi(s[6:8])
	if err != nil {
		return time.Time{}, malformed
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises out-of-range values, so a round trip catches 20240230.
	if d.Format(dateLayout) != s {
		return time.Time{}, malformed
	}
	return d, nil
}

// FormatDate is the inverse of ParseDate.
func FormatDate(d time.Time) string {
	return d.Format(dateLayout)
}

// sameOrBefore compares calendar days, ignoring time of day and location.
func sameOrBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad <= bd
}
