// Package departures lists the next scheduled departures at a stop.
//
// A departure is listed when its trip's service runs on today's weekday and
// its time is no more than a minute in the past. Results are ordered by time
// and capped at 20.
package departures
