package utils

import (
	"time"
)

// Iso8601Now returns the current time in ISO8601 format
func Iso8601Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Iso8601 formats t in its own location, keeping the UTC offset.
func Iso8601(t time.Time) string {
	return t.Format(time.RFC3339)
}

// Iso8601FromUnixSeconds converts Unix timestamp to ISO8601 format
func Iso8601FromUnixSeconds(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

// Iso8601Date returns just the date portion in YYYY-MM-DD format
func Iso8601Date(t time.Time) string {
	return t.Format("2006-01-02")
}
