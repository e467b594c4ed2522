package gtfs_test

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/gtfs-departures/gtfs"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"04:15:00", "04:15:00", true},
		{"25:30:00", "01:30:00", true},
		{"24:00:00", "00:00:00", true},
		{"49:05:10", "01:05:10", true},
		{"7:05:00", "07:05:00", true},
		{" 08:00:00", "08:00:00", true},
		{"", "", false},
		{"abc", "", false},
		{"12:60:00", "", false},
		{"12:00:61", "", false},
		{"12:00", "", false},
		{"-1:00:00", "", false},
		{"12:5:00", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := gtfs.ParseTimeOfDay(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestTimeOfDayOn(t *testing.T) {
	tod := gtfs.NewTimeOfDay(7, 45, 30)
	assert.Equal(t, 7, tod.Hour())
	assert.Equal(t, 45, tod.Minute())
	assert.Equal(t, 30, tod.Second())

	loc, err := time.LoadLocation("Europe/Sofia")
	require.NoError(t, err)
	date := time.Date(2024, time.March, 5, 23, 10, 0, 0, loc)
	assert.Equal(t, time.Date(2024, time.March, 5, 7, 45, 30, 0, loc), tod.On(date, loc))
	assert.Equal(t, gtfs.NewTimeOfDay(23, 10, 0), gtfs.TimeOfDayOf(date))
}

func TestParseDate(t *testing.T) {
	d, err := gtfs.ParseDate("20240115")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "20240115", gtfs.FormatDate(d))

	for _, in := range []string{"2024011X", "20240230", "2024115", "", "202401150", "20241301"} {
		t.Run(in, func(t *testing.T) {
			_, err := gtfs.ParseDate(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, gtfs.ErrMalformedDate))
			if in != "" {
				assert.Contains(t, err.Error(), in)
			}
		})
	}
}
