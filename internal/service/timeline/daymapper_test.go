package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/shift"
)

func nightShift() *shift.Definition {
	return &shift.Definition{
		ID:        "shift-night",
		Name:      "Night",
		StartTime: time.Date(0, time.January, 1, 20, 0, 0, 0, time.UTC),
		EndTime:   time.Date(0, time.January, 1, 5, 0, 0, 0, time.UTC),
	}
}

func dayShift() *shift.Definition {
	return &shift.Definition{
		ID:        "shift-day",
		Name:      "Day",
		StartTime: time.Date(0, time.January, 1, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(0, time.January, 1, 17, 0, 0, 0, time.UTC),
	}
}

func TestAttendanceDayForDayShift(t *testing.T) {
	ts := time.Date(2025, time.October, 6, 9, 30, 0, 0, time.UTC)

	day := AttendanceDayFor(ts, dayShift())

	assert.Equal(t, time.Date(2025, time.October, 6, 0, 0, 0, 0, time.UTC), day)
}

func TestAttendanceDayForNoShift(t *testing.T) {
	ts := time.Date(2025, time.October, 6, 2, 0, 0, 0, time.UTC)

	day := AttendanceDayFor(ts, nil)

	assert.Equal(t, time.Date(2025, time.October, 6, 0, 0, 0, 0, time.UTC), day)
}

func TestAttendanceDayForNightShift(t *testing.T) {
	cases := []struct {
		name string
		hour int
		want int // day of month
	}{
		{"before end hour maps to previous day", 2, 5},
		{"last hour before end maps to previous day", 4, 5},
		{"at end hour maps to own day", 5, 6},
		{"dead zone maps to own day", 12, 6},
		{"at start hour maps to own day", 20, 6},
		{"after start hour maps to own day", 23, 6},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ts := time.Date(2025, time.October, 6, c.hour, 15, 0, 0, time.UTC)
			day := AttendanceDayFor(ts, nightShift())
			assert.Equal(t, time.Date(2025, time.October, c.want, 0, 0, 0, 0, time.UTC), day)
		})
	}
}

func TestAttendanceDayForKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	ts := time.Date(2025, time.October, 6, 21, 0, 0, 0, loc)

	day := AttendanceDayFor(ts, nightShift())

	assert.Equal(t, time.Date(2025, time.October, 6, 0, 0, 0, 0, loc), day)
	assert.Equal(t, loc, day.Location())
}
