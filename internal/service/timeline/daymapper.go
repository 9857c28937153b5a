package timeline

import (
	"time"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/shift"
)

// AttendanceDayFor decides which attendance-day bucket a punch belongs to.
// Day shifts bucket to the punch's own calendar date. For night shifts
// (end hour < start hour) a punch before the end hour belongs to the
// previous day's instance; a punch at or after the start hour belongs to
// the punch's own date. Punches in the dead zone between end and start hour
// also bucket to the punch's own date — an unusually early arrival is kept,
// not rejected.
//
// The decision is made once, when the event is recorded; later shift
// configuration changes never rebucket stored events.
func AttendanceDayFor(ts time.Time, def *shift.Definition) time.Time {
	day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())

	if def == nil || !def.IsNightShift() {
		return day
	}

	switch {
	case ts.Hour() < def.EndTime.Hour():
		return day.AddDate(0, 0, -1)
	case ts.Hour() >= def.StartTime.Hour():
		return day
	default:
		// Dead zone between end hour and start hour.
		return day
	}
}
