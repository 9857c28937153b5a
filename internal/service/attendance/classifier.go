package attendance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/attendance"
	"github.com/workpulse-hr/attendance-engine-go/internal/domain/leave"
	"github.com/workpulse-hr/attendance-engine-go/internal/domain/shift"
	"github.com/workpulse-hr/attendance-engine-go/internal/domain/timeline"
	timelineService "github.com/workpulse-hr/attendance-engine-go/internal/service/timeline"
)

// Day-length thresholds in hours. Decimal so the 7.5h boundary is exact.
// A work span runs punch-in to punch-out with breaks nested inside, so the
// tracked total already contains break time; flexible shifts acknowledge
// that with higher thresholds rather than a separate break deduction.
// Fixed constants for now; product may want them derived from the
// configured shift duration eventually.
var (
	standardHalfDayHours = decimal.NewFromInt(5)
	standardFullDayHours = decimal.RequireFromString("7.5")
	flexibleHalfDayHours = decimal.NewFromInt(5)
	flexibleFullDayHours = decimal.NewFromInt(9)

	secondsPerHour = decimal.NewFromInt(3600)
)

// ClassifyInput carries everything Classify needs. The function does no I/O;
// the service layer assembles this from the resolver, the timeline and the
// leave overlay.
type ClassifyInput struct {
	EmployeeID string
	Date       time.Time

	Events []timeline.Event
	Shift  *shift.Resolved
	Recon  timeline.Reconstruction
	Leave  *leave.Leave

	CurrentlyWorking bool
	OnBreak          bool

	// Location is the employee's local time zone, used to project the shift
	// start onto the arrival's calendar date for the lateness check.
	Location *time.Location
}

// Classify turns one reconstructed day into an attendance result: absence or
// leave, arrival and departure, strict no-grace lateness against the
// resolved shift start, and half/full-day status from the tracked hours.
func Classify(in ClassifyInput) attendance.DayResult {
	result := attendance.DayResult{
		EmployeeID:       in.EmployeeID,
		Date:             in.Date,
		Shift:            in.Shift,
		WorkSessions:     in.Recon.WorkSessions,
		BreakSessions:    in.Recon.BreakSessions,
		WorkSeconds:      in.Recon.WorkSeconds,
		BreakSeconds:     in.Recon.BreakSeconds,
		CurrentlyWorking: in.CurrentlyWorking,
		OnBreak:          in.OnBreak,
	}

	if in.Leave != nil {
		result.IsOnLeave = true
		result.IsWFH = in.Leave.Type == leave.TypeWFH
	}

	ordered := timelineService.FilterAndSort(in.Events)
	if len(ordered) == 0 {
		result.IsAbsent = !result.IsOnLeave
		return result
	}

	for _, ev := range ordered {
		if ev.Type == timeline.EventPunchIn {
			ts := ev.Timestamp
			result.ArrivalTime = &ts
			break
		}
	}
	if !in.CurrentlyWorking && !in.OnBreak {
		for i := len(ordered) - 1; i >= 0; i-- {
			if ordered[i].Type == timeline.EventPunchOut {
				ts := ordered[i].Timestamp
				result.DepartureTime = &ts
				break
			}
		}
	}

	// Lateness needs a fixed-start shift and an arrival. Without a resolved
	// shift there is no baseline to judge against, so the flag stays false.
	if in.Shift != nil && !in.Shift.Flexible && result.ArrivalTime != nil {
		loc := in.Location
		if loc == nil {
			loc = time.UTC
		}
		arrival := result.ArrivalTime.In(loc)
		shiftStart := time.Date(
			arrival.Year(), arrival.Month(), arrival.Day(),
			in.Shift.StartTime.Hour(), in.Shift.StartTime.Minute(), 0, 0,
			loc,
		)
		result.IsLate = arrival.After(shiftStart)
	}

	halfAt, fullAt := standardHalfDayHours, standardFullDayHours
	if in.Shift != nil && in.Shift.Flexible {
		halfAt, fullAt = flexibleHalfDayHours, flexibleFullDayHours
	}

	hours := decimal.NewFromInt(in.Recon.WorkSeconds).Div(secondsPerHour)
	switch {
	case hours.GreaterThanOrEqual(fullAt):
		result.IsFullDay = true
	case hours.GreaterThanOrEqual(halfAt):
		result.IsHalfDay = true
	}

	return result
}

// WorkHoursString formats a second total as a decimal hour figure for
// payroll-facing responses.
func WorkHoursString(seconds int64) string {
	return decimal.NewFromInt(seconds).Div(secondsPerHour).Round(2).String()
}
