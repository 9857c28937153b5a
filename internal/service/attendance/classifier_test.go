package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/leave"
	"github.com/workpulse-hr/attendance-engine-go/internal/domain/shift"
	"github.com/workpulse-hr/attendance-engine-go/internal/domain/timeline"
)

func ts(day, hour, minute int) time.Time {
	return time.Date(2025, time.October, day, hour, minute, 0, 0, time.UTC)
}

func punch(evType timeline.EventType, at time.Time) timeline.Event {
	return timeline.Event{
		EmployeeID: "employee-1",
		CompanyID:  "company-1",
		Type:       evType,
		Timestamp:  at,
	}
}

func standardShift() *shift.Resolved {
	return &shift.Resolved{
		Definition: shift.Definition{
			ID:        "shift-morning",
			Name:      "Morning",
			StartTime: time.Date(0, time.January, 1, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(0, time.January, 1, 17, 0, 0, 0, time.UTC),
		},
		Source: shift.SourceDefault,
	}
}

func flexibleShift() *shift.Resolved {
	return &shift.Resolved{
		Definition: shift.Definition{
			ID:       "flexible-permanent",
			Name:     "Flexible",
			Flexible: true,
		},
		Source:            shift.SourceFlexiblePermanent,
		FlexiblePermanent: true,
	}
}

func baseInput() ClassifyInput {
	return ClassifyInput{
		EmployeeID: "employee-1",
		Date:       ts(6, 0, 0),
		Location:   time.UTC,
	}
}

func TestClassifyNoEventsIsAbsent(t *testing.T) {
	result := Classify(baseInput())

	assert.True(t, result.IsAbsent)
	assert.Nil(t, result.ArrivalTime)
	assert.Nil(t, result.DepartureTime)
	assert.False(t, result.IsLate)
	assert.False(t, result.IsHalfDay)
	assert.False(t, result.IsFullDay)
}

func TestClassifyLeaveSuppressesAbsence(t *testing.T) {
	in := baseInput()
	in.Leave = &leave.Leave{Type: leave.TypePaid}

	result := Classify(in)

	assert.False(t, result.IsAbsent)
	assert.True(t, result.IsOnLeave)
	assert.False(t, result.IsWFH)
}

func TestClassifyWFHLeave(t *testing.T) {
	in := baseInput()
	in.Leave = &leave.Leave{Type: leave.TypeWFH}

	result := Classify(in)

	assert.True(t, result.IsOnLeave)
	assert.True(t, result.IsWFH)
}

func TestClassifyArrivalAndDeparture(t *testing.T) {
	in := baseInput()
	in.Events = []timeline.Event{
		punch(timeline.EventPunchIn, ts(6, 9, 0)),
		punch(timeline.EventPunchOut, ts(6, 17, 0)),
	}

	result := Classify(in)

	require.NotNil(t, result.ArrivalTime)
	require.NotNil(t, result.DepartureTime)
	assert.Equal(t, ts(6, 9, 0), *result.ArrivalTime)
	assert.Equal(t, ts(6, 17, 0), *result.DepartureTime)
	assert.False(t, result.IsAbsent)
}

func TestClassifyDepartureSuppressedWhileLive(t *testing.T) {
	in := baseInput()
	in.Events = []timeline.Event{
		punch(timeline.EventPunchIn, ts(6, 9, 0)),
	}
	in.CurrentlyWorking = true

	result := Classify(in)

	require.NotNil(t, result.ArrivalTime)
	assert.Nil(t, result.DepartureTime)
}

func TestClassifyNotLateAtExactShiftStart(t *testing.T) {
	in := baseInput()
	in.Shift = standardShift()
	in.Events = []timeline.Event{
		punch(timeline.EventPunchIn, ts(6, 9, 0)),
	}

	result := Classify(in)

	assert.False(t, result.IsLate)
}

func TestClassifyLateOneMinuteAfterStart(t *testing.T) {
	in := baseInput()
	in.Shift = standardShift()
	in.Events = []timeline.Event{
		punch(timeline.EventPunchIn, ts(6, 9, 1)),
	}

	result := Classify(in)

	assert.True(t, result.IsLate)
}

func TestClassifyNoShiftNoLateness(t *testing.T) {
	in := baseInput()
	in.Events = []timeline.Event{
		punch(timeline.EventPunchIn, ts(6, 11, 0)),
	}

	result := Classify(in)

	assert.False(t, result.IsLate)
}

func TestClassifyFlexibleShiftNoLateness(t *testing.T) {
	in := baseInput()
	in.Shift = flexibleShift()
	in.Events = []timeline.Event{
		punch(timeline.EventPunchIn, ts(6, 14, 0)),
	}

	result := Classify(in)

	assert.False(t, result.IsLate)
}

func TestClassifyNightShiftLateness(t *testing.T) {
	night := &shift.Resolved{
		Definition: shift.Definition{
			ID:        "shift-night",
			Name:      "Night",
			StartTime: time.Date(0, time.January, 1, 20, 0, 0, 0, time.UTC),
			EndTime:   time.Date(0, time.January, 1, 5, 0, 0, 0, time.UTC),
		},
		Source: shift.SourceDefault,
	}

	in := baseInput()
	in.Date = ts(5, 0, 0)
	in.Shift = night
	in.Events = []timeline.Event{
		punch(timeline.EventPunchIn, ts(5, 21, 0)),
		punch(timeline.EventPunchOut, ts(6, 4, 30)),
	}
	in.Recon = timeline.Reconstruction{WorkSeconds: 27000} // 7.5h across midnight

	result := Classify(in)

	// Shift start projects onto the arrival's own date: Oct 5 20:00.
	assert.True(t, result.IsLate)
	assert.True(t, result.IsFullDay)
	require.NotNil(t, result.DepartureTime)
	assert.Equal(t, ts(6, 4, 30), *result.DepartureTime)
}

func TestClassifyLatenessInLocalZone(t *testing.T) {
	jakarta := time.FixedZone("UTC+7", 7*60*60)

	in := baseInput()
	in.Shift = standardShift()
	in.Location = jakarta
	// 02:30 UTC is 09:30 in UTC+7, half an hour past the 09:00 start.
	in.Events = []timeline.Event{
		punch(timeline.EventPunchIn, ts(6, 2, 30)),
	}

	result := Classify(in)

	assert.True(t, result.IsLate)
}

func TestClassifyStandardDayThresholds(t *testing.T) {
	cases := []struct {
		name     string
		seconds  int64
		wantHalf bool
		wantFull bool
	}{
		{"below half day", 17999, false, false},
		{"exactly five hours", 5 * 3600, true, false},
		{"just under full day", 27000 - 1, true, false},
		{"exactly seven and a half hours", 27000, false, true},
		{"well over full day", 9 * 3600, false, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := baseInput()
			in.Shift = standardShift()
			in.Events = []timeline.Event{
				punch(timeline.EventPunchIn, ts(6, 9, 0)),
				punch(timeline.EventPunchOut, ts(6, 17, 0)),
			}
			in.Recon = timeline.Reconstruction{WorkSeconds: c.seconds}

			result := Classify(in)

			assert.Equal(t, c.wantHalf, result.IsHalfDay)
			assert.Equal(t, c.wantFull, result.IsFullDay)
		})
	}
}

func TestClassifyFlexibleDayThresholds(t *testing.T) {
	cases := []struct {
		name     string
		seconds  int64
		wantHalf bool
		wantFull bool
	}{
		{"below half day", 17999, false, false},
		{"exactly five hours", 5 * 3600, true, false},
		{"eight hours is still half for flexible", 8 * 3600, true, false},
		{"exactly nine hours", 9 * 3600, false, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := baseInput()
			in.Shift = flexibleShift()
			in.Events = []timeline.Event{
				punch(timeline.EventPunchIn, ts(6, 9, 0)),
				punch(timeline.EventPunchOut, ts(6, 18, 0)),
			}
			in.Recon = timeline.Reconstruction{WorkSeconds: c.seconds}

			result := Classify(in)

			assert.Equal(t, c.wantHalf, result.IsHalfDay)
			assert.Equal(t, c.wantFull, result.IsFullDay)
		})
	}
}

func TestClassifyOneDayFlexibleUsesFlexibleThresholds(t *testing.T) {
	oneDay := standardShift()
	oneDay.Flexible = true
	oneDay.OneDayFlexible = true
	oneDay.Source = shift.SourceDayOverride

	in := baseInput()
	in.Shift = oneDay
	in.Events = []timeline.Event{
		punch(timeline.EventPunchIn, ts(6, 9, 0)),
		punch(timeline.EventPunchOut, ts(6, 17, 0)),
	}
	in.Recon = timeline.Reconstruction{WorkSeconds: 8 * 3600}

	result := Classify(in)

	assert.True(t, result.IsHalfDay)
	assert.False(t, result.IsFullDay)
}

func TestClassifyIgnoresUnknownEventTypes(t *testing.T) {
	in := baseInput()
	in.Events = []timeline.Event{
		punch(timeline.EventType("bogus"), ts(6, 8, 0)),
	}

	result := Classify(in)

	assert.True(t, result.IsAbsent)
}

func TestWorkHoursString(t *testing.T) {
	assert.Equal(t, "7.5", WorkHoursString(27000))
	assert.Equal(t, "8", WorkHoursString(8*3600))
	assert.Equal(t, "0", WorkHoursString(0))
	assert.Equal(t, "0.25", WorkHoursString(900))
}
