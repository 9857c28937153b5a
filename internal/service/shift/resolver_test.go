package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/shift"
)

func testShift(id, name string, startHour, endHour int) shift.Definition {
	return shift.Definition{
		ID:            id,
		CompanyID:     "company-1",
		Name:          name,
		StartTime:     timeOfDay(startHour, 0),
		EndTime:       timeOfDay(endHour, 0),
		DurationHours: 8,
	}
}

func testSnapshot() shift.Snapshot {
	morning := testShift("shift-morning", "Morning", 9, 17)
	evening := testShift("shift-evening", "Evening", 14, 22)
	night := testShift("shift-night", "Night", 20, 5)
	house := testShift("shift-house", "House Default", 8, 16)
	house.IsHouseDefault = true

	return shift.Snapshot{
		Assignment: &shift.Assignment{
			ID:         "assignment-1",
			EmployeeID: "employee-1",
			CompanyID:  "company-1",
		},
		Shifts: map[string]shift.Definition{
			morning.ID: morning,
			evening.ID: evening,
			night.ID:   night,
			house.ID:   house,
		},
		HouseDefault: &house,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveEmptySnapshot(t *testing.T) {
	resolved := Resolve(shift.Snapshot{}, date(2025, time.October, 6))
	assert.Nil(t, resolved)
}

func TestResolveHouseDefaultWhenNothingConfigured(t *testing.T) {
	snap := testSnapshot()

	resolved := Resolve(snap, date(2025, time.October, 6))

	require.NotNil(t, resolved)
	assert.Equal(t, shift.SourceHouseDefault, resolved.Source)
	assert.Equal(t, "shift-house", resolved.ID)
}

func TestResolveDefaultShiftBeatsHouseDefault(t *testing.T) {
	snap := testSnapshot()
	defaultID := "shift-morning"
	snap.Assignment.DefaultShiftID = &defaultID

	resolved := Resolve(snap, date(2025, time.October, 6))

	require.NotNil(t, resolved)
	assert.Equal(t, shift.SourceDefault, resolved.Source)
	assert.Equal(t, "shift-morning", resolved.ID)
}

func TestResolveWeeklyPatternBeatsDefault(t *testing.T) {
	snap := testSnapshot()
	defaultID := "shift-morning"
	snap.Assignment.DefaultShiftID = &defaultID
	snap.Assignment.WeeklyPattern = map[time.Weekday]string{
		time.Monday: "shift-evening",
	}

	// 2025-10-06 is a Monday.
	resolved := Resolve(snap, date(2025, time.October, 6))
	require.NotNil(t, resolved)
	assert.Equal(t, shift.SourceWeeklyPattern, resolved.Source)
	assert.Equal(t, "shift-evening", resolved.ID)

	// Tuesday has no pattern entry, so the default applies.
	resolved = Resolve(snap, date(2025, time.October, 7))
	require.NotNil(t, resolved)
	assert.Equal(t, shift.SourceDefault, resolved.Source)
}

func TestResolvePermanentOverrideBeatsPattern(t *testing.T) {
	snap := testSnapshot()
	snap.Assignment.WeeklyPattern = map[time.Weekday]string{
		time.Monday: "shift-morning",
	}
	snap.Assignment.PermanentOverrides = []shift.PermanentOverride{
		{
			ID:            "override-1",
			AssignmentID:  "assignment-1",
			ShiftID:       "shift-evening",
			EffectiveFrom: date(2025, time.October, 1),
		},
	}

	resolved := Resolve(snap, date(2025, time.October, 6))

	require.NotNil(t, resolved)
	assert.Equal(t, shift.SourcePermanentOverride, resolved.Source)
	assert.Equal(t, "shift-evening", resolved.ID)
}

func TestResolvePermanentOverrideMostRecentWins(t *testing.T) {
	snap := testSnapshot()
	snap.Assignment.PermanentOverrides = []shift.PermanentOverride{
		{ID: "override-1", ShiftID: "shift-morning", EffectiveFrom: date(2025, time.September, 1)},
		{ID: "override-2", ShiftID: "shift-evening", EffectiveFrom: date(2025, time.October, 1)},
	}

	resolved := Resolve(snap, date(2025, time.October, 6))
	require.NotNil(t, resolved)
	assert.Equal(t, "shift-evening", resolved.ID)

	// Before the second override takes effect the first one still applies.
	resolved = Resolve(snap, date(2025, time.September, 15))
	require.NotNil(t, resolved)
	assert.Equal(t, "shift-morning", resolved.ID)
}

func TestResolvePermanentOverrideSameDateLatestCreatedWins(t *testing.T) {
	snap := testSnapshot()
	snap.Assignment.PermanentOverrides = []shift.PermanentOverride{
		{
			ID:            "override-1",
			ShiftID:       "shift-morning",
			EffectiveFrom: date(2025, time.October, 1),
			CreatedAt:     time.Date(2025, time.September, 30, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:            "override-2",
			ShiftID:       "shift-evening",
			EffectiveFrom: date(2025, time.October, 1),
			CreatedAt:     time.Date(2025, time.September, 30, 15, 0, 0, 0, time.UTC),
		},
	}

	resolved := Resolve(snap, date(2025, time.October, 6))

	require.NotNil(t, resolved)
	assert.Equal(t, "shift-evening", resolved.ID)
}

func TestResolvePermanentOverrideWeekdayScoped(t *testing.T) {
	snap := testSnapshot()
	defaultID := "shift-morning"
	snap.Assignment.DefaultShiftID = &defaultID
	snap.Assignment.PermanentOverrides = []shift.PermanentOverride{
		{
			ID:            "override-1",
			ShiftID:       "shift-evening",
			EffectiveFrom: date(2025, time.October, 1),
			Weekdays:      []time.Weekday{time.Monday, time.Wednesday},
		},
	}

	// Monday: override applies.
	resolved := Resolve(snap, date(2025, time.October, 6))
	require.NotNil(t, resolved)
	assert.Equal(t, shift.SourcePermanentOverride, resolved.Source)

	// Tuesday: falls through to the default.
	resolved = Resolve(snap, date(2025, time.October, 7))
	require.NotNil(t, resolved)
	assert.Equal(t, shift.SourceDefault, resolved.Source)
}

func TestResolveTemporaryRequestBeatsPermanentOverride(t *testing.T) {
	snap := testSnapshot()
	snap.Assignment.PermanentOverrides = []shift.PermanentOverride{
		{ID: "override-1", ShiftID: "shift-morning", EffectiveFrom: date(2025, time.January, 1)},
	}
	end := date(2025, time.October, 10)
	snap.TemporaryRequests = []shift.ChangeRequest{
		{
			ID:        "request-1",
			ShiftID:   "shift-night",
			Type:      shift.RequestTemporary,
			Status:    shift.RequestApproved,
			StartDate: date(2025, time.October, 1),
			EndDate:   &end,
		},
	}

	resolved := Resolve(snap, date(2025, time.October, 6))
	require.NotNil(t, resolved)
	assert.Equal(t, shift.SourceTemporaryRequest, resolved.Source)
	assert.Equal(t, "shift-night", resolved.ID)

	// Outside the request range the permanent override applies again.
	resolved = Resolve(snap, date(2025, time.October, 11))
	require.NotNil(t, resolved)
	assert.Equal(t, shift.SourcePermanentOverride, resolved.Source)
}

func TestResolveTemporaryRequestBrokenReferenceFallsThrough(t *testing.T) {
	snap := testSnapshot()
	defaultID := "shift-morning"
	snap.Assignment.DefaultShiftID = &defaultID
	snap.TemporaryRequests = []shift.ChangeRequest{
		{
			ID:        "request-1",
			ShiftID:   "shift-deleted",
			Type:      shift.RequestTemporary,
			Status:    shift.RequestApproved,
			StartDate: date(2025, time.October, 1),
		},
	}

	resolved := Resolve(snap, date(2025, time.October, 6))

	require.NotNil(t, resolved)
	assert.Equal(t, shift.SourceDefault, resolved.Source)
}

func TestResolveFlexiblePermanentBeatsTemporaryRequest(t *testing.T) {
	snap := testSnapshot()
	snap.Assignment.FlexiblePermanent = true
	snap.TemporaryRequests = []shift.ChangeRequest{
		{
			ID:        "request-1",
			ShiftID:   "shift-night",
			Type:      shift.RequestTemporary,
			Status:    shift.RequestApproved,
			StartDate: date(2025, time.October, 1),
		},
	}

	resolved := Resolve(snap, date(2025, time.October, 6))

	require.NotNil(t, resolved)
	assert.Equal(t, shift.SourceFlexiblePermanent, resolved.Source)
	assert.True(t, resolved.Flexible)
	assert.True(t, resolved.FlexiblePermanent)
	assert.False(t, resolved.OneDayFlexible)
}

func TestResolveDayOverrideBeatsEverything(t *testing.T) {
	snap := testSnapshot()
	snap.Assignment.FlexiblePermanent = true
	snap.Assignment.DayOverrides = map[string]shift.DayOverride{
		"2025-10-06": {
			Date:          "2025-10-06",
			StartTime:     timeOfDay(10, 0),
			EndTime:       timeOfDay(18, 0),
			DurationHours: 8,
		},
	}

	resolved := Resolve(snap, date(2025, time.October, 6))

	require.NotNil(t, resolved)
	assert.Equal(t, shift.SourceDayOverride, resolved.Source)
	assert.Equal(t, 10, resolved.StartTime.Hour())
	assert.False(t, resolved.OneDayFlexible)

	// Other dates fall back to the flexible-permanent mode.
	resolved = Resolve(snap, date(2025, time.October, 7))
	require.NotNil(t, resolved)
	assert.Equal(t, shift.SourceFlexiblePermanent, resolved.Source)
}

func TestResolveOneDayFlexibleForStandardEmployee(t *testing.T) {
	snap := testSnapshot()
	snap.Assignment.DayOverrides = map[string]shift.DayOverride{
		"2025-10-06": {
			Date:     "2025-10-06",
			Flexible: true,
		},
	}

	resolved := Resolve(snap, date(2025, time.October, 6))

	require.NotNil(t, resolved)
	assert.Equal(t, shift.SourceDayOverride, resolved.Source)
	assert.True(t, resolved.OneDayFlexible)
	assert.False(t, resolved.FlexiblePermanent)
}

func TestResolveNoAssignmentUsesHouseDefault(t *testing.T) {
	snap := testSnapshot()
	snap.Assignment = nil

	resolved := Resolve(snap, date(2025, time.October, 6))

	require.NotNil(t, resolved)
	assert.Equal(t, shift.SourceHouseDefault, resolved.Source)
}
