package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/timeline"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, time.October, 6, hour, minute, 0, 0, time.UTC)
}

func event(evType timeline.EventType, ts time.Time) timeline.Event {
	return timeline.Event{
		EmployeeID: "employee-1",
		CompanyID:  "company-1",
		Type:       evType,
		Timestamp:  ts,
	}
}

func TestReconstructSimpleDay(t *testing.T) {
	events := []timeline.Event{
		event(timeline.EventPunchIn, at(9, 0)),
		event(timeline.EventBreakStart, at(12, 0)),
		event(timeline.EventResumeWork, at(13, 0)),
		event(timeline.EventPunchOut, at(17, 0)),
	}

	recon := Reconstruct(events, false, false, at(23, 0))

	require.Len(t, recon.WorkSessions, 1)
	require.Len(t, recon.BreakSessions, 1)
	assert.Equal(t, int64(8*3600), recon.WorkSeconds)
	assert.Equal(t, int64(3600), recon.BreakSeconds)
}

func TestReconstructOutOfOrderEvents(t *testing.T) {
	events := []timeline.Event{
		event(timeline.EventPunchOut, at(17, 0)),
		event(timeline.EventPunchIn, at(9, 0)),
	}

	recon := Reconstruct(events, false, false, at(23, 0))

	require.Len(t, recon.WorkSessions, 1)
	assert.Equal(t, int64(8*3600), recon.WorkSeconds)
}

func TestReconstructDuplicatePunchInAbsorbed(t *testing.T) {
	events := []timeline.Event{
		event(timeline.EventPunchIn, at(9, 0)),
		event(timeline.EventPunchIn, at(9, 5)),
		event(timeline.EventPunchOut, at(17, 0)),
	}

	recon := Reconstruct(events, false, false, at(23, 0))

	require.Len(t, recon.WorkSessions, 1)
	assert.Equal(t, at(9, 0), recon.WorkSessions[0].Start)
	assert.Equal(t, int64(8*3600), recon.WorkSeconds)
}

func TestReconstructIdempotent(t *testing.T) {
	events := []timeline.Event{
		event(timeline.EventPunchIn, at(9, 0)),
		event(timeline.EventBreakStart, at(12, 0)),
		event(timeline.EventResumeWork, at(12, 30)),
		event(timeline.EventPunchOut, at(17, 0)),
	}
	now := at(23, 0)

	first := Reconstruct(events, false, false, now)
	second := Reconstruct(events, false, false, now)

	assert.Equal(t, first, second)
}

func TestReconstructUnknownEventTypeSkipped(t *testing.T) {
	events := []timeline.Event{
		event(timeline.EventPunchIn, at(9, 0)),
		event(timeline.EventType("Coffee Run"), at(10, 0)),
		event(timeline.EventPunchOut, at(17, 0)),
	}

	recon := Reconstruct(events, false, false, at(23, 0))

	require.Len(t, recon.WorkSessions, 1)
	assert.Equal(t, int64(8*3600), recon.WorkSeconds)
}

func TestReconstructBreakWithoutWorkIgnored(t *testing.T) {
	events := []timeline.Event{
		event(timeline.EventBreakStart, at(8, 0)),
		event(timeline.EventPunchIn, at(9, 0)),
		event(timeline.EventPunchOut, at(17, 0)),
	}

	recon := Reconstruct(events, false, false, at(23, 0))

	assert.Empty(t, recon.BreakSessions)
	assert.Equal(t, int64(0), recon.BreakSeconds)
}

func TestReconstructPunchOutClosesOpenBreak(t *testing.T) {
	events := []timeline.Event{
		event(timeline.EventPunchIn, at(9, 0)),
		event(timeline.EventBreakStart, at(12, 0)),
		event(timeline.EventPunchOut, at(13, 0)),
	}

	recon := Reconstruct(events, false, false, at(23, 0))

	require.Len(t, recon.BreakSessions, 1)
	require.NotNil(t, recon.BreakSessions[0].End)
	assert.Equal(t, at(13, 0), *recon.BreakSessions[0].End)
	assert.Equal(t, int64(3600), recon.BreakSeconds)
	assert.Equal(t, int64(4*3600), recon.WorkSeconds)
}

func TestReconstructOngoingWorkCountsToNow(t *testing.T) {
	events := []timeline.Event{
		event(timeline.EventPunchIn, at(9, 0)),
	}

	recon := Reconstruct(events, true, false, at(12, 0))

	require.Len(t, recon.WorkSessions, 1)
	assert.Nil(t, recon.WorkSessions[0].End)
	assert.Equal(t, int64(3*3600), recon.WorkSeconds)
}

func TestReconstructAbandonedOpenSessionExcludedFromTotal(t *testing.T) {
	events := []timeline.Event{
		event(timeline.EventPunchIn, at(9, 0)),
	}

	// Not live: the day ended without a punch out.
	recon := Reconstruct(events, false, false, at(23, 0))

	require.Len(t, recon.WorkSessions, 1)
	assert.Nil(t, recon.WorkSessions[0].End)
	assert.Equal(t, int64(0), recon.WorkSessions[0].DurationSeconds)
	assert.Equal(t, int64(0), recon.WorkSeconds)
}

func TestReconstructInvertedSessionDiscarded(t *testing.T) {
	events := []timeline.Event{
		event(timeline.EventPunchIn, at(17, 0)),
		event(timeline.EventPunchOut, at(17, 0)),
	}

	recon := Reconstruct(events, false, false, at(23, 0))

	assert.Empty(t, recon.WorkSessions)
	assert.Equal(t, int64(0), recon.WorkSeconds)
}

func TestReconstructBreakSessionCapped(t *testing.T) {
	events := []timeline.Event{
		event(timeline.EventPunchIn, at(0, 0)),
		event(timeline.EventBreakStart, at(1, 0)),
		event(timeline.EventResumeWork, at(7, 0)), // 6h break, above the 4h ceiling
		event(timeline.EventPunchOut, at(8, 0)),
	}

	recon := Reconstruct(events, false, false, at(23, 0))

	require.Len(t, recon.BreakSessions, 1)
	assert.Equal(t, MaxBreakSessionSeconds, recon.BreakSeconds)
}

func TestReconstructDailyWorkTotalCapped(t *testing.T) {
	// Two valid sessions of 23h and 5h; each is under the per-session
	// ceiling but the day total is not.
	events := []timeline.Event{
		event(timeline.EventPunchIn, at(0, 0)),
		event(timeline.EventPunchOut, at(23, 0)),
		event(timeline.EventPunchIn, at(23, 0)),
		event(timeline.EventPunchOut, time.Date(2025, time.October, 7, 4, 0, 0, 0, time.UTC)),
	}

	recon := Reconstruct(events, false, false, time.Date(2025, time.October, 7, 12, 0, 0, 0, time.UTC))

	require.Len(t, recon.WorkSessions, 2)
	assert.Equal(t, MaxDailyWorkSeconds, recon.WorkSeconds)
}

func TestReconstructMultipleBreaks(t *testing.T) {
	events := []timeline.Event{
		event(timeline.EventPunchIn, at(9, 0)),
		event(timeline.EventBreakStart, at(11, 0)),
		event(timeline.EventResumeWork, at(11, 15)),
		event(timeline.EventBreakStart, at(15, 0)),
		event(timeline.EventResumeWork, at(15, 45)),
		event(timeline.EventPunchOut, at(18, 0)),
	}

	recon := Reconstruct(events, false, false, at(23, 0))

	require.Len(t, recon.BreakSessions, 2)
	assert.Equal(t, int64(3600), recon.BreakSeconds)
	assert.Equal(t, int64(9*3600), recon.WorkSeconds)
}

func TestFilterAndSortStable(t *testing.T) {
	events := []timeline.Event{
		{ID: "b", Type: timeline.EventPunchOut, Timestamp: at(17, 0)},
		{ID: "a", Type: timeline.EventPunchIn, Timestamp: at(9, 0)},
		{ID: "c", Type: timeline.EventType("bogus"), Timestamp: at(10, 0)},
	}

	ordered := FilterAndSort(events)

	require.Len(t, ordered, 2)
	assert.Equal(t, "a", ordered[0].ID)
	assert.Equal(t, "b", ordered[1].ID)
}

func TestLiveFlags(t *testing.T) {
	cases := []struct {
		name        string
		events      []timeline.Event
		wantWorking bool
		wantOnBreak bool
	}{
		{"empty", nil, false, false},
		{"after punch in", []timeline.Event{event(timeline.EventPunchIn, at(9, 0))}, true, false},
		{"after break start", []timeline.Event{
			event(timeline.EventPunchIn, at(9, 0)),
			event(timeline.EventBreakStart, at(12, 0)),
		}, true, true},
		{"after resume", []timeline.Event{
			event(timeline.EventPunchIn, at(9, 0)),
			event(timeline.EventBreakStart, at(12, 0)),
			event(timeline.EventResumeWork, at(13, 0)),
		}, true, false},
		{"after punch out", []timeline.Event{
			event(timeline.EventPunchIn, at(9, 0)),
			event(timeline.EventPunchOut, at(17, 0)),
		}, false, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			working, onBreak := LiveFlags(c.events)
			assert.Equal(t, c.wantWorking, working)
			assert.Equal(t, c.wantOnBreak, onBreak)
		})
	}
}
