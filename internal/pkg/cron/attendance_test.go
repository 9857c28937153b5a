package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/attendance"
	"github.com/workpulse-hr/attendance-engine-go/internal/domain/timeline"
)

type stubTimelineRepo struct {
	openDays      []timeline.OpenDay
	openDayCalls  int
	openDayCutoff time.Time
	employees     []timeline.DayEmployee
}

func (s *stubTimelineRepo) Append(ctx context.Context, event timeline.Event) (timeline.Event, error) {
	return event, nil
}

func (s *stubTimelineRepo) ListByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time, companyID string) ([]timeline.Event, error) {
	return nil, nil
}

func (s *stubTimelineRepo) LastEventForDay(ctx context.Context, employeeID string, day time.Time, companyID string) (*timeline.Event, error) {
	return nil, nil
}

func (s *stubTimelineRepo) EmployeesWithEventsOn(ctx context.Context, day time.Time) ([]timeline.DayEmployee, error) {
	return s.employees, nil
}

func (s *stubTimelineRepo) ListOpenDays(ctx context.Context, before time.Time) ([]timeline.OpenDay, error) {
	s.openDayCalls++
	s.openDayCutoff = before
	return s.openDays, nil
}

type stubAttendanceService struct {
	derivedEmployeeIDs []string
}

func (s *stubAttendanceService) ReconstructAndClassify(ctx context.Context, employeeID string, date time.Time) (attendance.DayResult, error) {
	return attendance.DayResult{}, nil
}

func (s *stubAttendanceService) DeriveDay(ctx context.Context, employeeID, companyID string, date time.Time) (attendance.DayResult, error) {
	s.derivedEmployeeIDs = append(s.derivedEmployeeIDs, employeeID)
	return attendance.DayResult{EmployeeID: employeeID, Date: date}, nil
}

func (s *stubAttendanceService) GetMyDay(ctx context.Context, date time.Time) (attendance.DayResponse, error) {
	return attendance.DayResponse{}, nil
}

func (s *stubAttendanceService) ListMyDays(ctx context.Context, start, end time.Time) ([]attendance.DayResponse, error) {
	return nil, nil
}

func (s *stubAttendanceService) GetEmployeeDay(ctx context.Context, employeeID string, date time.Time) (attendance.DayResponse, error) {
	return attendance.DayResponse{}, nil
}

type stubSnapshotRepo struct {
	upserts int
}

func (s *stubSnapshotRepo) Upsert(ctx context.Context, companyID string, result attendance.DayResult) error {
	s.upserts++
	return nil
}

func TestReportStaleOpenDays(t *testing.T) {
	repo := &stubTimelineRepo{
		openDays: []timeline.OpenDay{
			{EmployeeID: "employee-1", CompanyID: "company-1", Day: time.Date(2025, time.October, 4, 0, 0, 0, 0, time.UTC)},
			{EmployeeID: "employee-2", CompanyID: "company-1", Day: time.Date(2025, time.October, 3, 0, 0, 0, 0, time.UTC)},
		},
	}
	jobs := NewAttendanceJobs(&stubAttendanceService{}, &stubSnapshotRepo{}, repo, time.UTC)

	err := jobs.ReportStaleOpenDays(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, repo.openDayCalls)
	assert.WithinDuration(t, time.Now().UTC().Add(-48*time.Hour), repo.openDayCutoff, time.Minute)
}

func TestRunOnceExecutesRegisteredJobs(t *testing.T) {
	repo := &stubTimelineRepo{}
	jobs := NewAttendanceJobs(&stubAttendanceService{}, &stubSnapshotRepo{}, repo, time.UTC)

	scheduler := NewScheduler()
	jobs.RegisterJobs(scheduler)
	scheduler.RunOnce(context.Background())

	// The stale open day sweep ran and recorded its cutoff.
	assert.Equal(t, 1, repo.openDayCalls)
	assert.False(t, repo.openDayCutoff.IsZero())
}
