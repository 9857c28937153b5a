package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/attendance"
	"github.com/workpulse-hr/attendance-engine-go/internal/domain/timeline"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	snapshotRepo      attendance.SnapshotRepository
	timelineRepo      timeline.TimelineRepository
	location          *time.Location
}

func NewAttendanceJobs(
	attendanceService attendance.AttendanceService,
	snapshotRepo attendance.SnapshotRepository,
	timelineRepo timeline.TimelineRepository,
	location *time.Location,
) *AttendanceJobs {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceJobs{
		attendanceService: attendanceService,
		snapshotRepo:      snapshotRepo,
		timelineRepo:      timelineRepo,
		location:          location,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("finalize_yesterday_attendance", 1*time.Hour, j.FinalizeYesterday)
	scheduler.AddJob("report_stale_open_days", 1*time.Hour, j.ReportStaleOpenDays)
}

// FinalizeYesterday recomputes and persists yesterday's day results for every
// employee with timeline activity. The timeline stays authoritative; the
// snapshot is a reporting read model and rerunning the job is harmless.
func (j *AttendanceJobs) FinalizeYesterday(ctx context.Context) error {
	// Only run in the early-morning window (03:00-03:59 local) so night
	// shifts bucketed to yesterday have ended before the day is finalized.
	if time.Now().In(j.location).Hour() != 3 {
		return nil
	}

	nowLocal := time.Now().In(j.location)
	yesterday := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, j.location).AddDate(0, 0, -1)

	slog.Info("Cron: Starting attendance finalization", "day", yesterday.Format("2006-01-02"))

	employees, err := j.timelineRepo.EmployeesWithEventsOn(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to list employees with events: %w", err)
	}

	finalized := 0
	for _, emp := range employees {
		result, err := j.attendanceService.DeriveDay(ctx, emp.EmployeeID, emp.CompanyID, yesterday)
		if err != nil {
			slog.Error("Cron: Failed to derive attendance day",
				"employee_id", emp.EmployeeID,
				"company_id", emp.CompanyID,
				"day", yesterday.Format("2006-01-02"),
				"error", err)
			continue
		}

		if err := j.snapshotRepo.Upsert(ctx, emp.CompanyID, result); err != nil {
			slog.Error("Cron: Failed to persist attendance snapshot",
				"employee_id", emp.EmployeeID,
				"day", yesterday.Format("2006-01-02"),
				"error", err)
			continue
		}

		finalized++
	}

	slog.Info("Cron: Finalized attendance snapshots", "day", yesterday.Format("2006-01-02"), "count", finalized)
	return nil
}

// ReportStaleOpenDays surfaces day buckets whose last event left a session
// open well past any plausible shift end. Nothing is written back; the
// reconstructor already excludes abandoned sessions from totals, so this job
// only gives supervisors a trail to chase missing punch-outs.
func (j *AttendanceJobs) ReportStaleOpenDays(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-48 * time.Hour)

	openDays, err := j.timelineRepo.ListOpenDays(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list open days: %w", err)
	}

	for _, od := range openDays {
		slog.Warn("Cron: Day bucket left open without punch out",
			"employee_id", od.EmployeeID,
			"company_id", od.CompanyID,
			"day", od.Day.Format("2006-01-02"),
			"last_event", od.LastEvent)
	}

	if len(openDays) > 0 {
		slog.Info("Cron: Stale open day report complete", "count", len(openDays))
	}
	return nil
}
