package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/attendance"
	"github.com/workpulse-hr/attendance-engine-go/internal/domain/leave"
	"github.com/workpulse-hr/attendance-engine-go/internal/domain/shift"
	"github.com/workpulse-hr/attendance-engine-go/internal/domain/timeline"
	shiftService "github.com/workpulse-hr/attendance-engine-go/internal/service/shift"
	timelineService "github.com/workpulse-hr/attendance-engine-go/internal/service/timeline"
)

// maxRangeDays caps ListMyDays so one request cannot replay a year of
// timelines; 92 covers a full quarter.
const maxRangeDays = 92

// liveWindowDays bounds how long a day bucket can stay live. A night shift
// legitimately runs into the next calendar day; anything older than that is
// an abandoned session, not an ongoing one.
const liveWindowDays = 2

type AttendanceServiceImpl struct {
	timelineRepo      timeline.TimelineRepository
	shiftRepo         shift.ShiftRepository
	assignmentRepo    shift.AssignmentRepository
	changeRequestRepo shift.ChangeRequestRepository
	leaveRepo         leave.OverlayRepository
	location          *time.Location
}

func NewAttendanceService(
	timelineRepo timeline.TimelineRepository,
	shiftRepo shift.ShiftRepository,
	assignmentRepo shift.AssignmentRepository,
	changeRequestRepo shift.ChangeRequestRepository,
	leaveRepo leave.OverlayRepository,
	location *time.Location,
) attendance.AttendanceService {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceServiceImpl{
		timelineRepo:      timelineRepo,
		shiftRepo:         shiftRepo,
		assignmentRepo:    assignmentRepo,
		changeRequestRepo: changeRequestRepo,
		leaveRepo:         leaveRepo,
		location:          location,
	}
}

func claimString(ctx context.Context, key string) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	value, ok := claims[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%s claim is missing or invalid", key)
	}
	return value, nil
}

// ReconstructAndClassify implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ReconstructAndClassify(ctx context.Context, employeeID string, date time.Time) (attendance.DayResult, error) {
	companyID, err := claimString(ctx, "company_id")
	if err != nil {
		return attendance.DayResult{}, err
	}
	return s.DeriveDay(ctx, employeeID, companyID, date)
}

// DeriveDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeriveDay(ctx context.Context, employeeID, companyID string, date time.Time) (attendance.DayResult, error) {
	snap, err := shiftService.LoadSnapshot(ctx, s.shiftRepo, s.assignmentRepo, s.changeRequestRepo, employeeID, companyID)
	if err != nil {
		return attendance.DayResult{}, err
	}
	resolved := shiftService.Resolve(snap, date)

	events, err := s.timelineRepo.ListByEmployeeAndDay(ctx, employeeID, date, companyID)
	if err != nil {
		return attendance.DayResult{}, fmt.Errorf("failed to list timeline events: %w", err)
	}
	ordered := timelineService.FilterAndSort(events)

	now := time.Now().UTC()
	working, onBreak := timelineService.LiveFlags(ordered)
	if now.In(s.location).After(date.AddDate(0, 0, liveWindowDays)) {
		working, onBreak = false, false
	}

	overlay, err := s.leaveRepo.ApprovedLeaveOn(ctx, employeeID, date, companyID)
	if err != nil {
		return attendance.DayResult{}, fmt.Errorf("failed to load leave overlay: %w", err)
	}

	recon := timelineService.Reconstruct(ordered, working, onBreak, now)

	return Classify(ClassifyInput{
		EmployeeID:       employeeID,
		Date:             date,
		Events:           ordered,
		Shift:            resolved,
		Recon:            recon,
		Leave:            overlay,
		CurrentlyWorking: working,
		OnBreak:          onBreak,
		Location:         s.location,
	}), nil
}

// GetMyDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyDay(ctx context.Context, date time.Time) (attendance.DayResponse, error) {
	employeeID, err := claimString(ctx, "employee_id")
	if err != nil {
		return attendance.DayResponse{}, err
	}

	result, err := s.ReconstructAndClassify(ctx, employeeID, date)
	if err != nil {
		return attendance.DayResponse{}, err
	}
	return mapDayToResponse(result), nil
}

// ListMyDays implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMyDays(ctx context.Context, start, end time.Time) ([]attendance.DayResponse, error) {
	if end.Before(start) {
		return nil, attendance.ErrInvalidDateRange
	}
	if end.Sub(start) > time.Duration(maxRangeDays)*24*time.Hour {
		return nil, attendance.ErrRangeTooWide
	}

	employeeID, err := claimString(ctx, "employee_id")
	if err != nil {
		return nil, err
	}
	companyID, err := claimString(ctx, "company_id")
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.DayResponse, 0)
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		result, err := s.DeriveDay(ctx, employeeID, companyID, date)
		if err != nil {
			return nil, err
		}
		responses = append(responses, mapDayToResponse(result))
	}
	return responses, nil
}

// GetEmployeeDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetEmployeeDay(ctx context.Context, employeeID string, date time.Time) (attendance.DayResponse, error) {
	companyID, err := claimString(ctx, "company_id")
	if err != nil {
		return attendance.DayResponse{}, err
	}

	result, err := s.DeriveDay(ctx, employeeID, companyID, date)
	if err != nil {
		return attendance.DayResponse{}, err
	}
	return mapDayToResponse(result), nil
}

func mapDayToResponse(result attendance.DayResult) attendance.DayResponse {
	resp := attendance.DayResponse{
		EmployeeID:       result.EmployeeID,
		Date:             result.Date.Format("2006-01-02"),
		WorkSessions:     mapSessions(result.WorkSessions),
		BreakSessions:    mapSessions(result.BreakSessions),
		WorkSeconds:      result.WorkSeconds,
		BreakSeconds:     result.BreakSeconds,
		WorkHours:        WorkHoursString(result.WorkSeconds),
		IsAbsent:         result.IsAbsent,
		IsLate:           result.IsLate,
		IsHalfDay:        result.IsHalfDay,
		IsFullDay:        result.IsFullDay,
		IsWFH:            result.IsWFH,
		IsOnLeave:        result.IsOnLeave,
		CurrentlyWorking: result.CurrentlyWorking,
		OnBreak:          result.OnBreak,
	}

	if result.Shift != nil {
		shiftResp := shift.NewResolvedShiftResponse(*result.Shift)
		resp.Shift = &shiftResp
	}
	if result.ArrivalTime != nil {
		arrival := result.ArrivalTime.Format(time.RFC3339)
		resp.ArrivalTime = &arrival
	}
	if result.DepartureTime != nil {
		departure := result.DepartureTime.Format(time.RFC3339)
		resp.DepartureTime = &departure
	}
	return resp
}

func mapSessions(sessions []timeline.Session) []timeline.SessionResponse {
	out := make([]timeline.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		resp := timeline.SessionResponse{
			Start:           s.Start.Format(time.RFC3339),
			DurationSeconds: s.DurationSeconds,
		}
		if s.End != nil {
			end := s.End.Format(time.RFC3339)
			resp.End = &end
		}
		out = append(out, resp)
	}
	return out
}
