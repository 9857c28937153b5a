package timeline

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/shift"
	"github.com/workpulse-hr/attendance-engine-go/internal/domain/timeline"
	"github.com/workpulse-hr/attendance-engine-go/internal/pkg/validator"
	shiftService "github.com/workpulse-hr/attendance-engine-go/internal/service/shift"
)

type TimelineServiceImpl struct {
	timeline.TimelineRepository
	shiftRepo         shift.ShiftRepository
	assignmentRepo    shift.AssignmentRepository
	changeRequestRepo shift.ChangeRequestRepository
	location          *time.Location
}

func NewTimelineService(
	timelineRepo timeline.TimelineRepository,
	shiftRepo shift.ShiftRepository,
	assignmentRepo shift.AssignmentRepository,
	changeRequestRepo shift.ChangeRequestRepository,
	location *time.Location,
) timeline.TimelineService {
	if location == nil {
		location = time.UTC
	}
	return &TimelineServiceImpl{
		TimelineRepository: timelineRepo,
		shiftRepo:          shiftRepo,
		assignmentRepo:     assignmentRepo,
		changeRequestRepo:  changeRequestRepo,
		location:           location,
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

// RecordEvent implements timeline.TimelineService.
func (s *TimelineServiceImpl) RecordEvent(ctx context.Context, req timeline.RecordEventRequest) (timeline.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return timeline.EventResponse{}, err
	}

	employeeID, err := claimString(ctx, "employee_id")
	if err != nil {
		return timeline.EventResponse{}, err
	}
	companyID, err := claimString(ctx, "company_id")
	if err != nil {
		return timeline.EventResponse{}, err
	}

	eventType, err := timeline.ParseEventType(req.Type)
	if err != nil {
		return timeline.EventResponse{}, err
	}

	ts := time.Now().UTC()
	if req.Timestamp != "" {
		parsed, _ := validator.IsValidDateTime(req.Timestamp)
		ts = parsed.UTC()
	}

	// The day bucket is decided once, against the shift in force on the
	// punch's own calendar date. Later shift changes never rebucket events.
	local := ts.In(s.location)
	snap, err := shiftService.LoadSnapshot(ctx, s.shiftRepo, s.assignmentRepo, s.changeRequestRepo, employeeID, companyID)
	if err != nil {
		return timeline.EventResponse{}, err
	}

	var def *shift.Definition
	if resolved := shiftService.Resolve(snap, local); resolved != nil {
		def = &resolved.Definition
	}
	day := AttendanceDayFor(local, def)

	last, err := s.TimelineRepository.LastEventForDay(ctx, employeeID, day, companyID)
	if err != nil {
		return timeline.EventResponse{}, fmt.Errorf("failed to load last event: %w", err)
	}
	if err := checkSequence(last, eventType); err != nil {
		return timeline.EventResponse{}, err
	}

	created, err := s.TimelineRepository.Append(ctx, timeline.Event{
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Day:        day,
		Type:       eventType,
		Timestamp:  ts,
	})
	if err != nil {
		return timeline.EventResponse{}, fmt.Errorf("failed to append event: %w", err)
	}

	return timeline.NewEventResponse(created), nil
}

// GetDay implements timeline.TimelineService.
func (s *TimelineServiceImpl) GetDay(ctx context.Context, employeeID string, day time.Time) (timeline.DayTimeline, error) {
	companyID, err := claimString(ctx, "company_id")
	if err != nil {
		return timeline.DayTimeline{}, err
	}

	events, err := s.TimelineRepository.ListByEmployeeAndDay(ctx, employeeID, day, companyID)
	if err != nil {
		return timeline.DayTimeline{}, fmt.Errorf("failed to list events: %w", err)
	}

	ordered := FilterAndSort(events)
	working, onBreak := LiveFlags(ordered)

	return timeline.DayTimeline{
		Events:           ordered,
		CurrentlyWorking: working,
		OnBreak:          onBreak,
	}, nil
}

// LiveFlags derives the live status of a day bucket from its last valid
// event. Punch In and Resume Work leave the employee working; Break Start
// leaves them working and on break; Punch Out or an empty bucket leaves
// them off the clock.
func LiveFlags(ordered []timeline.Event) (currentlyWorking, onBreak bool) {
	if len(ordered) == 0 {
		return false, false
	}
	switch ordered[len(ordered)-1].Type {
	case timeline.EventPunchIn, timeline.EventResumeWork:
		return true, false
	case timeline.EventBreakStart:
		return true, true
	default:
		return false, false
	}
}

// checkSequence rejects punches that make no sense after the bucket's last
// event. Guards apply at record time only; historical data is replayed
// leniently by the reconstructor.
func checkSequence(last *timeline.Event, next timeline.EventType) error {
	working, onBreak := false, false
	if last != nil {
		working, onBreak = LiveFlags([]timeline.Event{*last})
	}

	switch next {
	case timeline.EventPunchIn:
		if working {
			return timeline.ErrAlreadyPunchedIn
		}
	case timeline.EventPunchOut:
		if !working {
			return timeline.ErrNotPunchedIn
		}
	case timeline.EventBreakStart:
		if !working {
			return timeline.ErrNotPunchedIn
		}
		if onBreak {
			return timeline.ErrAlreadyOnBreak
		}
	case timeline.EventResumeWork:
		if !onBreak {
			return timeline.ErrNotOnBreak
		}
	}
	return nil
}
