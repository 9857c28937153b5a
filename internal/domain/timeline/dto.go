package timeline

import (
	"time"

	"github.com/workpulse-hr/attendance-engine-go/internal/pkg/validator"
)

type RecordEventRequest struct {
	Type string `json:"type"`

	// Timestamp is optional; kiosks that buffer punches offline send the
	// original punch time as RFC3339. Empty means "now".
	Timestamp string `json:"timestamp,omitempty"`
}

func (r *RecordEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, err := ParseEventType(r.Type); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: Punch In, Punch Out, Break Start, Resume Work",
		})
	}
	if r.Timestamp != "" {
		if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be a valid RFC3339 datetime",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EventResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Day        string `json:"day"`
	Type       string `json:"type"`
	Timestamp  string `json:"timestamp"`
}

func NewEventResponse(ev Event) EventResponse {
	return EventResponse{
		ID:         ev.ID,
		EmployeeID: ev.EmployeeID,
		Day:        ev.Day.Format("2006-01-02"),
		Type:       string(ev.Type),
		Timestamp:  ev.Timestamp.Format(time.RFC3339),
	}
}

type SessionResponse struct {
	Start           string  `json:"start"`
	End             *string `json:"end,omitempty"`
	DurationSeconds int64   `json:"duration_seconds"`
}

type DayTimelineResponse struct {
	Events           []EventResponse `json:"events"`
	CurrentlyWorking bool            `json:"currently_working"`
	OnBreak          bool            `json:"on_break"`
}
