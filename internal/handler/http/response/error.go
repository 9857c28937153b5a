package response

import (
	"errors"
	"net/http"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/attendance"
	"github.com/workpulse-hr/attendance-engine-go/internal/domain/shift"
	"github.com/workpulse-hr/attendance-engine-go/internal/domain/timeline"
	"github.com/workpulse-hr/attendance-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Shift domain errors
	switch {
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrShiftNameExists):
		Conflict(w, "Shift name already exists")
	case errors.Is(err, shift.ErrShiftInUse):
		Conflict(w, "Shift is referenced and cannot be deleted")
	case errors.Is(err, shift.ErrAssignmentNotFound):
		NotFound(w, "Shift assignment not found")
	case errors.Is(err, shift.ErrDayOverrideNotFound):
		NotFound(w, "Day override not found")
	case errors.Is(err, shift.ErrChangeRequestNotFound):
		NotFound(w, "Shift change request not found")
	case errors.Is(err, shift.ErrChangeRequestAlreadyProcessed):
		Conflict(w, "Shift change request already processed")
	case errors.Is(err, shift.ErrInvalidRequestType):
		BadRequest(w, "Invalid shift change request type", nil)
	case errors.Is(err, shift.ErrInvalidDateFormat):
		BadRequest(w, "Invalid date format, expected YYYY-MM-DD", nil)
	case errors.Is(err, shift.ErrInvalidTimeFormat):
		BadRequest(w, "Invalid time format, expected HH:MM", nil)
	case errors.Is(err, shift.ErrInvalidWeekday):
		BadRequest(w, "Invalid weekday name", nil)

	// Timeline domain errors
	case errors.Is(err, timeline.ErrUnknownEventType):
		BadRequest(w, "Unknown timeline event type", nil)
	case errors.Is(err, timeline.ErrAlreadyPunchedIn):
		Conflict(w, "Already punched in")
	case errors.Is(err, timeline.ErrNotPunchedIn):
		Conflict(w, "Not punched in")
	case errors.Is(err, timeline.ErrAlreadyOnBreak):
		Conflict(w, "Already on break")
	case errors.Is(err, timeline.ErrNotOnBreak):
		Conflict(w, "Not on break")
	case errors.Is(err, timeline.ErrEventNotFound):
		NotFound(w, "Timeline event not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidDateFormat):
		BadRequest(w, "Invalid date format, expected YYYY-MM-DD", nil)
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, attendance.ErrRangeTooWide):
		BadRequest(w, "Date range exceeds the 92 day maximum", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
