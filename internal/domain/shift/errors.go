package shift

import "errors"

var (
	// Catalog errors
	ErrShiftNotFound   = errors.New("shift not found")
	ErrShiftNameExists = errors.New("shift with this name already exists")
	ErrShiftInUse      = errors.New("shift is referenced by an assignment and cannot be deleted")

	// Assignment errors
	ErrAssignmentNotFound  = errors.New("shift assignment not found")
	ErrDayOverrideNotFound = errors.New("day override not found for this date")

	// Change request errors
	ErrChangeRequestNotFound         = errors.New("shift change request not found")
	ErrChangeRequestAlreadyProcessed = errors.New("shift change request already processed")
	ErrInvalidRequestType            = errors.New("invalid shift change request type")

	// Validation errors
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM")
	ErrInvalidWeekday    = errors.New("invalid weekday name")
)
