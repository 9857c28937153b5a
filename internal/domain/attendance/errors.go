package attendance

import "errors"

var (
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidDateRange  = errors.New("end date must not be before start date")
	ErrRangeTooWide      = errors.New("date range must not exceed 92 days")
)
