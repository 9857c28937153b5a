package shift

import "time"

// Definition is a named shift in the company catalog. Start/End carry only a
// time-of-day; the date portion is ignored everywhere.
type Definition struct {
	ID            string
	CompanyID     string
	Name          string
	StartTime     time.Time
	EndTime       time.Time
	DurationHours float64
	Flexible      bool
	IsHouseDefault bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsNightShift reports whether the shift crosses midnight (end hour earlier
// than start hour, e.g. 20:00-05:00).
func (d Definition) IsNightShift() bool {
	return d.EndTime.Hour() < d.StartTime.Hour()
}

// Source identifies which precedence level produced a resolved shift.
type Source string

const (
	SourceDayOverride       Source = "day_override"
	SourceFlexiblePermanent Source = "flexible_permanent"
	SourceTemporaryRequest  Source = "temporary_request"
	SourcePermanentOverride Source = "permanent_override"
	SourceWeeklyPattern     Source = "weekly_pattern"
	SourceDefault           Source = "default"
	SourceHouseDefault      Source = "house_default"
)

// Resolved is the effective shift for one employee on one date.
type Resolved struct {
	Definition
	Source Source

	// FlexiblePermanent marks an employee whose employment mode is flexible;
	// OneDayFlexible marks a standard employee given a flexible day override.
	// Both change classification thresholds, not precedence.
	FlexiblePermanent bool
	OneDayFlexible    bool
}

// PermanentOverride substitutes the weekly pattern from EffectiveFrom onward.
// Weekdays empty means every day; otherwise the override only applies on the
// listed weekdays. Overrides are append-only; the most recent applicable one
// wins.
type PermanentOverride struct {
	ID            string
	AssignmentID  string
	ShiftID       string
	EffectiveFrom time.Time
	Weekdays      []time.Weekday
	CreatedAt     time.Time
}

// AppliesOn reports whether the override is in force for the given date.
func (o PermanentOverride) AppliesOn(date time.Time) bool {
	if o.EffectiveFrom.After(date) {
		return false
	}
	if len(o.Weekdays) == 0 {
		return true
	}
	for _, wd := range o.Weekdays {
		if wd == date.Weekday() {
			return true
		}
	}
	return false
}

// DayOverride is an ad hoc single-day substitution keyed by date
// (YYYY-MM-DD). It carries a shift-like shape rather than a catalog
// reference so admins can hand out one-off hours that exist nowhere else.
type DayOverride struct {
	Date          string
	StartTime     time.Time
	EndTime       time.Time
	DurationHours float64
	Flexible      bool
}

// Assignment is the full shift configuration of one employee.
type Assignment struct {
	ID                string
	EmployeeID        string
	CompanyID         string
	DefaultShiftID    *string
	FlexiblePermanent bool
	WeeklyPattern     map[time.Weekday]string
	PermanentOverrides []PermanentOverride
	DayOverrides      map[string]DayOverride
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type RequestType string

const (
	RequestTemporary     RequestType = "temporary"
	RequestPermanent     RequestType = "permanent"
	RequestPartialWeekly RequestType = "partialWeekly"
)

var RequestTypeValues = []string{
	string(RequestTemporary),
	string(RequestPermanent),
	string(RequestPartialWeekly),
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// ChangeRequest asks for a different shift. Temporary requests carry a date
// range and are read directly by the resolver once approved; permanent and
// partialWeekly requests materialize into assignment permanent overrides at
// approval time.
type ChangeRequest struct {
	ID              string
	EmployeeID      string
	CompanyID       string
	ShiftID         string
	Type            RequestType
	StartDate       time.Time
	EndDate         *time.Time
	Weekdays        []time.Weekday
	Status          RequestStatus
	DecidedBy       *string
	DecidedAt       *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	EmployeeName *string
}

// Covers reports whether a temporary request's range contains the date.
func (r ChangeRequest) Covers(date time.Time) bool {
	if r.StartDate.After(date) {
		return false
	}
	if r.EndDate == nil {
		return true
	}
	return !r.EndDate.Before(date)
}

// Snapshot is everything the pure resolver needs for one employee: the
// assignment, the catalog rows it references, approved temporary requests
// and the company house default. Loaded in one pass so resolution never
// touches storage.
type Snapshot struct {
	Assignment        *Assignment
	Shifts            map[string]Definition
	TemporaryRequests []ChangeRequest
	HouseDefault      *Definition
}
