package timeline

import (
	"context"
	"time"
)

// TimelineRepository is the append-only punch event log, queryable by
// employee and attendance-day bucket.
type TimelineRepository interface {
	// Append stores one event. The Day bucket must already be set by the
	// caller (night-shift mapping happens at record time, not here).
	Append(ctx context.Context, event Event) (Event, error)

	// ListByEmployeeAndDay returns the events of one day bucket ordered by
	// timestamp ascending.
	ListByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time, companyID string) ([]Event, error)

	// LastEventForDay returns the chronologically last event of a day bucket,
	// or nil when the bucket is empty. Used for punch sequence guards and
	// live status derivation.
	LastEventForDay(ctx context.Context, employeeID string, day time.Time, companyID string) (*Event, error)

	// EmployeesWithEventsOn lists employees that have at least one event
	// bucketed to the given day, across companies. Used by the nightly
	// finalization job.
	EmployeesWithEventsOn(ctx context.Context, day time.Time) ([]DayEmployee, error)

	// ListOpenDays returns (employeeID, day) pairs whose last event leaves a
	// session open (Punch In / Break Start / Resume Work) and is older than
	// the cutoff. Used by the stale session sweep.
	ListOpenDays(ctx context.Context, before time.Time) ([]OpenDay, error)
}

// OpenDay identifies a day bucket left without a closing Punch Out.
type OpenDay struct {
	EmployeeID string
	CompanyID  string
	Day        time.Time
	LastEvent  time.Time
}

// DayEmployee identifies one employee with activity on a given day.
type DayEmployee struct {
	EmployeeID string
	CompanyID  string
}
