package shift

import (
	"context"
	"time"
)

// ShiftRepository defines data access for the shift catalog. All methods
// take companyID to prevent cross-company reads.
type ShiftRepository interface {
	Create(ctx context.Context, def Definition) (Definition, error)
	GetByID(ctx context.Context, id string, companyID string) (Definition, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]Definition, error)
	GetHouseDefault(ctx context.Context, companyID string) (*Definition, error)
	Delete(ctx context.Context, id, companyID string) error

	// IsReferenced reports whether any assignment, pattern entry, override
	// or change request points at the shift. Used to enforce catalog
	// immutability once referenced.
	IsReferenced(ctx context.Context, id, companyID string) (bool, error)
}

// AssignmentRepository defines data access for employee shift assignments.
// The assignment row plus its pattern entries, permanent overrides and day
// overrides load as a single aggregate.
type AssignmentRepository interface {
	GetByEmployeeID(ctx context.Context, employeeID, companyID string) (*Assignment, error)
	EnsureForEmployee(ctx context.Context, employeeID, companyID string) (Assignment, error)

	SetDefaultShift(ctx context.Context, assignmentID, shiftID, companyID string) error
	SetFlexiblePermanent(ctx context.Context, assignmentID string, flexible bool, companyID string) error
	SetPatternEntry(ctx context.Context, assignmentID string, weekday time.Weekday, shiftID, companyID string) error
	AppendPermanentOverride(ctx context.Context, override PermanentOverride, companyID string) (PermanentOverride, error)
	UpsertDayOverride(ctx context.Context, assignmentID string, override DayOverride, companyID string) error
	ClearDayOverride(ctx context.Context, assignmentID, date, companyID string) error
}

// ChangeRequestRepository defines data access for shift change requests.
type ChangeRequestRepository interface {
	Create(ctx context.Context, req ChangeRequest) (ChangeRequest, error)
	GetByID(ctx context.Context, id, companyID string) (ChangeRequest, error)
	List(ctx context.Context, filter ChangeRequestFilter, companyID string) ([]ChangeRequest, int64, error)
	UpdateStatus(ctx context.Context, id string, status RequestStatus, decidedBy string, reason *string, companyID string) error

	// ApprovedTemporaryByEmployee returns approved temporary requests for the
	// resolver, most recently created first.
	ApprovedTemporaryByEmployee(ctx context.Context, employeeID, companyID string) ([]ChangeRequest, error)
}
