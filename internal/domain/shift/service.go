package shift

import (
	"context"
	"time"
)

// ShiftService defines business logic for the shift catalog, assignments,
// change requests and effective-shift resolution.
type ShiftService interface {
	// Catalog
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	GetShift(ctx context.Context, id string) (ShiftResponse, error)
	ListShifts(ctx context.Context) ([]ShiftResponse, error)
	DeleteShift(ctx context.Context, id string) error

	// ResolveShift returns the effective shift for the employee on the date,
	// or nil when no configuration exists anywhere. It never fails on a
	// malformed reference; broken levels are skipped.
	ResolveShift(ctx context.Context, employeeID string, date time.Time) (*Resolved, error)

	// Assignment
	SetDefaultShift(ctx context.Context, req SetDefaultShiftRequest) error
	SetFlexiblePermanent(ctx context.Context, req SetFlexiblePermanentRequest) error
	SetPatternEntry(ctx context.Context, req SetPatternEntryRequest) error
	AddPermanentOverride(ctx context.Context, req AddPermanentOverrideRequest) (PermanentOverrideResponse, error)
	SetDayOverride(ctx context.Context, req SetDayOverrideRequest) error
	ClearDayOverride(ctx context.Context, employeeID, date string) error

	// Change requests
	SubmitChangeRequest(ctx context.Context, req SubmitChangeRequestRequest) (ChangeRequestResponse, error)
	ListChangeRequests(ctx context.Context, filter ChangeRequestFilter) (ListChangeRequestResponse, error)
	ApproveChangeRequest(ctx context.Context, requestID string) error
	RejectChangeRequest(ctx context.Context, req RejectChangeRequestRequest) error
}
