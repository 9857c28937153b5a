package leave

import (
	"context"
	"time"
)

// OverlayRepository is the read-only leave collaborator: "is there an
// approved leave for this employee overlapping this date, and of what type".
type OverlayRepository interface {
	// ApprovedLeaveOn returns the approved leave covering the date, or nil.
	ApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time, companyID string) (*Leave, error)
}
