package attendance

import (
	"context"
	"time"
)

// AttendanceService derives attendance-day results from the raw timeline.
type AttendanceService interface {
	// ReconstructAndClassify replays one day bucket: resolve the effective
	// shift, reconstruct sessions, overlay leave, classify. Pure derivation;
	// nothing is written. Company scope comes from the request token.
	ReconstructAndClassify(ctx context.Context, employeeID string, date time.Time) (DayResult, error)

	// DeriveDay is the claim-free variant used by background jobs.
	DeriveDay(ctx context.Context, employeeID, companyID string, date time.Time) (DayResult, error)

	// GetMyDay returns the authenticated employee's result for one date.
	GetMyDay(ctx context.Context, date time.Time) (DayResponse, error)

	// ListMyDays returns results for an inclusive date range.
	ListMyDays(ctx context.Context, start, end time.Time) ([]DayResponse, error)

	// GetEmployeeDay returns any employee's result (admin view).
	GetEmployeeDay(ctx context.Context, employeeID string, date time.Time) (DayResponse, error)
}

// SnapshotRepository persists finalized day results as a reporting read
// model. The raw timeline stays authoritative; snapshots are overwritten
// wholesale on every recomputation.
type SnapshotRepository interface {
	Upsert(ctx context.Context, companyID string, result DayResult) error
}
