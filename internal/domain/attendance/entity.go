package attendance

import (
	"time"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/shift"
	"github.com/workpulse-hr/attendance-engine-go/internal/domain/timeline"
)

// DayResult is the classification of one attendance day. It is recomputed on
// demand from the raw timeline and never mutated independently; the nightly
// job persists snapshots of it purely as a read model.
type DayResult struct {
	EmployeeID string
	Date       time.Time

	Shift *shift.Resolved

	ArrivalTime   *time.Time
	DepartureTime *time.Time

	WorkSessions  []timeline.Session
	BreakSessions []timeline.Session
	WorkSeconds   int64
	BreakSeconds  int64

	IsAbsent         bool
	IsLate           bool
	IsHalfDay        bool
	IsFullDay        bool
	IsWFH            bool
	IsOnLeave        bool
	CurrentlyWorking bool
	OnBreak          bool
}
