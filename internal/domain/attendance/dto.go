package attendance

import (
	"github.com/workpulse-hr/attendance-engine-go/internal/domain/shift"
	"github.com/workpulse-hr/attendance-engine-go/internal/domain/timeline"
)

type DayResponse struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`

	Shift *shift.ResolvedShiftResponse `json:"shift,omitempty"`

	ArrivalTime   *string `json:"arrival_time,omitempty"`
	DepartureTime *string `json:"departure_time,omitempty"`

	WorkSessions  []timeline.SessionResponse `json:"work_sessions"`
	BreakSessions []timeline.SessionResponse `json:"break_sessions"`
	WorkSeconds   int64                      `json:"work_seconds"`
	BreakSeconds  int64                      `json:"break_seconds"`

	// WorkHours is the decimal-exact hour figure payroll consumes.
	WorkHours string `json:"work_hours"`

	IsAbsent         bool `json:"is_absent"`
	IsLate           bool `json:"is_late"`
	IsHalfDay        bool `json:"is_half_day"`
	IsFullDay        bool `json:"is_full_day"`
	IsWFH            bool `json:"is_wfh"`
	IsOnLeave        bool `json:"is_on_leave"`
	CurrentlyWorking bool `json:"currently_working"`
	OnBreak          bool `json:"on_break"`
}
