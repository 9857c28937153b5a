package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/attendance"
	"github.com/workpulse-hr/attendance-engine-go/internal/pkg/database"
)

type daySnapshotRepositoryImpl struct {
	db *database.DB
}

func NewDaySnapshotRepository(db *database.DB) attendance.SnapshotRepository {
	return &daySnapshotRepositoryImpl{db: db}
}

// Upsert implements attendance.SnapshotRepository. Snapshots are a read
// model; recomputation overwrites the whole row.
func (r *daySnapshotRepositoryImpl) Upsert(ctx context.Context, companyID string, result attendance.DayResult) error {
	q := GetQuerier(ctx, r.db)

	var shiftID, shiftSource *string
	if result.Shift != nil {
		shiftID = &result.Shift.ID
		source := string(result.Shift.Source)
		shiftSource = &source
	}

	workJSON, err := json.Marshal(result.WorkSessions)
	if err != nil {
		return fmt.Errorf("failed to marshal work sessions: %w", err)
	}
	breakJSON, err := json.Marshal(result.BreakSessions)
	if err != nil {
		return fmt.Errorf("failed to marshal break sessions: %w", err)
	}

	query := `
		INSERT INTO attendance_day_snapshots (
			employee_id, company_id, date, shift_id, shift_source,
			arrival_at, departure_at, work_sessions, break_sessions,
			work_seconds, break_seconds,
			is_absent, is_late, is_half_day, is_full_day, is_wfh, is_on_leave,
			updated_at
		) VALUES (
			$1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW()
		)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			company_id = EXCLUDED.company_id,
			shift_id = EXCLUDED.shift_id,
			shift_source = EXCLUDED.shift_source,
			arrival_at = EXCLUDED.arrival_at,
			departure_at = EXCLUDED.departure_at,
			work_sessions = EXCLUDED.work_sessions,
			break_sessions = EXCLUDED.break_sessions,
			work_seconds = EXCLUDED.work_seconds,
			break_seconds = EXCLUDED.break_seconds,
			is_absent = EXCLUDED.is_absent,
			is_late = EXCLUDED.is_late,
			is_half_day = EXCLUDED.is_half_day,
			is_full_day = EXCLUDED.is_full_day,
			is_wfh = EXCLUDED.is_wfh,
			is_on_leave = EXCLUDED.is_on_leave,
			updated_at = NOW()
	`

	_, err = q.Exec(ctx, query,
		result.EmployeeID, companyID, result.Date, shiftID, shiftSource,
		result.ArrivalTime, result.DepartureTime, workJSON, breakJSON,
		result.WorkSeconds, result.BreakSeconds,
		result.IsAbsent, result.IsLate, result.IsHalfDay, result.IsFullDay,
		result.IsWFH, result.IsOnLeave,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert day snapshot: %w", err)
	}

	return nil
}
