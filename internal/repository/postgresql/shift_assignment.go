package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/shift"
	"github.com/workpulse-hr/attendance-engine-go/internal/pkg/database"
)

type shiftAssignmentRepositoryImpl struct {
	db *database.DB
}

func NewShiftAssignmentRepository(db *database.DB) shift.AssignmentRepository {
	return &shiftAssignmentRepositoryImpl{db: db}
}

// GetByEmployeeID implements shift.AssignmentRepository. The assignment row
// and its pattern entries, permanent overrides and day overrides load as one
// aggregate.
func (r *shiftAssignmentRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID, companyID string) (*shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, default_shift_id, flexible_permanent, created_at, updated_at
		FROM shift_assignments
		WHERE employee_id = $1 AND company_id = $2
	`

	var asn shift.Assignment
	err := q.QueryRow(ctx, query, employeeID, companyID).Scan(
		&asn.ID, &asn.EmployeeID, &asn.CompanyID, &asn.DefaultShiftID,
		&asn.FlexiblePermanent, &asn.CreatedAt, &asn.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shift.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	if err := r.loadPatternEntries(ctx, &asn); err != nil {
		return nil, err
	}
	if err := r.loadPermanentOverrides(ctx, &asn); err != nil {
		return nil, err
	}
	if err := r.loadDayOverrides(ctx, &asn); err != nil {
		return nil, err
	}

	return &asn, nil
}

// EnsureForEmployee implements shift.AssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) EnsureForEmployee(ctx context.Context, employeeID, companyID string) (shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_assignments (id, employee_id, company_id, flexible_permanent, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, FALSE, NOW(), NOW())
		ON CONFLICT (employee_id, company_id) DO NOTHING
	`

	if _, err := q.Exec(ctx, query, employeeID, companyID); err != nil {
		return shift.Assignment{}, fmt.Errorf("failed to ensure assignment: %w", err)
	}

	asn, err := r.GetByEmployeeID(ctx, employeeID, companyID)
	if err != nil {
		return shift.Assignment{}, err
	}
	return *asn, nil
}

// SetDefaultShift implements shift.AssignmentRepository. An empty shiftID
// clears the default.
func (r *shiftAssignmentRepositoryImpl) SetDefaultShift(ctx context.Context, assignmentID, shiftID, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_assignments
		SET default_shift_id = NULLIF($2, ''), updated_at = NOW()
		WHERE id = $1 AND company_id = $3
	`

	commandTag, err := q.Exec(ctx, query, assignmentID, shiftID, companyID)
	if err != nil {
		return fmt.Errorf("failed to set default shift: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrAssignmentNotFound
	}
	return nil
}

// SetFlexiblePermanent implements shift.AssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) SetFlexiblePermanent(ctx context.Context, assignmentID string, flexible bool, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_assignments
		SET flexible_permanent = $2, updated_at = NOW()
		WHERE id = $1 AND company_id = $3
	`

	commandTag, err := q.Exec(ctx, query, assignmentID, flexible, companyID)
	if err != nil {
		return fmt.Errorf("failed to set flexible permanent: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrAssignmentNotFound
	}
	return nil
}

// SetPatternEntry implements shift.AssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) SetPatternEntry(ctx context.Context, assignmentID string, weekday time.Weekday, shiftID, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_pattern_entries (assignment_id, weekday, shift_id)
		SELECT sa.id, $2, $3
		FROM shift_assignments sa
		WHERE sa.id = $1 AND sa.company_id = $4
		ON CONFLICT (assignment_id, weekday) DO UPDATE SET shift_id = EXCLUDED.shift_id
	`

	commandTag, err := q.Exec(ctx, query, assignmentID, int(weekday), shiftID, companyID)
	if err != nil {
		return fmt.Errorf("failed to set pattern entry: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrAssignmentNotFound
	}
	return nil
}

// AppendPermanentOverride implements shift.AssignmentRepository. Overrides
// are append-only; nothing is ever updated or removed.
func (r *shiftAssignmentRepositoryImpl) AppendPermanentOverride(ctx context.Context, override shift.PermanentOverride, companyID string) (shift.PermanentOverride, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_permanent_overrides (id, assignment_id, shift_id, effective_from, weekdays, created_at)
		SELECT uuidv7(), sa.id, $2, $3, $4, NOW()
		FROM shift_assignments sa
		WHERE sa.id = $1 AND sa.company_id = $5
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		override.AssignmentID, override.ShiftID, override.EffectiveFrom,
		weekdaysToInts(override.Weekdays), companyID,
	).Scan(&override.ID, &override.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.PermanentOverride{}, shift.ErrAssignmentNotFound
		}
		return shift.PermanentOverride{}, fmt.Errorf("failed to append permanent override: %w", err)
	}

	return override, nil
}

// UpsertDayOverride implements shift.AssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) UpsertDayOverride(ctx context.Context, assignmentID string, override shift.DayOverride, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_day_overrides (assignment_id, date, start_time, end_time, duration_hours, flexible)
		SELECT sa.id, $2::date, $3, $4, $5, $6
		FROM shift_assignments sa
		WHERE sa.id = $1 AND sa.company_id = $7
		ON CONFLICT (assignment_id, date) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			duration_hours = EXCLUDED.duration_hours,
			flexible = EXCLUDED.flexible
	`

	commandTag, err := q.Exec(ctx, query,
		assignmentID, override.Date, override.StartTime, override.EndTime,
		override.DurationHours, override.Flexible, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert day override: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrAssignmentNotFound
	}
	return nil
}

// ClearDayOverride implements shift.AssignmentRepository.
func (r *shiftAssignmentRepositoryImpl) ClearDayOverride(ctx context.Context, assignmentID, date, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM shift_day_overrides sdo
		USING shift_assignments sa
		WHERE sdo.assignment_id = sa.id
		  AND sdo.assignment_id = $1 AND sdo.date = $2::date AND sa.company_id = $3
	`

	commandTag, err := q.Exec(ctx, query, assignmentID, date, companyID)
	if err != nil {
		return fmt.Errorf("failed to clear day override: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrDayOverrideNotFound
	}
	return nil
}

func (r *shiftAssignmentRepositoryImpl) loadPatternEntries(ctx context.Context, asn *shift.Assignment) error {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT weekday, shift_id
		FROM shift_pattern_entries
		WHERE assignment_id = $1
		ORDER BY weekday ASC
	`

	rows, err := q.Query(ctx, query, asn.ID)
	if err != nil {
		return fmt.Errorf("failed to query pattern entries: %w", err)
	}
	defer rows.Close()

	asn.WeeklyPattern = make(map[time.Weekday]string)
	for rows.Next() {
		var weekday int
		var shiftID string
		if err := rows.Scan(&weekday, &shiftID); err != nil {
			return fmt.Errorf("failed to scan pattern entry: %w", err)
		}
		asn.WeeklyPattern[time.Weekday(weekday)] = shiftID
	}
	return rows.Err()
}

func (r *shiftAssignmentRepositoryImpl) loadPermanentOverrides(ctx context.Context, asn *shift.Assignment) error {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, assignment_id, shift_id, effective_from, weekdays, created_at
		FROM shift_permanent_overrides
		WHERE assignment_id = $1
		ORDER BY effective_from ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, asn.ID)
	if err != nil {
		return fmt.Errorf("failed to query permanent overrides: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var override shift.PermanentOverride
		var weekdays []int
		err := rows.Scan(
			&override.ID, &override.AssignmentID, &override.ShiftID,
			&override.EffectiveFrom, &weekdays, &override.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan permanent override: %w", err)
		}
		override.Weekdays = intsToWeekdays(weekdays)
		asn.PermanentOverrides = append(asn.PermanentOverrides, override)
	}
	return rows.Err()
}

func (r *shiftAssignmentRepositoryImpl) loadDayOverrides(ctx context.Context, asn *shift.Assignment) error {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date, start_time, end_time, duration_hours, flexible
		FROM shift_day_overrides
		WHERE assignment_id = $1
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, asn.ID)
	if err != nil {
		return fmt.Errorf("failed to query day overrides: %w", err)
	}
	defer rows.Close()

	asn.DayOverrides = make(map[string]shift.DayOverride)
	for rows.Next() {
		var date time.Time
		var override shift.DayOverride
		err := rows.Scan(&date, &override.StartTime, &override.EndTime, &override.DurationHours, &override.Flexible)
		if err != nil {
			return fmt.Errorf("failed to scan day override: %w", err)
		}
		override.Date = date.Format("2006-01-02")
		asn.DayOverrides[override.Date] = override
	}
	return rows.Err()
}

func weekdaysToInts(weekdays []time.Weekday) []int {
	out := make([]int, 0, len(weekdays))
	for _, wd := range weekdays {
		out = append(out, int(wd))
	}
	return out
}

func intsToWeekdays(values []int) []time.Weekday {
	out := make([]time.Weekday, 0, len(values))
	for _, v := range values {
		out = append(out, time.Weekday(v))
	}
	return out
}
