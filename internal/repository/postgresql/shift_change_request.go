package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/shift"
	"github.com/workpulse-hr/attendance-engine-go/internal/pkg/database"
)

type shiftChangeRequestRepositoryImpl struct {
	db *database.DB
}

func NewShiftChangeRequestRepository(db *database.DB) shift.ChangeRequestRepository {
	return &shiftChangeRequestRepositoryImpl{db: db}
}

// Create implements shift.ChangeRequestRepository.
func (r *shiftChangeRequestRepositoryImpl) Create(ctx context.Context, req shift.ChangeRequest) (shift.ChangeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_change_requests (
			id, employee_id, company_id, shift_id, type, start_date, end_date, weekdays, status, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.CompanyID, req.ShiftID, string(req.Type),
		req.StartDate, req.EndDate, weekdaysToInts(req.Weekdays), string(req.Status),
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return shift.ChangeRequest{}, fmt.Errorf("failed to insert change request: %w", err)
	}

	return req, nil
}

// GetByID implements shift.ChangeRequestRepository.
func (r *shiftChangeRequestRepositoryImpl) GetByID(ctx context.Context, id, companyID string) (shift.ChangeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, shift_id, type, start_date, end_date, weekdays,
		       status, decided_by, decided_at, rejection_reason, created_at, updated_at
		FROM shift_change_requests
		WHERE id = $1 AND company_id = $2
	`

	req, err := scanChangeRequest(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ChangeRequest{}, shift.ErrChangeRequestNotFound
		}
		return shift.ChangeRequest{}, fmt.Errorf("failed to get change request: %w", err)
	}

	return req, nil
}

// List implements shift.ChangeRequestRepository.
func (r *shiftChangeRequestRepositoryImpl) List(ctx context.Context, filter shift.ChangeRequestFilter, companyID string) ([]shift.ChangeRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "company_id = $1"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM shift_change_requests WHERE " + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count change requests: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`
		SELECT id, employee_id, company_id, shift_id, type, start_date, end_date, weekdays,
		       status, decided_by, decided_at, rejection_reason, created_at, updated_at
		FROM shift_change_requests
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query change requests: %w", err)
	}
	defer rows.Close()

	var requests []shift.ChangeRequest
	for rows.Next() {
		req, err := scanChangeRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan change request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating change requests: %w", err)
	}

	return requests, total, nil
}

// UpdateStatus implements shift.ChangeRequestRepository. Only pending
// requests transition; a processed request is immutable.
func (r *shiftChangeRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status shift.RequestStatus, decidedBy string, reason *string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_change_requests
		SET status = $2, decided_by = $3, decided_at = NOW(), rejection_reason = $4, updated_at = NOW()
		WHERE id = $1 AND company_id = $5 AND status = $6
	`

	commandTag, err := q.Exec(ctx, query, id, string(status), decidedBy, reason, companyID, string(shift.RequestPending))
	if err != nil {
		return fmt.Errorf("failed to update change request status: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrChangeRequestAlreadyProcessed
	}
	return nil
}

// ApprovedTemporaryByEmployee implements shift.ChangeRequestRepository.
func (r *shiftChangeRequestRepositoryImpl) ApprovedTemporaryByEmployee(ctx context.Context, employeeID, companyID string) ([]shift.ChangeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, shift_id, type, start_date, end_date, weekdays,
		       status, decided_by, decided_at, rejection_reason, created_at, updated_at
		FROM shift_change_requests
		WHERE employee_id = $1 AND company_id = $2 AND type = $3 AND status = $4
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, string(shift.RequestTemporary), string(shift.RequestApproved))
	if err != nil {
		return nil, fmt.Errorf("failed to query approved temporary requests: %w", err)
	}
	defer rows.Close()

	var requests []shift.ChangeRequest
	for rows.Next() {
		req, err := scanChangeRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan change request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating change requests: %w", err)
	}

	return requests, nil
}

func scanChangeRequest(row pgx.Row) (shift.ChangeRequest, error) {
	var req shift.ChangeRequest
	var reqType, status string
	var weekdays []int

	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.CompanyID, &req.ShiftID, &reqType,
		&req.StartDate, &req.EndDate, &weekdays,
		&status, &req.DecidedBy, &req.DecidedAt, &req.RejectionReason,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return shift.ChangeRequest{}, err
	}

	req.Type = shift.RequestType(reqType)
	req.Status = shift.RequestStatus(status)
	req.Weekdays = intsToWeekdays(weekdays)
	return req, nil
}
