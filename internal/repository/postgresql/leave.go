package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/leave"
	"github.com/workpulse-hr/attendance-engine-go/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.OverlayRepository {
	return &leaveRepositoryImpl{db: db}
}

// ApprovedLeaveOn implements leave.OverlayRepository. When several approved
// leaves cover the same date the most recently created one wins.
func (r *leaveRepositoryImpl) ApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time, companyID string) (*leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, type, start_date, end_date
		FROM leaves
		WHERE employee_id = $1 AND company_id = $2
		  AND status = 'approved'
		  AND $3::date BETWEEN start_date AND end_date
		ORDER BY created_at DESC
		LIMIT 1
	`

	var l leave.Leave
	var leaveType string
	err := q.QueryRow(ctx, query, employeeID, companyID, date).Scan(
		&l.ID, &l.EmployeeID, &l.CompanyID, &leaveType, &l.StartDate, &l.EndDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get approved leave: %w", err)
	}

	l.Type = leave.Type(leaveType)
	return &l, nil
}
