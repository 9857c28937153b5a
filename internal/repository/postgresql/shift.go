package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/shift"
	"github.com/workpulse-hr/attendance-engine-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, def shift.Definition) (shift.Definition, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (
			id, company_id, name, start_time, end_time, duration_hours, flexible, is_house_default, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		def.CompanyID, def.Name, def.StartTime, def.EndTime,
		def.DurationHours, def.Flexible, def.IsHouseDefault,
	).Scan(&def.ID, &def.CreatedAt, &def.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shift.Definition{}, shift.ErrShiftNameExists
		}
		return shift.Definition{}, fmt.Errorf("failed to insert shift: %w", err)
	}

	return def, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (shift.Definition, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, start_time, end_time, duration_hours, flexible, is_house_default, created_at, updated_at
		FROM shifts
		WHERE id = $1 AND company_id = $2
	`

	var def shift.Definition
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&def.ID, &def.CompanyID, &def.Name, &def.StartTime, &def.EndTime,
		&def.DurationHours, &def.Flexible, &def.IsHouseDefault, &def.CreatedAt, &def.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Definition{}, shift.ErrShiftNotFound
		}
		return shift.Definition{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return def, nil
}

// GetByCompanyID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]shift.Definition, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, start_time, end_time, duration_hours, flexible, is_house_default, created_at, updated_at
		FROM shifts
		WHERE company_id = $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var defs []shift.Definition
	for rows.Next() {
		var def shift.Definition
		err := rows.Scan(
			&def.ID, &def.CompanyID, &def.Name, &def.StartTime, &def.EndTime,
			&def.DurationHours, &def.Flexible, &def.IsHouseDefault, &def.CreatedAt, &def.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return defs, nil
}

// GetHouseDefault implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetHouseDefault(ctx context.Context, companyID string) (*shift.Definition, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, start_time, end_time, duration_hours, flexible, is_house_default, created_at, updated_at
		FROM shifts
		WHERE company_id = $1 AND is_house_default = TRUE
		ORDER BY created_at DESC
		LIMIT 1
	`

	var def shift.Definition
	err := q.QueryRow(ctx, query, companyID).Scan(
		&def.ID, &def.CompanyID, &def.Name, &def.StartTime, &def.EndTime,
		&def.DurationHours, &def.Flexible, &def.IsHouseDefault, &def.CreatedAt, &def.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get house default shift: %w", err)
	}

	return &def, nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM shifts
		WHERE id = $1 AND company_id = $2
	`

	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return shift.ErrShiftInUse
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// IsReferenced implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) IsReferenced(ctx context.Context, id, companyID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM shift_assignments sa
			WHERE sa.company_id = $2 AND sa.default_shift_id = $1
		) OR EXISTS (
			SELECT 1 FROM shift_pattern_entries spe
			JOIN shift_assignments sa ON sa.id = spe.assignment_id
			WHERE sa.company_id = $2 AND spe.shift_id = $1
		) OR EXISTS (
			SELECT 1 FROM shift_permanent_overrides spo
			JOIN shift_assignments sa ON sa.id = spo.assignment_id
			WHERE sa.company_id = $2 AND spo.shift_id = $1
		) OR EXISTS (
			SELECT 1 FROM shift_change_requests scr
			WHERE scr.company_id = $2 AND scr.shift_id = $1
		)
	`

	var referenced bool
	if err := q.QueryRow(ctx, query, id, companyID).Scan(&referenced); err != nil {
		return false, fmt.Errorf("failed to check shift references: %w", err)
	}

	return referenced, nil
}
