package shift

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/shift"
	"github.com/workpulse-hr/attendance-engine-go/internal/pkg/database"
	"github.com/workpulse-hr/attendance-engine-go/internal/pkg/validator"
	"github.com/workpulse-hr/attendance-engine-go/internal/repository/postgresql"
)

type ShiftServiceImpl struct {
	db *database.DB
	shift.ShiftRepository
	shift.AssignmentRepository
	shift.ChangeRequestRepository
}

func NewShiftService(
	db *database.DB,
	shiftRepo shift.ShiftRepository,
	assignmentRepo shift.AssignmentRepository,
	changeRequestRepo shift.ChangeRequestRepository,
) shift.ShiftService {
	return &ShiftServiceImpl{
		db:                      db,
		ShiftRepository:         shiftRepo,
		AssignmentRepository:    assignmentRepo,
		ChangeRequestRepository: changeRequestRepo,
	}
}

// claimString extracts a required string claim from the request token.
func claimString(ctx context.Context, key string) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	value, ok := claims[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%s claim is missing or invalid", key)
	}
	return value, nil
}

// CreateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	companyID, err := claimString(ctx, "company_id")
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	def := shift.Definition{
		CompanyID:      companyID,
		Name:           req.Name,
		DurationHours:  req.DurationHours,
		Flexible:       req.Flexible,
		IsHouseDefault: req.IsHouseDefault,
	}
	if req.Flexible {
		def.StartTime = timeOfDay(0, 0)
		def.EndTime = timeOfDay(23, 59)
	} else {
		start, _ := validator.IsValidTimeOfDay(req.StartTime)
		end, _ := validator.IsValidTimeOfDay(req.EndTime)
		def.StartTime = start
		def.EndTime = end
	}

	created, err := s.ShiftRepository.Create(ctx, def)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return shift.NewShiftResponse(created), nil
}

// GetShift implements shift.ShiftService.
func (s *ShiftServiceImpl) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	companyID, err := claimString(ctx, "company_id")
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	def, err := s.ShiftRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.ShiftResponse{}, shift.ErrShiftNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return shift.NewShiftResponse(def), nil
}

// ListShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context) ([]shift.ShiftResponse, error) {
	companyID, err := claimString(ctx, "company_id")
	if err != nil {
		return nil, err
	}

	defs, err := s.ShiftRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(defs))
	for _, def := range defs {
		responses = append(responses, shift.NewShiftResponse(def))
	}
	return responses, nil
}

// DeleteShift implements shift.ShiftService. Definitions are immutable once
// referenced, so a referenced shift cannot be removed.
func (s *ShiftServiceImpl) DeleteShift(ctx context.Context, id string) error {
	companyID, err := claimString(ctx, "company_id")
	if err != nil {
		return err
	}

	referenced, err := s.ShiftRepository.IsReferenced(ctx, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to check shift references: %w", err)
	}
	if referenced {
		return shift.ErrShiftInUse
	}

	if err := s.ShiftRepository.Delete(ctx, id, companyID); err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}

// ResolveShift implements shift.ShiftService. It loads the employee's full
// configuration snapshot and hands it to the pure resolver. Missing pieces
// (no assignment, no house default) are not errors; only storage failures
// propagate.
func (s *ShiftServiceImpl) ResolveShift(ctx context.Context, employeeID string, date time.Time) (*shift.Resolved, error) {
	companyID, err := claimString(ctx, "company_id")
	if err != nil {
		return nil, err
	}

	snap, err := LoadSnapshot(ctx, s.ShiftRepository, s.AssignmentRepository, s.ChangeRequestRepository, employeeID, companyID)
	if err != nil {
		return nil, err
	}

	return Resolve(snap, date), nil
}

// LoadSnapshot assembles the resolver input for one employee in one pass.
// A missing assignment is not an error; the resolver falls through to the
// house default. Shared with the attendance and timeline services so every
// caller resolves from the same picture.
func LoadSnapshot(
	ctx context.Context,
	shiftRepo shift.ShiftRepository,
	assignmentRepo shift.AssignmentRepository,
	changeRequestRepo shift.ChangeRequestRepository,
	employeeID, companyID string,
) (shift.Snapshot, error) {
	var snap shift.Snapshot

	asn, err := assignmentRepo.GetByEmployeeID(ctx, employeeID, companyID)
	if err != nil && !errors.Is(err, shift.ErrAssignmentNotFound) && !errors.Is(err, pgx.ErrNoRows) {
		return snap, fmt.Errorf("failed to load assignment: %w", err)
	}
	snap.Assignment = asn

	defs, err := shiftRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		return snap, fmt.Errorf("failed to load shift catalog: %w", err)
	}
	snap.Shifts = make(map[string]shift.Definition, len(defs))
	for _, def := range defs {
		snap.Shifts[def.ID] = def
	}

	requests, err := changeRequestRepo.ApprovedTemporaryByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return snap, fmt.Errorf("failed to load temporary change requests: %w", err)
	}
	snap.TemporaryRequests = requests

	houseDefault, err := shiftRepo.GetHouseDefault(ctx, companyID)
	if err != nil {
		return snap, fmt.Errorf("failed to load house default shift: %w", err)
	}
	snap.HouseDefault = houseDefault

	return snap, nil
}

// SetDefaultShift implements shift.ShiftService.
func (s *ShiftServiceImpl) SetDefaultShift(ctx context.Context, req shift.SetDefaultShiftRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	companyID, err := claimString(ctx, "company_id")
	if err != nil {
		return err
	}

	if _, err := s.ShiftRepository.GetByID(ctx, req.ShiftID, companyID); err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to get shift: %w", err)
	}

	asn, err := s.AssignmentRepository.EnsureForEmployee(ctx, req.EmployeeID, companyID)
	if err != nil {
		return fmt.Errorf("failed to ensure assignment: %w", err)
	}

	if err := s.AssignmentRepository.SetDefaultShift(ctx, asn.ID, req.ShiftID, companyID); err != nil {
		return fmt.Errorf("failed to set default shift: %w", err)
	}
	return nil
}

// SetFlexiblePermanent implements shift.ShiftService.
func (s *ShiftServiceImpl) SetFlexiblePermanent(ctx context.Context, req shift.SetFlexiblePermanentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	companyID, err := claimString(ctx, "company_id")
	if err != nil {
		return err
	}

	asn, err := s.AssignmentRepository.EnsureForEmployee(ctx, req.EmployeeID, companyID)
	if err != nil {
		return fmt.Errorf("failed to ensure assignment: %w", err)
	}

	if err := s.AssignmentRepository.SetFlexiblePermanent(ctx, asn.ID, req.Flexible, companyID); err != nil {
		return fmt.Errorf("failed to set flexible mode: %w", err)
	}
	return nil
}

// SetPatternEntry implements shift.ShiftService.
func (s *ShiftServiceImpl) SetPatternEntry(ctx context.Context, req shift.SetPatternEntryRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	companyID, err := claimString(ctx, "company_id")
	if err != nil {
		return err
	}

	weekday, err := shift.ParseWeekday(req.Weekday)
	if err != nil {
		return err
	}

	if _, err := s.ShiftRepository.GetByID(ctx, req.ShiftID, companyID); err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to get shift: %w", err)
	}

	asn, err := s.AssignmentRepository.EnsureForEmployee(ctx, req.EmployeeID, companyID)
	if err != nil {
		return fmt.Errorf("failed to ensure assignment: %w", err)
	}

	if err := s.AssignmentRepository.SetPatternEntry(ctx, asn.ID, weekday, req.ShiftID, companyID); err != nil {
		return fmt.Errorf("failed to set weekly pattern entry: %w", err)
	}
	return nil
}

// AddPermanentOverride implements shift.ShiftService. Overrides are
// append-only; superseding one means appending a newer one.
func (s *ShiftServiceImpl) AddPermanentOverride(ctx context.Context, req shift.AddPermanentOverrideRequest) (shift.PermanentOverrideResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.PermanentOverrideResponse{}, err
	}

	companyID, err := claimString(ctx, "company_id")
	if err != nil {
		return shift.PermanentOverrideResponse{}, err
	}

	if _, err := s.ShiftRepository.GetByID(ctx, req.ShiftID, companyID); err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.PermanentOverrideResponse{}, shift.ErrShiftNotFound
		}
		return shift.PermanentOverrideResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	asn, err := s.AssignmentRepository.EnsureForEmployee(ctx, req.EmployeeID, companyID)
	if err != nil {
		return shift.PermanentOverrideResponse{}, fmt.Errorf("failed to ensure assignment: %w", err)
	}

	effectiveFrom, _ := validator.IsValidDate(req.EffectiveFrom)
	weekdays := make([]time.Weekday, 0, len(req.Weekdays))
	for _, name := range req.Weekdays {
		wd, err := shift.ParseWeekday(name)
		if err != nil {
			return shift.PermanentOverrideResponse{}, err
		}
		weekdays = append(weekdays, wd)
	}

	override := shift.PermanentOverride{
		AssignmentID:  asn.ID,
		ShiftID:       req.ShiftID,
		EffectiveFrom: effectiveFrom,
		Weekdays:      weekdays,
	}

	created, err := s.AssignmentRepository.AppendPermanentOverride(ctx, override, companyID)
	if err != nil {
		return shift.PermanentOverrideResponse{}, fmt.Errorf("failed to append permanent override: %w", err)
	}

	return shift.PermanentOverrideResponse{
		ID:            created.ID,
		ShiftID:       created.ShiftID,
		EffectiveFrom: created.EffectiveFrom.Format("2006-01-02"),
		Weekdays:      shift.WeekdayNames(created.Weekdays),
		CreatedAt:     created.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// SetDayOverride implements shift.ShiftService.
func (s *ShiftServiceImpl) SetDayOverride(ctx context.Context, req shift.SetDayOverrideRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	companyID, err := claimString(ctx, "company_id")
	if err != nil {
		return err
	}

	asn, err := s.AssignmentRepository.EnsureForEmployee(ctx, req.EmployeeID, companyID)
	if err != nil {
		return fmt.Errorf("failed to ensure assignment: %w", err)
	}

	override := shift.DayOverride{
		Date:          req.Date,
		DurationHours: req.DurationHours,
		Flexible:      req.Flexible,
	}
	if req.Flexible {
		override.StartTime = timeOfDay(0, 0)
		override.EndTime = timeOfDay(23, 59)
	} else {
		start, _ := validator.IsValidTimeOfDay(req.StartTime)
		end, _ := validator.IsValidTimeOfDay(req.EndTime)
		override.StartTime = start
		override.EndTime = end
	}

	if err := s.AssignmentRepository.UpsertDayOverride(ctx, asn.ID, override, companyID); err != nil {
		return fmt.Errorf("failed to set day override: %w", err)
	}
	return nil
}

// ClearDayOverride implements shift.ShiftService.
func (s *ShiftServiceImpl) ClearDayOverride(ctx context.Context, employeeID, date string) error {
	companyID, err := claimString(ctx, "company_id")
	if err != nil {
		return err
	}

	if _, ok := validator.IsValidDate(date); !ok {
		return shift.ErrInvalidDateFormat
	}

	asn, err := s.AssignmentRepository.GetByEmployeeID(ctx, employeeID, companyID)
	if err != nil {
		return fmt.Errorf("failed to load assignment: %w", err)
	}
	if asn == nil {
		return shift.ErrAssignmentNotFound
	}

	if err := s.AssignmentRepository.ClearDayOverride(ctx, asn.ID, date, companyID); err != nil {
		if errors.Is(err, shift.ErrDayOverrideNotFound) {
			return shift.ErrDayOverrideNotFound
		}
		return fmt.Errorf("failed to clear day override: %w", err)
	}
	return nil
}

// SubmitChangeRequest implements shift.ShiftService.
func (s *ShiftServiceImpl) SubmitChangeRequest(ctx context.Context, req shift.SubmitChangeRequestRequest) (shift.ChangeRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ChangeRequestResponse{}, err
	}

	companyID, err := claimString(ctx, "company_id")
	if err != nil {
		return shift.ChangeRequestResponse{}, err
	}
	employeeID, err := claimString(ctx, "employee_id")
	if err != nil {
		return shift.ChangeRequestResponse{}, err
	}

	if _, err := s.ShiftRepository.GetByID(ctx, req.ShiftID, companyID); err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.ChangeRequestResponse{}, shift.ErrShiftNotFound
		}
		return shift.ChangeRequestResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	var endDate *time.Time
	if req.EndDate != nil {
		end, _ := validator.IsValidDate(*req.EndDate)
		endDate = &end
	}
	weekdays := make([]time.Weekday, 0, len(req.Weekdays))
	for _, name := range req.Weekdays {
		wd, err := shift.ParseWeekday(name)
		if err != nil {
			return shift.ChangeRequestResponse{}, err
		}
		weekdays = append(weekdays, wd)
	}

	created, err := s.ChangeRequestRepository.Create(ctx, shift.ChangeRequest{
		EmployeeID: employeeID,
		CompanyID:  companyID,
		ShiftID:    req.ShiftID,
		Type:       shift.RequestType(req.Type),
		StartDate:  startDate,
		EndDate:    endDate,
		Weekdays:   weekdays,
		Status:     shift.RequestPending,
	})
	if err != nil {
		return shift.ChangeRequestResponse{}, fmt.Errorf("failed to create change request: %w", err)
	}

	return mapChangeRequestToResponse(created), nil
}

// ListChangeRequests implements shift.ShiftService.
func (s *ShiftServiceImpl) ListChangeRequests(ctx context.Context, filter shift.ChangeRequestFilter) (shift.ListChangeRequestResponse, error) {
	companyID, err := claimString(ctx, "company_id")
	if err != nil {
		return shift.ListChangeRequestResponse{}, err
	}

	requests, total, err := s.ChangeRequestRepository.List(ctx, filter, companyID)
	if err != nil {
		return shift.ListChangeRequestResponse{}, fmt.Errorf("failed to list change requests: %w", err)
	}

	responses := make([]shift.ChangeRequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, mapChangeRequestToResponse(req))
	}

	return shift.ListChangeRequestResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Requests:   responses,
	}, nil
}

// ApproveChangeRequest implements shift.ShiftService. Approving a permanent
// or partialWeekly request materializes a permanent override onto the
// assignment in the same transaction; temporary requests are read directly
// by the resolver and only need the status flip.
func (s *ShiftServiceImpl) ApproveChangeRequest(ctx context.Context, requestID string) error {
	companyID, err := claimString(ctx, "company_id")
	if err != nil {
		return err
	}
	userID, err := claimString(ctx, "user_id")
	if err != nil {
		return err
	}

	request, err := s.ChangeRequestRepository.GetByID(ctx, requestID, companyID)
	if err != nil {
		if errors.Is(err, shift.ErrChangeRequestNotFound) {
			return shift.ErrChangeRequestNotFound
		}
		return fmt.Errorf("failed to get change request: %w", err)
	}
	if request.Status != shift.RequestPending {
		return shift.ErrChangeRequestAlreadyProcessed
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.ChangeRequestRepository.UpdateStatus(txCtx, requestID, shift.RequestApproved, userID, nil, companyID); err != nil {
			return fmt.Errorf("failed to approve change request: %w", err)
		}

		if request.Type == shift.RequestTemporary {
			return nil
		}

		asn, err := s.AssignmentRepository.EnsureForEmployee(txCtx, request.EmployeeID, companyID)
		if err != nil {
			return fmt.Errorf("failed to ensure assignment: %w", err)
		}

		override := shift.PermanentOverride{
			AssignmentID:  asn.ID,
			ShiftID:       request.ShiftID,
			EffectiveFrom: request.StartDate,
		}
		if request.Type == shift.RequestPartialWeekly {
			override.Weekdays = request.Weekdays
		}

		if _, err := s.AssignmentRepository.AppendPermanentOverride(txCtx, override, companyID); err != nil {
			return fmt.Errorf("failed to materialize permanent override: %w", err)
		}
		return nil
	})
}

// RejectChangeRequest implements shift.ShiftService.
func (s *ShiftServiceImpl) RejectChangeRequest(ctx context.Context, req shift.RejectChangeRequestRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	companyID, err := claimString(ctx, "company_id")
	if err != nil {
		return err
	}
	userID, err := claimString(ctx, "user_id")
	if err != nil {
		return err
	}

	request, err := s.ChangeRequestRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		if errors.Is(err, shift.ErrChangeRequestNotFound) {
			return shift.ErrChangeRequestNotFound
		}
		return fmt.Errorf("failed to get change request: %w", err)
	}
	if request.Status != shift.RequestPending {
		return shift.ErrChangeRequestAlreadyProcessed
	}

	if err := s.ChangeRequestRepository.UpdateStatus(ctx, req.ID, shift.RequestRejected, userID, &req.Reason, companyID); err != nil {
		return fmt.Errorf("failed to reject change request: %w", err)
	}
	return nil
}

func mapChangeRequestToResponse(req shift.ChangeRequest) shift.ChangeRequestResponse {
	var endDate *string
	if req.EndDate != nil {
		formatted := req.EndDate.Format("2006-01-02")
		endDate = &formatted
	}
	return shift.ChangeRequestResponse{
		ID:              req.ID,
		EmployeeID:      req.EmployeeID,
		EmployeeName:    req.EmployeeName,
		ShiftID:         req.ShiftID,
		Type:            string(req.Type),
		StartDate:       req.StartDate.Format("2006-01-02"),
		EndDate:         endDate,
		Weekdays:        shift.WeekdayNames(req.Weekdays),
		Status:          string(req.Status),
		RejectionReason: req.RejectionReason,
		CreatedAt:       req.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
