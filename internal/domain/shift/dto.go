package shift

import (
	"strings"
	"time"

	"github.com/workpulse-hr/attendance-engine-go/internal/pkg/validator"
)

// ========================================
// SHIFT CATALOG DTOs
// ========================================

type CreateShiftRequest struct {
	Name           string  `json:"name"`
	StartTime      string  `json:"start_time"` // HH:MM
	EndTime        string  `json:"end_time"`   // HH:MM
	DurationHours  float64 `json:"duration_hours"`
	Flexible       bool    `json:"flexible"`
	IsHouseDefault bool    `json:"is_house_default"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !r.Flexible {
		if _, ok := validator.IsValidTimeOfDay(r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be in HH:MM format",
			})
		}
		if _, ok := validator.IsValidTimeOfDay(r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be in HH:MM format",
			})
		}
	}

	if r.DurationHours <= 0 || r.DurationHours > 24 {
		errs = append(errs, validator.ValidationError{
			Field:   "duration_hours",
			Message: "duration_hours must be between 0 and 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	DurationHours  float64 `json:"duration_hours"`
	Flexible       bool    `json:"flexible"`
	IsHouseDefault bool    `json:"is_house_default"`
	IsNightShift   bool    `json:"is_night_shift"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type ResolvedShiftResponse struct {
	ShiftResponse
	Source            string `json:"source"`
	FlexiblePermanent bool   `json:"flexible_permanent"`
	OneDayFlexible    bool   `json:"one_day_flexible"`
}

// ========================================
// ASSIGNMENT DTOs
// ========================================

type SetDefaultShiftRequest struct {
	EmployeeID string `json:"employee_id"`
	ShiftID    string `json:"shift_id"`
}

func (r *SetDefaultShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	} else if !validator.IsValidUUID(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id must be a valid id",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetFlexiblePermanentRequest struct {
	EmployeeID string `json:"employee_id"`
	Flexible   bool   `json:"flexible"`
}

func (r *SetFlexiblePermanentRequest) Validate() error {
	if validator.IsEmpty(r.EmployeeID) {
		return validator.ValidationErrors{{
			Field:   "employee_id",
			Message: "employee_id is required",
		}}
	}
	return nil
}

type SetPatternEntryRequest struct {
	EmployeeID string `json:"employee_id"`
	Weekday    string `json:"weekday"` // monday..sunday
	ShiftID    string `json:"shift_id"`
}

func (r *SetPatternEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, err := ParseWeekday(r.Weekday); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "weekday",
			Message: "weekday must be one of monday..sunday",
		})
	}
	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AddPermanentOverrideRequest struct {
	EmployeeID    string   `json:"employee_id"`
	ShiftID       string   `json:"shift_id"`
	EffectiveFrom string   `json:"effective_from"` // YYYY-MM-DD
	Weekdays      []string `json:"weekdays,omitempty"`
}

func (r *AddPermanentOverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_from",
			Message: "effective_from must be in YYYY-MM-DD format",
		})
	}
	for _, wd := range r.Weekdays {
		if _, err := ParseWeekday(wd); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "weekdays",
				Message: "weekdays entries must be monday..sunday",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PermanentOverrideResponse struct {
	ID            string   `json:"id"`
	ShiftID       string   `json:"shift_id"`
	EffectiveFrom string   `json:"effective_from"`
	Weekdays      []string `json:"weekdays,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

type SetDayOverrideRequest struct {
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"` // YYYY-MM-DD
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	DurationHours float64 `json:"duration_hours"`
	Flexible      bool    `json:"flexible"`
}

func (r *SetDayOverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if !r.Flexible {
		if _, ok := validator.IsValidTimeOfDay(r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be in HH:MM format",
			})
		}
		if _, ok := validator.IsValidTimeOfDay(r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be in HH:MM format",
			})
		}
	}
	if r.DurationHours < 0 || r.DurationHours > 24 {
		errs = append(errs, validator.ValidationError{
			Field:   "duration_hours",
			Message: "duration_hours must be between 0 and 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// CHANGE REQUEST DTOs
// ========================================

type SubmitChangeRequestRequest struct {
	ShiftID   string   `json:"shift_id"`
	Type      string   `json:"type"` // temporary | permanent | partialWeekly
	StartDate string   `json:"start_date"`
	EndDate   *string  `json:"end_date,omitempty"`
	Weekdays  []string `json:"weekdays,omitempty"`
}

func (r *SubmitChangeRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	} else if !validator.IsValidUUID(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id must be a valid id",
		})
	}
	if !validator.IsInSlice(r.Type, RequestTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be temporary, permanent or partialWeekly",
		})
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	if r.Type == string(RequestTemporary) {
		if r.EndDate == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date is required for temporary requests",
			})
		} else if end, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else if startOK && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}
	if r.Type == string(RequestPartialWeekly) && len(r.Weekdays) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "weekdays",
			Message: "weekdays are required for partialWeekly requests",
		})
	}
	for _, wd := range r.Weekdays {
		if _, err := ParseWeekday(wd); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "weekdays",
				Message: "weekdays entries must be monday..sunday",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectChangeRequestRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

func (r *RejectChangeRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "request id is required",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ChangeRequestFilter struct {
	EmployeeID *string
	Status     *string
	Page       int
	Limit      int
}

type ChangeRequestResponse struct {
	ID              string   `json:"id"`
	EmployeeID      string   `json:"employee_id"`
	EmployeeName    *string  `json:"employee_name,omitempty"`
	ShiftID         string   `json:"shift_id"`
	Type            string   `json:"type"`
	StartDate       string   `json:"start_date"`
	EndDate         *string  `json:"end_date,omitempty"`
	Weekdays        []string `json:"weekdays,omitempty"`
	Status          string   `json:"status"`
	RejectionReason *string  `json:"rejection_reason,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

type ListChangeRequestResponse struct {
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	Requests   []ChangeRequestResponse `json:"requests"`
}

// NewShiftResponse maps a catalog definition to its response shape.
func NewShiftResponse(d Definition) ShiftResponse {
	return ShiftResponse{
		ID:             d.ID,
		Name:           d.Name,
		StartTime:      d.StartTime.Format("15:04"),
		EndTime:        d.EndTime.Format("15:04"),
		DurationHours:  d.DurationHours,
		Flexible:       d.Flexible,
		IsHouseDefault: d.IsHouseDefault,
		IsNightShift:   d.IsNightShift(),
		CreatedAt:      d.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:      d.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// NewResolvedShiftResponse maps a resolved shift, including its precedence
// source and flexibility flags.
func NewResolvedShiftResponse(r Resolved) ResolvedShiftResponse {
	return ResolvedShiftResponse{
		ShiftResponse:     NewShiftResponse(r.Definition),
		Source:            string(r.Source),
		FlexiblePermanent: r.FlexiblePermanent,
		OneDayFlexible:    r.OneDayFlexible,
	}
}

// ========================================
// WEEKDAY HELPERS
// ========================================

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday converts a lowercase-insensitive weekday name to time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	if wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return wd, nil
	}
	return 0, ErrInvalidWeekday
}

// WeekdayNames converts weekdays back to their lowercase names for responses.
func WeekdayNames(weekdays []time.Weekday) []string {
	if len(weekdays) == 0 {
		return nil
	}
	names := make([]string, 0, len(weekdays))
	for _, wd := range weekdays {
		names = append(names, strings.ToLower(wd.String()))
	}
	return names
}
