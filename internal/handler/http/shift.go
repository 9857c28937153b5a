package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/shift"
	"github.com/workpulse-hr/attendance-engine-go/internal/handler/http/response"
	"github.com/workpulse-hr/attendance-engine-go/internal/pkg/validator"
)

type ShiftHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)
	SetDefaultShift(w http.ResponseWriter, r *http.Request)
	SetFlexiblePermanent(w http.ResponseWriter, r *http.Request)
	SetPatternEntry(w http.ResponseWriter, r *http.Request)
	AddPermanentOverride(w http.ResponseWriter, r *http.Request)
	SetDayOverride(w http.ResponseWriter, r *http.Request)
	ClearDayOverride(w http.ResponseWriter, r *http.Request)
	SubmitChangeRequest(w http.ResponseWriter, r *http.Request)
	ListChangeRequests(w http.ResponseWriter, r *http.Request)
	ApproveChangeRequest(w http.ResponseWriter, r *http.Request)
	RejectChangeRequest(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{
		shiftService: shiftService,
	}
}

// Create implements ShiftHandler.
func (h *shiftHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.shiftService.CreateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created", result)
}

// Get implements ShiftHandler.
func (h *shiftHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.shiftService.GetShift(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements ShiftHandler.
func (h *shiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.shiftService.ListShifts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements ShiftHandler.
func (h *shiftHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.shiftService.DeleteShift(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted", nil)
}

// Resolve implements ShiftHandler.
func (h *shiftHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	date, err := parseDateQuery(r, "date")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.shiftService.ResolveShift(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if result == nil {
		response.Success(w, nil)
		return
	}

	response.Success(w, shift.NewResolvedShiftResponse(*result))
}

// SetDefaultShift implements ShiftHandler.
func (h *shiftHandlerImpl) SetDefaultShift(w http.ResponseWriter, r *http.Request) {
	var req shift.SetDefaultShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.shiftService.SetDefaultShift(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Default shift updated", nil)
}

// SetFlexiblePermanent implements ShiftHandler.
func (h *shiftHandlerImpl) SetFlexiblePermanent(w http.ResponseWriter, r *http.Request) {
	var req shift.SetFlexiblePermanentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.shiftService.SetFlexiblePermanent(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Flexible permanent flag updated", nil)
}

// SetPatternEntry implements ShiftHandler.
func (h *shiftHandlerImpl) SetPatternEntry(w http.ResponseWriter, r *http.Request) {
	var req shift.SetPatternEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.shiftService.SetPatternEntry(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Weekly pattern updated", nil)
}

// AddPermanentOverride implements ShiftHandler.
func (h *shiftHandlerImpl) AddPermanentOverride(w http.ResponseWriter, r *http.Request) {
	var req shift.AddPermanentOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.shiftService.AddPermanentOverride(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Permanent override added", result)
}

// SetDayOverride implements ShiftHandler.
func (h *shiftHandlerImpl) SetDayOverride(w http.ResponseWriter, r *http.Request) {
	var req shift.SetDayOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.shiftService.SetDayOverride(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day override set", nil)
}

// ClearDayOverride implements ShiftHandler.
func (h *shiftHandlerImpl) ClearDayOverride(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	date := chi.URLParam(r, "date")

	if err := h.shiftService.ClearDayOverride(r.Context(), employeeID, date); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day override cleared", nil)
}

// SubmitChangeRequest implements ShiftHandler.
func (h *shiftHandlerImpl) SubmitChangeRequest(w http.ResponseWriter, r *http.Request) {
	var req shift.SubmitChangeRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.shiftService.SubmitChangeRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift change request submitted", result)
}

// ListChangeRequests implements ShiftHandler.
func (h *shiftHandlerImpl) ListChangeRequests(w http.ResponseWriter, r *http.Request) {
	filter := shift.ChangeRequestFilter{
		Page:  1,
		Limit: 20,
	}

	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	result, err := h.shiftService.ListChangeRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Requests, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}

// ApproveChangeRequest implements ShiftHandler.
func (h *shiftHandlerImpl) ApproveChangeRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.shiftService.ApproveChangeRequest(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift change request approved", nil)
}

// RejectChangeRequest implements ShiftHandler.
func (h *shiftHandlerImpl) RejectChangeRequest(w http.ResponseWriter, r *http.Request) {
	var req shift.RejectChangeRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.shiftService.RejectChangeRequest(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift change request rejected", nil)
}

// parseDateQuery reads a required YYYY-MM-DD query parameter.
func parseDateQuery(r *http.Request, key string) (time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}, shift.ErrInvalidDateFormat
	}
	date, ok := validator.IsValidDate(raw)
	if !ok {
		return time.Time{}, shift.ErrInvalidDateFormat
	}
	return date, nil
}
