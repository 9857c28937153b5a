package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/attendance"
	"github.com/workpulse-hr/attendance-engine-go/internal/domain/timeline"
	"github.com/workpulse-hr/attendance-engine-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	RecordEvent(w http.ResponseWriter, r *http.Request)
	GetTimeline(w http.ResponseWriter, r *http.Request)
	GetMyDay(w http.ResponseWriter, r *http.Request)
	ListMyDays(w http.ResponseWriter, r *http.Request)
	GetEmployeeDay(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	timelineService   timeline.TimelineService
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(timelineService timeline.TimelineService, attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		timelineService:   timelineService,
		attendanceService: attendanceService,
	}
}

// RecordEvent implements AttendanceHandler.
func (h *attendanceHandlerImpl) RecordEvent(w http.ResponseWriter, r *http.Request) {
	var req timeline.RecordEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timelineService.RecordEvent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Event recorded", result)
}

// GetTimeline implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetTimeline(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	day, err := parseDateQuery(r, "date")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timelineService.GetDay(r.Context(), employeeID, day)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	events := make([]timeline.EventResponse, 0, len(result.Events))
	for _, ev := range result.Events {
		events = append(events, timeline.NewEventResponse(ev))
	}

	response.Success(w, timeline.DayTimelineResponse{
		Events:           events,
		CurrentlyWorking: result.CurrentlyWorking,
		OnBreak:          result.OnBreak,
	})
}

// GetMyDay implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyDay(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateQuery(r, "date")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetMyDay(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListMyDays implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListMyDays(w http.ResponseWriter, r *http.Request) {
	start, err := parseDateQuery(r, "start")
	if err != nil {
		response.HandleError(w, attendance.ErrInvalidDateFormat)
		return
	}
	end, err := parseDateQuery(r, "end")
	if err != nil {
		response.HandleError(w, attendance.ErrInvalidDateFormat)
		return
	}

	result, err := h.attendanceService.ListMyDays(r.Context(), start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEmployeeDay implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetEmployeeDay(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	date, err := parseDateQuery(r, "date")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetEmployeeDay(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
