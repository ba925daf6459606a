package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/attendance"
	"github.com/stafflow-hr/workforce-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	RecordEvent(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
	MonthlyGrid(w http.ResponseWriter, r *http.Request)
	Roster(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// RecordEvent implements AttendanceHandler.
func (h *AttendanceHandlerImpl) RecordEvent(w http.ResponseWriter, r *http.Request) {
	var req attendance.EventRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RecordEvent decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, outcome, err := h.attendanceService.RecordEvent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if outcome == attendance.OutcomeCreated {
		response.Created(w, string(outcome), record)
		return
	}
	response.SuccessWithMessage(w, string(outcome), record)
}

// GetRecord implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	record, err := h.attendanceService.GetRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

// MonthlyGrid implements AttendanceHandler.
func (h *AttendanceHandlerImpl) MonthlyGrid(w http.ResponseWriter, r *http.Request) {
	workerID := r.URL.Query().Get("worker_id")
	month := r.URL.Query().Get("month")
	if workerID == "" || month == "" {
		response.BadRequest(w, "worker_id and month are required", nil)
		return
	}

	grid, err := h.attendanceService.MonthlyGrid(r.Context(), workerID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, grid)
}

// Roster implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Roster(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "date is required", nil)
		return
	}

	roster, err := h.attendanceService.RosterForDate(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, roster)
}
