package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/leave"
	"github.com/stafflow-hr/workforce-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	ListBalances(w http.ResponseWriter, r *http.Request)
	RunAccrual(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	accrualService leave.AccrualService
}

func NewLeaveHandler(accrualService leave.AccrualService) LeaveHandler {
	return &LeaveHandlerImpl{accrualService: accrualService}
}

// ListBalances implements LeaveHandler.
func (h *LeaveHandlerImpl) ListBalances(w http.ResponseWriter, r *http.Request) {
	var workerID *string
	if v := r.URL.Query().Get("worker_id"); v != "" {
		workerID = &v
	}

	balances, err := h.accrualService.BalanceReport(r.Context(), workerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

type runAccrualRequest struct {
	PeriodKey string `json:"period_key"`
}

// RunAccrual implements LeaveHandler. Operator-triggered run; the period
// ledger makes repeats of the same period no-ops.
func (h *LeaveHandlerImpl) RunAccrual(w http.ResponseWriter, r *http.Request) {
	var req runAccrualRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("RunAccrual decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	report, err := h.accrualService.Run(r.Context(), req.PeriodKey)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Accrual run finished", report)
}
