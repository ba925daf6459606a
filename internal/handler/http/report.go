package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/report"
	"github.com/stafflow-hr/workforce-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	ExportAttendance(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// ExportAttendance implements ReportHandler.
func (h *ReportHandlerImpl) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	var req report.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ExportAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	ack, err := h.reportService.ExportAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Accepted(w, "Report queued for delivery", ack)
}
