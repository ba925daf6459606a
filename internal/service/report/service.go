package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/attendance"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/report"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/tenant"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/authctx"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/email"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/export"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ServiceImpl struct {
	attendanceRepo attendance.Repository
	emailSvc       email.EmailService
	masterTenantID string
	now            func() time.Time
}

func NewService(attendanceRepo attendance.Repository, emailSvc email.EmailService, masterTenantID string) *ServiceImpl {
	return &ServiceImpl{
		attendanceRepo: attendanceRepo,
		emailSvc:       emailSvc,
		masterTenantID: masterTenantID,
		now:            time.Now,
	}
}

// ExportAttendance implements report.Service.
func (s *ServiceImpl) ExportAttendance(ctx context.Context, req report.ExportRequest) (report.ExportResponse, error) {
	if validator.IsEmpty(req.Recipient) {
		return report.ExportResponse{}, validator.ValidationErrors{{
			Field:   "recipient",
			Message: "recipient is required",
		}}
	}

	caller, err := authctx.FromContext(ctx)
	if err != nil {
		return report.ExportResponse{}, fmt.Errorf("failed to resolve caller identity: %w", err)
	}

	scope := tenant.NewScope(caller.TenantID, s.masterTenantID)
	records, err := s.attendanceRepo.List(ctx, scope)
	if err != nil {
		return report.ExportResponse{}, fmt.Errorf("failed to list day records: %w", err)
	}

	buf, err := export.ToExcel(buildSheet(records))
	if err != nil {
		return report.ExportResponse{}, fmt.Errorf("failed to build workbook: %w", err)
	}

	filename := fmt.Sprintf("attendance-%s.xlsx", s.now().Format("2006-01-02"))
	attachment := &email.Attachment{
		Filename:    filename,
		ContentType: xlsxContentType,
		Data:        buf.Bytes(),
	}

	// Delivery is fire and forget; the caller gets an ack, the mailer logs
	// its own outcome.
	go func() {
		subject := "Attendance Report"
		body := fmt.Sprintf("Attached: attendance report with %d records, generated %s.",
			len(records), s.now().Format("2006-01-02 15:04:05"))
		if err := s.emailSvc.SendReport(req.Recipient, subject, body, attachment); err != nil {
			slog.Error("Failed to deliver attendance report", "recipient", req.Recipient, "error", err)
		}
	}()

	return report.ExportResponse{
		Recipient: req.Recipient,
		Records:   len(records),
	}, nil
}

func buildSheet(records []attendance.DayRecord) export.Sheet {
	sheet := export.Sheet{
		Name: "Attendance",
		Headers: []string{
			"Worker ID", "Worker Name", "Date", "Login Time", "Logout Time",
			"Late", "Early Logout", "Total Hours", "Overtime Hours", "Status",
		},
		Rows: make([][]interface{}, 0, len(records)),
	}

	for _, record := range records {
		workerName := ""
		if record.WorkerName != nil {
			workerName = *record.WorkerName
		}
		sheet.Rows = append(sheet.Rows, []interface{}{
			record.WorkerID,
			workerName,
			record.Date.Format("2006-01-02"),
			formatTime(record.LoginTime),
			formatTime(record.LogoutTime),
			record.IsLate,
			record.IsEarlyLogout,
			record.TotalHours,
			record.OvertimeHours,
			record.StatusFlag,
		})
	}

	return sheet
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
