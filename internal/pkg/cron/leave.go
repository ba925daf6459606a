package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/leave"
)

// LeaveJobs holds the scheduled leave accrual work.
type LeaveJobs struct {
	accrualSvc leave.AccrualService
	now        func() time.Time
}

func NewLeaveJobs(accrualSvc leave.AccrualService) *LeaveJobs {
	return &LeaveJobs{
		accrualSvc: accrualSvc,
		now:        time.Now,
	}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("monthly_leave_accrual", MonthlyAt{Day: 1, Hour: 0}, j.RunMonthlyAccrual)
}

// RunMonthlyAccrual credits the period the clock currently falls in. The
// accrual ledger makes a repeated invocation within one period harmless.
func (j *LeaveJobs) RunMonthlyAccrual(ctx context.Context) error {
	period := j.now().UTC().Format("2006-01")

	slog.Info("starting monthly leave accrual job", "period", period)

	report, err := j.accrualSvc.Run(ctx, period)
	if err != nil {
		return fmt.Errorf("failed to run leave accrual: %w", err)
	}

	slog.Info("monthly leave accrual finished",
		"period", report.PeriodKey,
		"credited", report.Credited,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	return nil
}
