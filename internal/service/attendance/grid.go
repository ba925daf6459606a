package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/attendance"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/tenant"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/worker"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/authctx"
)

// MonthlyGrid implements attendance.Service. Every calendar day of the month
// gets exactly one cell; days without a stored record are absent.
func (s *ServiceImpl) MonthlyGrid(ctx context.Context, workerID, month string) ([]attendance.GridCell, error) {
	caller, err := authctx.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve caller identity: %w", err)
	}

	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, attendance.ErrInvalidMonth
	}
	last := first.AddDate(0, 1, -1)

	scope := tenant.NewScope(caller.TenantID, s.masterTenantID)
	if _, err := s.workerRepo.Find(ctx, workerID, scope); err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return nil, worker.ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	records, err := s.Repository.ListByWorkerAndRange(ctx, workerID, first, last, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list day records: %w", err)
	}

	statusByDay := make(map[int]string, len(records))
	for _, record := range records {
		status := record.StatusFlag
		if status == "" {
			status = attendance.FlagAbsent
		}
		statusByDay[record.Date.Day()] = status
	}

	cells := make([]attendance.GridCell, 0, last.Day())
	for day := 1; day <= last.Day(); day++ {
		status, ok := statusByDay[day]
		if !ok {
			status = attendance.FlagAbsent
		}
		cells = append(cells, attendance.GridCell{
			Day:    day,
			Status: status,
			Date:   time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
		})
	}

	return cells, nil
}
