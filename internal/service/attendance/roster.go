package attendance

import (
	"context"
	"fmt"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/attendance"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/authctx"
)

// RosterForDate implements attendance.Service. A worker is present when a
// record with the present flag exists for the date; everyone else among the
// tenant's active workers is absent.
func (s *ServiceImpl) RosterForDate(ctx context.Context, dateStr string) (attendance.RosterResponse, error) {
	caller, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.RosterResponse{}, fmt.Errorf("failed to resolve caller identity: %w", err)
	}

	date, ok := parseDay(dateStr)
	if !ok {
		return attendance.RosterResponse{}, attendance.ErrInvalidDate
	}

	workers, err := s.workerRepo.ListActive(ctx, caller.TenantID)
	if err != nil {
		return attendance.RosterResponse{}, fmt.Errorf("failed to list active workers: %w", err)
	}

	records, err := s.Repository.ListByDate(ctx, caller.TenantID, date)
	if err != nil {
		return attendance.RosterResponse{}, fmt.Errorf("failed to list day records: %w", err)
	}

	recordByWorker := make(map[string]attendance.DayRecord, len(records))
	for _, record := range records {
		recordByWorker[record.WorkerID] = record
	}

	resp := attendance.RosterResponse{
		Date:    date.Format("2006-01-02"),
		Present: []attendance.WorkerSummary{},
		Absent:  []attendance.WorkerSummary{},
	}

	for _, wrk := range workers {
		summary := attendance.WorkerSummary{
			WorkerID:   wrk.ID,
			WorkerName: wrk.FullName(),
		}
		if wrk.ShiftName != nil {
			summary.ShiftName = *wrk.ShiftName
		}

		record, hasRecord := recordByWorker[wrk.ID]
		if hasRecord && record.StatusFlag == attendance.FlagPresent {
			summary.StatusFlag = record.StatusFlag
			resp.Present = append(resp.Present, summary)
		} else {
			summary.StatusFlag = attendance.FlagAbsent
			if hasRecord && record.StatusFlag != "" {
				summary.StatusFlag = record.StatusFlag
			}
			resp.Absent = append(resp.Absent, summary)
		}

		if wrk.ID == caller.WorkerID && hasRecord {
			// Incomplete only applies to a present day still waiting for its
			// logout; an open leave or holiday record is not incomplete.
			resp.ViewerIsIncomplete = record.StatusFlag == attendance.FlagPresent && record.IsOpen()
			resp.ViewerHasFaceCapture = record.LoginImageRef != nil
		}
	}

	return resp, nil
}
