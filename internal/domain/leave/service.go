package leave

import "context"

// AccrualService runs the periodic leave credit over all active workers.
type AccrualService interface {
	// Run credits every active worker across all tenants once for the period.
	// An empty periodKey means the current calendar month. Re-running within
	// the same period leaves balances unchanged. Per-worker failures are
	// logged and counted, never aborting the batch.
	Run(ctx context.Context, periodKey string) (AccrualReport, error)

	// BalanceReport returns the balances visible to the caller, optionally
	// narrowed to one worker.
	BalanceReport(ctx context.Context, workerID *string) ([]BalanceResponse, error)
}

type BalanceResponse struct {
	ID          string  `json:"id"`
	WorkerID    string  `json:"worker_id"`
	EarnedLeave float64 `json:"earned_leave"`
	SickLeave   float64 `json:"sick_leave"`
	CasualLeave float64 `json:"casual_leave"`
	UpdatedAt   string  `json:"updated_at"`
}
