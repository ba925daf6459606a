package leave

import "time"

// Balance is one worker's leave balances. One record per worker, created
// lazily on the first accrual run and credited in place afterwards. Accrual
// only adds; consumption is handled elsewhere.
type Balance struct {
	ID          string
	TenantID    string
	WorkerID    string
	EarnedLeave float64
	SickLeave   float64
	CasualLeave float64

	CreatedBy string
	UpdatedBy string
	CreatorIP string
	UpdatorIP string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Increments is the per-period credit applied to every active worker.
type Increments struct {
	EarnedLeave float64
	SickLeave   float64
	CasualLeave float64
}

// AccrualReport is the operator-visible outcome of one accrual run.
type AccrualReport struct {
	PeriodKey string `json:"period_key"`
	Credited  int    `json:"credited"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
}
