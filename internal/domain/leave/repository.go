package leave

import (
	"context"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/tenant"
)

// BalanceRepository defines data access for leave balances and the accrual
// ledger guarding at-most-once credit per period.
type BalanceRepository interface {
	// GetByWorker returns the worker's balance, or nil when none exists yet.
	GetByWorker(ctx context.Context, tenantID, workerID string) (*Balance, error)

	// Create inserts a new balance record.
	Create(ctx context.Context, balance Balance) (Balance, error)

	// Credit adds the increments to an existing balance in place.
	Credit(ctx context.Context, tenantID, workerID string, inc Increments, updatedBy, updatorIP string) error

	// MarkPeriod records that the worker was credited for the period.
	// Returns false when a mark for (tenant, worker, period) already exists,
	// in which case the caller must not credit again.
	MarkPeriod(ctx context.Context, tenantID, workerID, periodKey string) (bool, error)

	// ListByScope returns balances visible under the caller's read scope,
	// optionally narrowed to one worker.
	ListByScope(ctx context.Context, scope tenant.Scope, workerID *string) ([]Balance, error)
}
