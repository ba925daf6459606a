package worker

import (
	"context"
	"errors"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/tenant"
)

var ErrWorkerNotFound = errors.New("worker not found")

// Repository defines read access to workers.
type Repository interface {
	// GetByID retrieves one worker within a tenant. Used on write paths,
	// where the master bypass never applies.
	GetByID(ctx context.Context, id, tenantID string) (Worker, error)

	// Find retrieves one worker visible to the scope. Master-tenant reads
	// span all tenants.
	Find(ctx context.Context, id string, scope tenant.Scope) (Worker, error)

	// ListActive returns the tenant's active workers.
	ListActive(ctx context.Context, tenantID string) ([]Worker, error)

	// ListActiveAll returns active workers across all tenants. Used by the
	// accrual batch only.
	ListActiveAll(ctx context.Context) ([]Worker, error)
}
