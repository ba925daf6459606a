package attendance

import (
	"context"
	"time"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/tenant"
)

// Repository defines data access for day records. The (tenant, worker, date)
// key is unique at the storage layer so concurrent login and logout events
// can never double-create a record.
type Repository interface {
	// Create inserts a new day record. Returns ErrDuplicateDay when a record
	// for the same (tenant, worker, date) already exists.
	Create(ctx context.Context, record DayRecord) (DayRecord, error)

	// ApplyLogout merges the patch into the existing record for the key,
	// field by field; nil patch fields keep the stored value. Returns
	// ErrRecordNotFound when no record exists for the key.
	ApplyLogout(ctx context.Context, tenantID, workerID string, date time.Time, patch LogoutPatch) (DayRecord, error)

	// GetByWorkerAndDate returns the record for the key, or nil when none exists.
	GetByWorkerAndDate(ctx context.Context, tenantID, workerID string, date time.Time) (*DayRecord, error)

	// GetByID retrieves one record under the caller's read scope.
	GetByID(ctx context.Context, id string, scope tenant.Scope) (DayRecord, error)

	// ListByWorkerAndRange returns a worker's records with date in [from, to].
	ListByWorkerAndRange(ctx context.Context, workerID string, from, to time.Time, scope tenant.Scope) ([]DayRecord, error)

	// ListByDate returns all records of a tenant for one date.
	ListByDate(ctx context.Context, tenantID string, date time.Time) ([]DayRecord, error)

	// List returns all records visible under the caller's read scope,
	// newest first. Used by the export path.
	List(ctx context.Context, scope tenant.Scope) ([]DayRecord, error)
}
