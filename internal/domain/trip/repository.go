package trip

import (
	"context"
	"errors"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/tenant"
)

var ErrTripNotFound = errors.New("trip not found")

// Repository defines read access to recorded trips.
type Repository interface {
	GetByID(ctx context.Context, id string, scope tenant.Scope) (Trip, error)
}
