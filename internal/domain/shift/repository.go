package shift

import (
	"context"
	"errors"
)

var ErrShiftNotFound = errors.New("shift not found")

// Repository defines read access to shift definitions.
type Repository interface {
	GetByName(ctx context.Context, tenantID, name string) (Definition, error)
}
