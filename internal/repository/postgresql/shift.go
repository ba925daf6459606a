package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/shift"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.Repository {
	return &shiftRepositoryImpl{db: db}
}

// GetByName implements shift.Repository.
func (r *shiftRepositoryImpl) GetByName(ctx context.Context, tenantID, name string) (shift.Definition, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, name, start_time, end_time, created_at, updated_at
		FROM shifts
		WHERE tenant_id = $1 AND name = $2
	`

	var def shift.Definition
	err := q.QueryRow(ctx, query, tenantID, name).Scan(
		&def.ID, &def.TenantID, &def.Name, &def.StartTime, &def.EndTime,
		&def.CreatedAt, &def.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Definition{}, shift.ErrShiftNotFound
		}
		return shift.Definition{}, err
	}

	return def, nil
}
