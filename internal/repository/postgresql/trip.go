package postgresql

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/tenant"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/trip"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/database"
)

type tripRepositoryImpl struct {
	db *database.DB
}

func NewTripRepository(db *database.DB) trip.Repository {
	return &tripRepositoryImpl{db: db}
}

// GetByID implements trip.Repository. Points live in a jsonb column in the
// order they were reported.
func (r *tripRepositoryImpl) GetByID(ctx context.Context, id string, scope tenant.Scope) (trip.Trip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, worker_id, points, start_time, end_time,
			   created_by, creator_ip, created_at, updated_at
		FROM trips
		WHERE id = $1
		AND ($3 OR tenant_id = $2)
	`

	tenantID, all := scope.ForRead()

	var t trip.Trip
	var pointsJSON []byte
	err := q.QueryRow(ctx, query, id, tenantID, all).Scan(
		&t.ID, &t.TenantID, &t.WorkerID, &pointsJSON, &t.StartTime, &t.EndTime,
		&t.CreatedBy, &t.CreatorIP, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trip.Trip{}, trip.ErrTripNotFound
		}
		return trip.Trip{}, err
	}

	if len(pointsJSON) > 0 {
		if err := json.Unmarshal(pointsJSON, &t.Points); err != nil {
			return trip.Trip{}, err
		}
	}

	return t, nil
}
