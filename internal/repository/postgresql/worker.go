package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/tenant"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/worker"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/database"
)

type workerRepositoryImpl struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.Repository {
	return &workerRepositoryImpl{db: db}
}

const workerColumns = `
	id, tenant_id, first_name, last_name, email,
	shift_name, face_image_ref, workplace_latitude, workplace_longitude,
	is_active, created_at, updated_at`

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var w worker.Worker
	err := row.Scan(
		&w.ID, &w.TenantID, &w.FirstName, &w.LastName, &w.Email,
		&w.ShiftName, &w.FaceImageRef, &w.WorkplaceLatitude, &w.WorkplaceLongitude,
		&w.IsActive, &w.CreatedAt, &w.UpdatedAt,
	)
	return w, err
}

// GetByID implements worker.Repository.
func (r *workerRepositoryImpl) GetByID(ctx context.Context, id, tenantID string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + workerColumns + `
		FROM workers
		WHERE id = $1 AND tenant_id = $2
	`

	w, err := scanWorker(q.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, err
	}

	return w, nil
}

// Find implements worker.Repository.
func (r *workerRepositoryImpl) Find(ctx context.Context, id string, scope tenant.Scope) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	tenantID, all := scope.ForRead()
	query := `
		SELECT ` + workerColumns + `
		FROM workers
		WHERE id = $1 AND ($2 OR tenant_id = $3)
	`

	w, err := scanWorker(q.QueryRow(ctx, query, id, all, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, err
	}

	return w, nil
}

// ListActive implements worker.Repository.
func (r *workerRepositoryImpl) ListActive(ctx context.Context, tenantID string) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + workerColumns + `
		FROM workers
		WHERE tenant_id = $1 AND is_active = true
		ORDER BY first_name, last_name
	`

	rows, err := q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectWorkers(rows)
}

// ListActiveAll implements worker.Repository.
func (r *workerRepositoryImpl) ListActiveAll(ctx context.Context) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + workerColumns + `
		FROM workers
		WHERE is_active = true
		ORDER BY tenant_id, id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectWorkers(rows)
}

func collectWorkers(rows pgx.Rows) ([]worker.Worker, error) {
	workers := make([]worker.Worker, 0)
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}
	return workers, rows.Err()
}
