package postgresql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/leave"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/tenant"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// GetByWorker implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByWorker(ctx context.Context, tenantID, workerID string) (*leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, worker_id, earned_leave, sick_leave, casual_leave,
			   created_by, updated_by, creator_ip, updator_ip, created_at, updated_at
		FROM leave_balances
		WHERE tenant_id = $1 AND worker_id = $2
	`

	var balance leave.Balance
	err := q.QueryRow(ctx, query, tenantID, workerID).Scan(
		&balance.ID, &balance.TenantID, &balance.WorkerID,
		&balance.EarnedLeave, &balance.SickLeave, &balance.CasualLeave,
		&balance.CreatedBy, &balance.UpdatedBy, &balance.CreatorIP, &balance.UpdatorIP,
		&balance.CreatedAt, &balance.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &balance, nil
}

// Create implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, balance leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (
			id, tenant_id, worker_id, earned_leave, sick_leave, casual_leave,
			created_by, updated_by, creator_ip, updator_ip, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	balance.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		balance.ID, balance.TenantID, balance.WorkerID,
		balance.EarnedLeave, balance.SickLeave, balance.CasualLeave,
		balance.CreatedBy, balance.UpdatedBy, balance.CreatorIP, balance.UpdatorIP,
	).Scan(&balance.ID, &balance.CreatedAt, &balance.UpdatedAt)
	if err != nil {
		return leave.Balance{}, err
	}

	return balance, nil
}

// Credit implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) Credit(ctx context.Context, tenantID, workerID string, inc leave.Increments, updatedBy, updatorIP string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET earned_leave = earned_leave + $3,
			sick_leave = sick_leave + $4,
			casual_leave = casual_leave + $5,
			updated_by = $6,
			updator_ip = $7,
			updated_at = NOW()
		WHERE tenant_id = $1 AND worker_id = $2
	`

	result, err := q.Exec(ctx, query, tenantID, workerID,
		inc.EarnedLeave, inc.SickLeave, inc.CasualLeave, updatedBy, updatorIP)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}

	return nil
}

// MarkPeriod implements leave.BalanceRepository. The ledger's primary key on
// (tenant_id, worker_id, period_key) makes the mark at-most-once; a conflict
// means the period was already credited.
func (r *leaveBalanceRepositoryImpl) MarkPeriod(ctx context.Context, tenantID, workerID, periodKey string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_accrual_ledger (tenant_id, worker_id, period_key, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (tenant_id, worker_id, period_key) DO NOTHING
	`

	result, err := q.Exec(ctx, query, tenantID, workerID, periodKey)
	if err != nil {
		return false, err
	}

	return result.RowsAffected() == 1, nil
}

// ListByScope implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) ListByScope(ctx context.Context, scope tenant.Scope, workerID *string) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id, worker_id, earned_leave, sick_leave, casual_leave,
			   created_by, updated_by, creator_ip, updator_ip, created_at, updated_at
		FROM leave_balances
		WHERE ($2 OR tenant_id = $1)
		AND ($3::text IS NULL OR worker_id = $3)
		ORDER BY updated_at DESC
	`

	tenantID, all := scope.ForRead()
	rows, err := q.Query(ctx, query, tenantID, all, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.Balance, 0)
	for rows.Next() {
		var balance leave.Balance
		if err := rows.Scan(
			&balance.ID, &balance.TenantID, &balance.WorkerID,
			&balance.EarnedLeave, &balance.SickLeave, &balance.CasualLeave,
			&balance.CreatedBy, &balance.UpdatedBy, &balance.CreatorIP, &balance.UpdatorIP,
			&balance.CreatedAt, &balance.UpdatedAt,
		); err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}

	return balances, rows.Err()
}
