package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/leave"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/tenant"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/worker"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/authctx"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/database"
	"github.com/stafflow-hr/workforce-backend-go/internal/repository/postgresql"
)

// Accrual writes carry a system actor, not a caller identity.
const (
	systemActor = "System"
	systemIP    = "AUTO"
)

const accrualConcurrency = 8

type AccrualServiceImpl struct {
	balanceRepo    leave.BalanceRepository
	workerRepo     worker.Repository
	increments     leave.Increments
	masterTenantID string
	now            func() time.Time

	// inTx runs fn with the transaction attached to the context so the period
	// mark and the credit commit or roll back together.
	inTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewAccrualService(
	db *database.DB,
	balanceRepo leave.BalanceRepository,
	workerRepo worker.Repository,
	increments leave.Increments,
	masterTenantID string,
) *AccrualServiceImpl {
	return &AccrualServiceImpl{
		balanceRepo:    balanceRepo,
		workerRepo:     workerRepo,
		increments:     increments,
		masterTenantID: masterTenantID,
		now:            time.Now,
		inTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
				return fn(postgresql.ContextWithTx(ctx, tx))
			})
		},
	}
}

// Run implements leave.AccrualService. The period ledger makes the credit
// at-most-once per (tenant, worker, period); a re-run of the same period
// skips every already-marked worker.
func (s *AccrualServiceImpl) Run(ctx context.Context, periodKey string) (leave.AccrualReport, error) {
	if periodKey == "" {
		periodKey = s.now().Format("2006-01")
	}

	workers, err := s.workerRepo.ListActiveAll(ctx)
	if err != nil {
		return leave.AccrualReport{}, fmt.Errorf("failed to list active workers: %w", err)
	}

	var credited, skipped, failed atomic.Int64

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(accrualConcurrency)

	for _, wrk := range workers {
		wrk := wrk
		g.Go(func() error {
			switch err := s.creditWorker(gCtx, wrk, periodKey); {
			case err == nil:
				credited.Add(1)
			case errors.Is(err, errAlreadyCredited):
				skipped.Add(1)
			default:
				failed.Add(1)
				slog.Error("leave accrual failed for worker",
					"tenant_id", wrk.TenantID,
					"worker_id", wrk.ID,
					"period", periodKey,
					"error", err,
				)
			}
			// Per-worker failures never abort the batch.
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return leave.AccrualReport{}, fmt.Errorf("accrual batch interrupted: %w", err)
	}

	report := leave.AccrualReport{
		PeriodKey: periodKey,
		Credited:  int(credited.Load()),
		Skipped:   int(skipped.Load()),
		Failed:    int(failed.Load()),
	}

	slog.Info("leave accrual run finished",
		"period", report.PeriodKey,
		"credited", report.Credited,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)

	return report, nil
}

var errAlreadyCredited = errors.New("period already credited")

func (s *AccrualServiceImpl) creditWorker(ctx context.Context, wrk worker.Worker, periodKey string) error {
	return s.inTx(ctx, func(txCtx context.Context) error {
		marked, err := s.balanceRepo.MarkPeriod(txCtx, wrk.TenantID, wrk.ID, periodKey)
		if err != nil {
			return fmt.Errorf("failed to mark accrual period: %w", err)
		}
		if !marked {
			return errAlreadyCredited
		}

		balance, err := s.balanceRepo.GetByWorker(txCtx, wrk.TenantID, wrk.ID)
		if err != nil {
			return fmt.Errorf("failed to get balance: %w", err)
		}

		if balance == nil {
			_, err := s.balanceRepo.Create(txCtx, leave.Balance{
				TenantID:    wrk.TenantID,
				WorkerID:    wrk.ID,
				EarnedLeave: s.increments.EarnedLeave,
				SickLeave:   s.increments.SickLeave,
				CasualLeave: s.increments.CasualLeave,
				CreatedBy:   systemActor,
				UpdatedBy:   systemActor,
				CreatorIP:   systemIP,
				UpdatorIP:   systemIP,
			})
			if err != nil {
				return fmt.Errorf("failed to create balance: %w", err)
			}
			return nil
		}

		if err := s.balanceRepo.Credit(txCtx, wrk.TenantID, wrk.ID, s.increments, systemActor, systemIP); err != nil {
			return fmt.Errorf("failed to credit balance: %w", err)
		}

		return nil
	})
}

// BalanceReport implements leave.AccrualService.
func (s *AccrualServiceImpl) BalanceReport(ctx context.Context, workerID *string) ([]leave.BalanceResponse, error) {
	caller, err := authctx.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve caller identity: %w", err)
	}

	scope := tenant.NewScope(caller.TenantID, s.masterTenantID)
	balances, err := s.balanceRepo.ListByScope(ctx, scope, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, balance := range balances {
		responses = append(responses, leave.BalanceResponse{
			ID:          balance.ID,
			WorkerID:    balance.WorkerID,
			EarnedLeave: balance.EarnedLeave,
			SickLeave:   balance.SickLeave,
			CasualLeave: balance.CasualLeave,
			UpdatedAt:   balance.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return responses, nil
}
