package leave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/leave"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/tenant"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/worker"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/authctx"
)

type fakeBalanceRepo struct {
	mu       sync.Mutex
	balances map[string]leave.Balance
	ledger   map[string]bool
	failFor  map[string]bool
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{
		balances: make(map[string]leave.Balance),
		ledger:   make(map[string]bool),
		failFor:  make(map[string]bool),
	}
}

func balanceKey(tenantID, workerID string) string { return tenantID + "|" + workerID }

func (r *fakeBalanceRepo) GetByWorker(_ context.Context, tenantID, workerID string) (*leave.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failFor[workerID] {
		return nil, errors.New("storage unavailable")
	}
	balance, exists := r.balances[balanceKey(tenantID, workerID)]
	if !exists {
		return nil, nil
	}
	return &balance, nil
}

func (r *fakeBalanceRepo) Create(_ context.Context, balance leave.Balance) (leave.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	balance.ID = "bal-" + balance.WorkerID
	r.balances[balanceKey(balance.TenantID, balance.WorkerID)] = balance
	return balance, nil
}

func (r *fakeBalanceRepo) Credit(_ context.Context, tenantID, workerID string, inc leave.Increments, updatedBy, updatorIP string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := balanceKey(tenantID, workerID)
	balance, exists := r.balances[key]
	if !exists {
		return leave.ErrBalanceNotFound
	}
	balance.EarnedLeave += inc.EarnedLeave
	balance.SickLeave += inc.SickLeave
	balance.CasualLeave += inc.CasualLeave
	balance.UpdatedBy = updatedBy
	balance.UpdatorIP = updatorIP
	r.balances[key] = balance
	return nil
}

func (r *fakeBalanceRepo) MarkPeriod(_ context.Context, tenantID, workerID, periodKey string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := balanceKey(tenantID, workerID) + "|" + periodKey
	if r.ledger[key] {
		return false, nil
	}
	r.ledger[key] = true
	return true, nil
}

func (r *fakeBalanceRepo) ListByScope(_ context.Context, scope tenant.Scope, workerID *string) ([]leave.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tenantID, all := scope.ForRead()
	balances := make([]leave.Balance, 0)
	for _, balance := range r.balances {
		if !all && balance.TenantID != tenantID {
			continue
		}
		if workerID != nil && balance.WorkerID != *workerID {
			continue
		}
		balances = append(balances, balance)
	}
	return balances, nil
}

func (r *fakeBalanceRepo) get(tenantID, workerID string) (leave.Balance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	balance, exists := r.balances[balanceKey(tenantID, workerID)]
	return balance, exists
}

type staticWorkerRepo struct {
	workers []worker.Worker
}

func (r *staticWorkerRepo) GetByID(_ context.Context, id, tenantID string) (worker.Worker, error) {
	for _, w := range r.workers {
		if w.ID == id && w.TenantID == tenantID {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (r *staticWorkerRepo) Find(_ context.Context, id string, scope tenant.Scope) (worker.Worker, error) {
	tenantID, all := scope.ForRead()
	for _, w := range r.workers {
		if w.ID == id && (all || w.TenantID == tenantID) {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (r *staticWorkerRepo) ListActive(_ context.Context, tenantID string) ([]worker.Worker, error) {
	workers := make([]worker.Worker, 0)
	for _, w := range r.workers {
		if w.TenantID == tenantID && w.IsActive {
			workers = append(workers, w)
		}
	}
	return workers, nil
}

func (r *staticWorkerRepo) ListActiveAll(_ context.Context) ([]worker.Worker, error) {
	workers := make([]worker.Worker, 0)
	for _, w := range r.workers {
		if w.IsActive {
			workers = append(workers, w)
		}
	}
	return workers, nil
}

var testIncrements = leave.Increments{EarnedLeave: 1.5, SickLeave: 0.5, CasualLeave: 1}

// newTestAccrualService swaps the database transaction wrapper for a
// pass-through so the fakes run without a pool.
func newTestAccrualService(balanceRepo leave.BalanceRepository, workerRepo worker.Repository) *AccrualServiceImpl {
	svc := NewAccrualService(nil, balanceRepo, workerRepo, testIncrements, "master")
	svc.inTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return fn(ctx)
	}
	return svc
}

func activeWorker(tenantID, id string) worker.Worker {
	return worker.Worker{ID: id, TenantID: tenantID, FirstName: id, IsActive: true}
}

func TestAccrualRun(t *testing.T) {
	t.Run("first run creates balances with exact increments", func(t *testing.T) {
		balanceRepo := newFakeBalanceRepo()
		workerRepo := &staticWorkerRepo{workers: []worker.Worker{
			activeWorker("tenant-1", "w1"),
			activeWorker("tenant-1", "w2"),
			activeWorker("tenant-2", "w3"),
		}}
		svc := newTestAccrualService(balanceRepo, workerRepo)

		report, err := svc.Run(context.Background(), "2025-08")
		require.NoError(t, err)

		assert.Equal(t, "2025-08", report.PeriodKey)
		assert.Equal(t, 3, report.Credited)
		assert.Zero(t, report.Skipped)
		assert.Zero(t, report.Failed)

		balance, exists := balanceRepo.get("tenant-1", "w1")
		require.True(t, exists)
		assert.Equal(t, 1.5, balance.EarnedLeave)
		assert.Equal(t, 0.5, balance.SickLeave)
		assert.Equal(t, 1.0, balance.CasualLeave)
		assert.Equal(t, "System", balance.CreatedBy)
		assert.Equal(t, "AUTO", balance.CreatorIP)
	})

	t.Run("re-running the same period leaves balances unchanged", func(t *testing.T) {
		balanceRepo := newFakeBalanceRepo()
		workerRepo := &staticWorkerRepo{workers: []worker.Worker{activeWorker("tenant-1", "w1")}}
		svc := newTestAccrualService(balanceRepo, workerRepo)

		_, err := svc.Run(context.Background(), "2025-08")
		require.NoError(t, err)

		report, err := svc.Run(context.Background(), "2025-08")
		require.NoError(t, err)
		assert.Zero(t, report.Credited)
		assert.Equal(t, 1, report.Skipped)

		balance, _ := balanceRepo.get("tenant-1", "w1")
		assert.Equal(t, 1.5, balance.EarnedLeave)
	})

	t.Run("next period credits on top", func(t *testing.T) {
		balanceRepo := newFakeBalanceRepo()
		workerRepo := &staticWorkerRepo{workers: []worker.Worker{activeWorker("tenant-1", "w1")}}
		svc := newTestAccrualService(balanceRepo, workerRepo)

		_, err := svc.Run(context.Background(), "2025-08")
		require.NoError(t, err)
		_, err = svc.Run(context.Background(), "2025-09")
		require.NoError(t, err)

		balance, _ := balanceRepo.get("tenant-1", "w1")
		assert.Equal(t, 3.0, balance.EarnedLeave)
		assert.Equal(t, 1.0, balance.SickLeave)
		assert.Equal(t, 2.0, balance.CasualLeave)
	})

	t.Run("per-worker failure does not abort the batch", func(t *testing.T) {
		balanceRepo := newFakeBalanceRepo()
		balanceRepo.failFor["w2"] = true
		workerRepo := &staticWorkerRepo{workers: []worker.Worker{
			activeWorker("tenant-1", "w1"),
			activeWorker("tenant-1", "w2"),
			activeWorker("tenant-1", "w3"),
		}}
		svc := newTestAccrualService(balanceRepo, workerRepo)

		report, err := svc.Run(context.Background(), "2025-08")
		require.NoError(t, err)
		assert.Equal(t, 2, report.Credited)
		assert.Equal(t, 1, report.Failed)

		_, exists := balanceRepo.get("tenant-1", "w1")
		assert.True(t, exists)
		_, exists = balanceRepo.get("tenant-1", "w2")
		assert.False(t, exists)
	})

	t.Run("empty period key defaults to the current month", func(t *testing.T) {
		balanceRepo := newFakeBalanceRepo()
		workerRepo := &staticWorkerRepo{workers: []worker.Worker{activeWorker("tenant-1", "w1")}}
		svc := newTestAccrualService(balanceRepo, workerRepo)
		svc.now = func() time.Time { return time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC) }

		report, err := svc.Run(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, "2025-08", report.PeriodKey)
	})
}

func TestBalanceReport(t *testing.T) {
	balanceRepo := newFakeBalanceRepo()
	workerRepo := &staticWorkerRepo{workers: []worker.Worker{
		activeWorker("tenant-1", "w1"),
		activeWorker("tenant-2", "w2"),
	}}
	svc := newTestAccrualService(balanceRepo, workerRepo)

	_, err := svc.Run(context.Background(), "2025-08")
	require.NoError(t, err)

	t.Run("tenant sees only its own balances", func(t *testing.T) {
		ctx := authctx.WithIdentity(context.Background(), authctx.Identity{TenantID: "tenant-1"})
		balances, err := svc.BalanceReport(ctx, nil)
		require.NoError(t, err)
		require.Len(t, balances, 1)
		assert.Equal(t, "w1", balances[0].WorkerID)
	})

	t.Run("master sees everything", func(t *testing.T) {
		ctx := authctx.WithIdentity(context.Background(), authctx.Identity{TenantID: "master"})
		balances, err := svc.BalanceReport(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, balances, 2)
	})

	t.Run("narrowed to one worker", func(t *testing.T) {
		ctx := authctx.WithIdentity(context.Background(), authctx.Identity{TenantID: "master"})
		workerID := "w2"
		balances, err := svc.BalanceReport(ctx, &workerID)
		require.NoError(t, err)
		require.Len(t, balances, 1)
		assert.Equal(t, "w2", balances[0].WorkerID)
	})

	t.Run("missing identity rejected", func(t *testing.T) {
		_, err := svc.BalanceReport(context.Background(), nil)
		assert.ErrorIs(t, err, authctx.ErrNoIdentity)
	})
}
