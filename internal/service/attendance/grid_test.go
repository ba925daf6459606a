package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/attendance"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/worker"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/authctx"
)

func seedDay(t *testing.T, repo *fakeAttendanceRepo, date time.Time, status string) {
	t.Helper()
	_, err := repo.Create(context.Background(), attendance.DayRecord{
		TenantID:   testTenant,
		WorkerID:   "worker-1",
		Date:       date,
		StatusFlag: status,
	})
	require.NoError(t, err)
}

func TestMonthlyGrid(t *testing.T) {
	t.Run("one cell per calendar day, absent by default", func(t *testing.T) {
		repo := newFakeAttendanceRepo()
		svc := newTestService(repo)

		seedDay(t, repo, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), attendance.FlagPresent)
		seedDay(t, repo, time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC), attendance.FlagLeave)

		cells, err := svc.MonthlyGrid(testCtx(), "worker-1", "2025-09")
		require.NoError(t, err)
		require.Len(t, cells, 30)

		assert.Equal(t, attendance.FlagPresent, cells[0].Status)
		assert.Equal(t, attendance.FlagLeave, cells[14].Status)
		assert.Equal(t, attendance.FlagAbsent, cells[1].Status)
		assert.Equal(t, attendance.FlagAbsent, cells[29].Status)

		assert.Equal(t, 1, cells[0].Day)
		assert.Equal(t, "2025-09-01", cells[0].Date)
		assert.Equal(t, 30, cells[29].Day)
		assert.Equal(t, "2025-09-30", cells[29].Date)
	})

	t.Run("leap February has 29 cells", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo())
		cells, err := svc.MonthlyGrid(testCtx(), "worker-1", "2024-02")
		require.NoError(t, err)
		assert.Len(t, cells, 29)
	})

	t.Run("regular February has 28 cells", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo())
		cells, err := svc.MonthlyGrid(testCtx(), "worker-1", "2023-02")
		require.NoError(t, err)
		assert.Len(t, cells, 28)
	})

	t.Run("malformed month rejected", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo())
		_, err := svc.MonthlyGrid(testCtx(), "worker-1", "09-2025")
		assert.ErrorIs(t, err, attendance.ErrInvalidMonth)
	})

	t.Run("unknown worker rejected", func(t *testing.T) {
		svc := newTestService(newFakeAttendanceRepo())
		_, err := svc.MonthlyGrid(testCtx(), "ghost", "2025-09")
		assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
	})

	t.Run("master tenant reads another tenant's grid", func(t *testing.T) {
		repo := newFakeAttendanceRepo()
		svc := newTestService(repo)

		seedDay(t, repo, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), attendance.FlagPresent)

		masterCtx := authctx.WithIdentity(context.Background(), authctx.Identity{TenantID: testMaster})
		cells, err := svc.MonthlyGrid(masterCtx, "worker-1", "2025-09")
		require.NoError(t, err)
		assert.Equal(t, attendance.FlagPresent, cells[0].Status)
	})

	t.Run("other tenant cannot read the grid", func(t *testing.T) {
		repo := newFakeAttendanceRepo()
		svc := newTestService(repo)

		otherCtx := authctx.WithIdentity(context.Background(), authctx.Identity{TenantID: "tenant-2"})
		_, err := svc.MonthlyGrid(otherCtx, "worker-1", "2025-09")
		assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
	})
}
