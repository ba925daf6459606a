package trip

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/tenant"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/trip"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/authctx"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/geo"
)

type staticTripRepo struct {
	trips map[string]trip.Trip
}

func (r *staticTripRepo) GetByID(_ context.Context, id string, scope tenant.Scope) (trip.Trip, error) {
	t, exists := r.trips[id]
	if !exists {
		return trip.Trip{}, trip.ErrTripNotFound
	}
	tenantID, all := scope.ForRead()
	if !all && t.TenantID != tenantID {
		return trip.Trip{}, trip.ErrTripNotFound
	}
	return t, nil
}

func tripCtx(tenantID string) context.Context {
	return authctx.WithIdentity(context.Background(), authctx.Identity{TenantID: tenantID})
}

func TestDistance(t *testing.T) {
	repo := &staticTripRepo{trips: map[string]trip.Trip{
		"trip-1": {
			ID:       "trip-1",
			TenantID: "tenant-1",
			WorkerID: "worker-1",
			Points: []trip.Point{
				{Latitude: -6.2, Longitude: 106.8},
				{Latitude: -6.25, Longitude: 106.85},
				{Latitude: -6.3, Longitude: 106.9},
			},
		},
		"trip-empty": {
			ID:       "trip-empty",
			TenantID: "tenant-1",
			WorkerID: "worker-1",
		},
	}}
	svc := NewService(repo, "master")

	t.Run("sums pairwise distances in stored order", func(t *testing.T) {
		resp, err := svc.Distance(tripCtx("tenant-1"), "trip-1")
		require.NoError(t, err)

		want := geo.HaversineDistance(-6.2, 106.8, -6.25, 106.85) +
			geo.HaversineDistance(-6.25, 106.85, -6.3, 106.9)
		assert.InDelta(t, want, resp.TotalMeters, 1e-6)
		assert.Equal(t, 3, resp.PointCount)
		assert.Equal(t, "worker-1", resp.WorkerID)
	})

	t.Run("empty trip has zero distance", func(t *testing.T) {
		resp, err := svc.Distance(tripCtx("tenant-1"), "trip-empty")
		require.NoError(t, err)
		assert.Zero(t, resp.TotalMeters)
		assert.Zero(t, resp.PointCount)
	})

	t.Run("unknown trip", func(t *testing.T) {
		_, err := svc.Distance(tripCtx("tenant-1"), "ghost")
		assert.ErrorIs(t, err, trip.ErrTripNotFound)
	})

	t.Run("other tenant cannot read the trip", func(t *testing.T) {
		_, err := svc.Distance(tripCtx("tenant-2"), "trip-1")
		assert.ErrorIs(t, err, trip.ErrTripNotFound)
	})

	t.Run("master reads across tenants", func(t *testing.T) {
		resp, err := svc.Distance(tripCtx("master"), "trip-1")
		require.NoError(t, err)
		assert.Equal(t, "trip-1", resp.TripID)
	})
}
