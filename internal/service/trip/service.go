package trip

import (
	"context"
	"errors"
	"fmt"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/tenant"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/trip"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/authctx"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/geo"
)

type ServiceImpl struct {
	tripRepo       trip.Repository
	masterTenantID string
}

func NewService(tripRepo trip.Repository, masterTenantID string) *ServiceImpl {
	return &ServiceImpl{
		tripRepo:       tripRepo,
		masterTenantID: masterTenantID,
	}
}

// Distance implements trip.Service. Points are summed in stored order; trips
// with fewer than two points have zero distance.
func (s *ServiceImpl) Distance(ctx context.Context, tripID string) (trip.DistanceResponse, error) {
	caller, err := authctx.FromContext(ctx)
	if err != nil {
		return trip.DistanceResponse{}, fmt.Errorf("failed to resolve caller identity: %w", err)
	}

	scope := tenant.NewScope(caller.TenantID, s.masterTenantID)
	t, err := s.tripRepo.GetByID(ctx, tripID, scope)
	if err != nil {
		if errors.Is(err, trip.ErrTripNotFound) {
			return trip.DistanceResponse{}, trip.ErrTripNotFound
		}
		return trip.DistanceResponse{}, fmt.Errorf("failed to get trip: %w", err)
	}

	path := make([]geo.Point, 0, len(t.Points))
	for _, p := range t.Points {
		path = append(path, geo.Point{Latitude: p.Latitude, Longitude: p.Longitude})
	}

	return trip.DistanceResponse{
		TripID:      t.ID,
		WorkerID:    t.WorkerID,
		PointCount:  len(t.Points),
		TotalMeters: geo.PathDistance(path),
	}, nil
}
