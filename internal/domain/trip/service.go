package trip

import "context"

// Service exposes trip distance derivation.
type Service interface {
	// Distance sums the pairwise great-circle distances between consecutive
	// trip points in stored order.
	Distance(ctx context.Context, tripID string) (DistanceResponse, error)
}

type DistanceResponse struct {
	TripID      string  `json:"trip_id"`
	WorkerID    string  `json:"worker_id"`
	PointCount  int     `json:"point_count"`
	TotalMeters float64 `json:"total_meters"`
}
