package trip

import "time"

// Point is one GPS sample on a trip, kept in the order it was reported.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp string  `json:"timestamp"`
}

// Trip is a worker's recorded journey as an ordered point sequence.
type Trip struct {
	ID       string
	TenantID string
	WorkerID string
	Points   []Point

	StartTime string
	EndTime   string

	CreatedBy string
	CreatorIP string
	CreatedAt time.Time
	UpdatedAt time.Time
}
