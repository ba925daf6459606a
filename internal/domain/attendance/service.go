package attendance

import (
	"context"
)

// Service defines the attendance tracking operations.
type Service interface {
	// RecordEvent processes one login or logout event for a worker-day.
	// The first event of a day creates an open record; later events apply a
	// field-level logout merge and close it.
	RecordEvent(ctx context.Context, req EventRequest) (DayRecordResponse, EventOutcome, error)

	// GetRecord retrieves a single day record by id under tenant scoping.
	GetRecord(ctx context.Context, id string) (DayRecordResponse, error)

	// MonthlyGrid projects a worker's records over a calendar month into one
	// cell per day, defaulting missing days to absent.
	MonthlyGrid(ctx context.Context, workerID, month string) ([]GridCell, error)

	// RosterForDate partitions the tenant's active workers into present and
	// absent sets for one date.
	RosterForDate(ctx context.Context, date string) (RosterResponse, error)
}
