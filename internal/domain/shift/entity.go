package shift

import "time"

// Definition is a tenant-scoped named shift with start and end times of day
// in "15:04" format. Read-only input to attendance tracking and the roster.
type Definition struct {
	ID        string
	TenantID  string
	Name      string
	StartTime string
	EndTime   string

	CreatedBy string
	UpdatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
