package worker

import "time"

// Worker is an employee whose attendance and leave are tracked. User account
// management lives outside this service; this is the read-side view.
type Worker struct {
	ID        string
	TenantID  string
	FirstName string
	LastName  string
	Email     string

	// Name of the worker's assigned shift; resolved against the tenant's
	// shift definitions when computing lateness.
	ShiftName *string

	// Enrolled reference image used by the identity check.
	FaceImageRef *string

	// Assigned workplace used as the geofence reference.
	WorkplaceLatitude  *float64
	WorkplaceLongitude *float64

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins the worker's name parts for audit attribution.
func (w Worker) FullName() string {
	if w.LastName == "" {
		return w.FirstName
	}
	return w.FirstName + " " + w.LastName
}
