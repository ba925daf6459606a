package attendance

import (
	"time"
)

// Status flags carried on a day record. Single-character, matching the
// stored representation consumed by the monthly grid.
const (
	FlagPresent = "P"
	FlagAbsent  = "A"
	FlagLeave   = "L"
	FlagHoliday = "H"
)

// Location is a reported coordinate with a free-text address.
type Location struct {
	Latitude  *float64
	Longitude *float64
	Address   *string
}

// DeviceInfo describes the device that originated an event.
type DeviceInfo struct {
	DeviceID *string
	OS       *string
	Agent    *string
	IP       *string
}

// Verification records the advisory identity-check results for both ends of
// the day. A failed check never blocks the record; it is information only.
type Verification struct {
	LoginVerified    bool
	LoginConfidence  float64
	LogoutVerified   bool
	LogoutConfidence float64
	FailureReason    *string
}

// DayRecord is one worker's one calendar day of attendance. At most one
// record exists per (tenant, worker, date); the first login event of the day
// creates it and the subsequent logout event closes it.
type DayRecord struct {
	ID       string
	TenantID string
	WorkerID string
	Date     time.Time

	LoginTime     *time.Time
	LoginLocation Location
	LoginImageRef *string
	LoginDevice   DeviceInfo

	LogoutTime     *time.Time
	LogoutLocation Location
	LogoutImageRef *string
	LogoutDevice   DeviceInfo

	Verification Verification

	IsLate        bool
	IsEarlyLogout bool
	IsOnLeave     bool
	IsHoliday     bool
	IsWorkingDay  bool
	TotalHours    float64
	OvertimeHours float64
	StatusFlag    string

	CreatedBy string
	UpdatedBy *string
	CreatorIP string
	UpdatorIP *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	WorkerName *string
}

// IsOpen reports whether the record still waits for its logout event.
func (r *DayRecord) IsOpen() bool {
	return r.LoginTime != nil && r.LogoutTime == nil
}
