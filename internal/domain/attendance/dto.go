package attendance

import (
	"time"

	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/validator"
)

// EventRequest carries one login or logout event for a worker-day. The first
// event of the day creates the record; any later event is treated as a logout
// update where only the fields explicitly present override stored values.
type EventRequest struct {
	WorkerID  string     `json:"worker_id"`
	Date      string     `json:"date"`
	Timestamp *time.Time `json:"timestamp"`

	Location Location   `json:"location"`
	ImageRef *string    `json:"image_ref"`
	Device   DeviceInfo `json:"device"`

	// Captured face image for the identity check; compared against the
	// worker's enrolled reference image when both are present.
	CandidateImage *string `json:"candidate_image"`

	// Logout-side overrides, applied only when explicitly present.
	IsEarlyLogout *bool    `json:"is_early_logout"`
	OvertimeHours *float64 `json:"overtime_hours"`
	FailureReason *string  `json:"failure_reason"`
}

func (r *EventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required in YYYY-MM-DD format",
		})
	}

	if r.Location.Latitude != nil && !validator.IsValidLatitude(*r.Location.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "location.latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Location.Longitude != nil && !validator.IsValidLongitude(*r.Location.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "location.longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LogoutPatch is the explicit partial update applied to an open record.
// Nil fields keep the stored value; the merge is field-level, never a full
// overwrite.
type LogoutPatch struct {
	LogoutTime     *time.Time
	LogoutLocation *Location
	LogoutImageRef *string
	LogoutDevice   *DeviceInfo

	LogoutVerified   *bool
	LogoutConfidence *float64
	FailureReason    *string

	IsEarlyLogout *bool
	OvertimeHours *float64
	TotalHours    *float64

	UpdatedBy string
	UpdatorIP string
}

// EventOutcome signals whether RecordEvent created a new day record or
// applied a logout update to an existing one.
type EventOutcome string

const (
	OutcomeCreated       EventOutcome = "Created"
	OutcomeLogoutApplied EventOutcome = "LogoutApplied"
)

type DayRecordResponse struct {
	ID         string  `json:"id"`
	WorkerID   string  `json:"worker_id"`
	WorkerName string  `json:"worker_name,omitempty"`
	Date       string  `json:"date"`
	LoginTime  *string `json:"login_time,omitempty"`
	LogoutTime *string `json:"logout_time,omitempty"`

	LoginLocation  *Location `json:"login_location,omitempty"`
	LogoutLocation *Location `json:"logout_location,omitempty"`
	LoginImageRef  *string   `json:"login_image_ref,omitempty"`
	LogoutImageRef *string   `json:"logout_image_ref,omitempty"`

	LoginVerified    bool    `json:"login_verified"`
	LoginConfidence  float64 `json:"login_confidence"`
	LogoutVerified   bool    `json:"logout_verified"`
	LogoutConfidence float64 `json:"logout_confidence"`
	FailureReason    *string `json:"failure_reason,omitempty"`

	IsLate        bool    `json:"is_late"`
	IsEarlyLogout bool    `json:"is_early_logout"`
	IsOnLeave     bool    `json:"is_on_leave"`
	IsHoliday     bool    `json:"is_holiday"`
	IsWorkingDay  bool    `json:"is_working_day"`
	TotalHours    float64 `json:"total_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	StatusFlag    string  `json:"status_flag"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// GridCell is one calendar day in the monthly grid. Days without a record
// carry the absent flag.
type GridCell struct {
	Day    int    `json:"day"`
	Status string `json:"status"`
	Date   string `json:"date"`
}

// WorkerSummary is one roster line.
type WorkerSummary struct {
	WorkerID   string `json:"worker_id"`
	WorkerName string `json:"worker_name"`
	ShiftName  string `json:"shift_name,omitempty"`
	StatusFlag string `json:"status_flag"`
}

// RosterResponse is the present/absent partition of a tenant's active
// workers for one date, with the viewer's own completeness flags.
type RosterResponse struct {
	Date                 string          `json:"date"`
	Present              []WorkerSummary `json:"present"`
	Absent               []WorkerSummary `json:"absent"`
	ViewerIsIncomplete   bool            `json:"viewer_is_incomplete"`
	ViewerHasFaceCapture bool            `json:"viewer_has_face_capture"`
}
