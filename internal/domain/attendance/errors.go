package attendance

import "errors"

// Attendance domain errors
var (
	ErrInvalidDate    = errors.New("date is missing or not in YYYY-MM-DD format")
	ErrInvalidMonth   = errors.New("month is missing or not in YYYY-MM format")
	ErrMissingLogin   = errors.New("login timestamp is required for the first event of the day")
	ErrDuplicateDay   = errors.New("a record already exists for this worker and day")
	ErrRecordNotFound = errors.New("attendance record not found")
)
