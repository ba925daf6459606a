package response

import (
	"errors"
	"net/http"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/attendance"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/leave"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/shift"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/trip"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/worker"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/authctx"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, authctx.ErrNoIdentity):
		Unauthorized(w, "Missing caller identity")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidDate):
		BadRequest(w, "Date must be in YYYY-MM-DD format", nil)
	case errors.Is(err, attendance.ErrInvalidMonth):
		BadRequest(w, "Month must be in YYYY-MM format", nil)
	case errors.Is(err, attendance.ErrMissingLogin):
		BadRequest(w, "A login timestamp is required for the first event of the day", nil)
	case errors.Is(err, attendance.ErrDuplicateDay):
		Conflict(w, "A record for this worker and date already exists")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Worker and shift lookups
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")

	// Trip domain errors
	case errors.Is(err, trip.ErrTripNotFound):
		NotFound(w, "Trip not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
