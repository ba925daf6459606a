package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/stafflow-hr/workforce-backend-go/internal/domain/attendance"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/shift"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/tenant"
	"github.com/stafflow-hr/workforce-backend-go/internal/domain/worker"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/authctx"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/facematch"
	"github.com/stafflow-hr/workforce-backend-go/internal/pkg/geo"
)

type ServiceImpl struct {
	attendance.Repository
	workerRepo     worker.Repository
	shiftRepo      shift.Repository
	settingsRepo   tenant.SettingsRepository
	verifier       facematch.Verifier
	masterTenantID string
	now            func() time.Time
}

func NewService(
	attendanceRepo attendance.Repository,
	workerRepo worker.Repository,
	shiftRepo shift.Repository,
	settingsRepo tenant.SettingsRepository,
	verifier facematch.Verifier,
	masterTenantID string,
) *ServiceImpl {
	return &ServiceImpl{
		Repository:     attendanceRepo,
		workerRepo:     workerRepo,
		shiftRepo:      shiftRepo,
		settingsRepo:   settingsRepo,
		verifier:       verifier,
		masterTenantID: masterTenantID,
		now:            time.Now,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// RecordEvent implements attendance.Service.
func (s *ServiceImpl) RecordEvent(ctx context.Context, req attendance.EventRequest) (attendance.DayRecordResponse, attendance.EventOutcome, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayRecordResponse{}, "", err
	}

	caller, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.DayRecordResponse{}, "", fmt.Errorf("failed to resolve caller identity: %w", err)
	}

	date, ok := parseDay(req.Date)
	if !ok {
		return attendance.DayRecordResponse{}, "", attendance.ErrInvalidDate
	}

	settings, err := s.settingsRepo.Get(ctx, caller.TenantID)
	if err != nil {
		return attendance.DayRecordResponse{}, "", fmt.Errorf("failed to load tenant settings: %w", err)
	}

	wrk, err := s.workerRepo.GetByID(ctx, req.WorkerID, caller.TenantID)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return attendance.DayRecordResponse{}, "", worker.ErrWorkerNotFound
		}
		return attendance.DayRecordResponse{}, "", fmt.Errorf("failed to get worker: %w", err)
	}

	existing, err := s.Repository.GetByWorkerAndDate(ctx, caller.TenantID, req.WorkerID, date)
	if err != nil {
		return attendance.DayRecordResponse{}, "", fmt.Errorf("failed to get day record: %w", err)
	}

	if existing == nil {
		created, err := s.createOpenRecord(ctx, caller, wrk, settings, date, req)
		if err == nil {
			return mapRecordToResponse(created), attendance.OutcomeCreated, nil
		}
		if !errors.Is(err, attendance.ErrDuplicateDay) {
			return attendance.DayRecordResponse{}, "", err
		}
		// A concurrent login won the create; fall through and treat this
		// event as the logout update.
		existing, err = s.Repository.GetByWorkerAndDate(ctx, caller.TenantID, req.WorkerID, date)
		if err != nil {
			return attendance.DayRecordResponse{}, "", fmt.Errorf("failed to get day record: %w", err)
		}
		if existing == nil {
			return attendance.DayRecordResponse{}, "", attendance.ErrRecordNotFound
		}
	}

	updated, err := s.applyLogoutEvent(ctx, caller, wrk, settings, *existing, req)
	if err != nil {
		return attendance.DayRecordResponse{}, "", err
	}

	return mapRecordToResponse(updated), attendance.OutcomeLogoutApplied, nil
}

// createOpenRecord builds and persists the day's first record from a login
// event. Geofence and identity results are advisory only; a failed check is
// recorded, never blocking creation.
func (s *ServiceImpl) createOpenRecord(
	ctx context.Context,
	caller authctx.Identity,
	wrk worker.Worker,
	settings tenant.Settings,
	date time.Time,
	req attendance.EventRequest,
) (attendance.DayRecord, error) {
	loginTime := req.Timestamp
	if loginTime == nil {
		return attendance.DayRecord{}, attendance.ErrMissingLogin
	}

	var reasons []string

	verification := attendance.Verification{}
	if req.CandidateImage != nil {
		match := s.verifyImage(*req.CandidateImage, wrk.FaceImageRef, &reasons)
		verification.LoginVerified = match.Matched
		verification.LoginConfidence = match.Confidence
	}

	if !s.withinFence(req.Location, wrk, settings.GeofenceRadiusMeters) {
		if hasCoordinates(req.Location) && hasWorkplace(wrk) {
			reasons = append(reasons, "login outside allowed radius")
		}
	}
	if len(reasons) > 0 {
		joined := strings.Join(reasons, "; ")
		verification.FailureReason = &joined
	}

	isLate := s.isLateLogin(ctx, wrk, *loginTime, settings.LateGraceMinutes)

	record := attendance.DayRecord{
		TenantID: caller.TenantID,
		WorkerID: wrk.ID,
		Date:     date,

		LoginTime:     loginTime,
		LoginLocation: req.Location,
		LoginImageRef: req.ImageRef,
		LoginDevice:   req.Device,

		Verification: verification,

		IsLate:       isLate,
		IsWorkingDay: true,
		StatusFlag:   attendance.FlagPresent,

		CreatedBy: caller.WorkerName,
		CreatorIP: caller.ClientIP,
	}

	created, err := s.Repository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateDay) {
			return attendance.DayRecord{}, attendance.ErrDuplicateDay
		}
		return attendance.DayRecord{}, fmt.Errorf("failed to create day record: %w", err)
	}

	return created, nil
}

// applyLogoutEvent merges the event into the open record field by field.
// Fields absent from the payload keep their stored values.
func (s *ServiceImpl) applyLogoutEvent(
	ctx context.Context,
	caller authctx.Identity,
	wrk worker.Worker,
	settings tenant.Settings,
	existing attendance.DayRecord,
	req attendance.EventRequest,
) (attendance.DayRecord, error) {
	patch := attendance.LogoutPatch{
		LogoutTime:     req.Timestamp,
		LogoutImageRef: req.ImageRef,
		FailureReason:  req.FailureReason,
		IsEarlyLogout:  req.IsEarlyLogout,
		OvertimeHours:  req.OvertimeHours,
		UpdatedBy:      caller.WorkerName,
		UpdatorIP:      caller.ClientIP,
	}

	if hasCoordinates(req.Location) || req.Location.Address != nil {
		loc := req.Location
		patch.LogoutLocation = &loc
	}
	if req.Device.DeviceID != nil || req.Device.OS != nil || req.Device.Agent != nil || req.Device.IP != nil {
		dev := req.Device
		patch.LogoutDevice = &dev
	}

	var reasons []string
	if req.CandidateImage != nil {
		match := s.verifyImage(*req.CandidateImage, wrk.FaceImageRef, &reasons)
		patch.LogoutVerified = &match.Matched
		patch.LogoutConfidence = &match.Confidence
	}
	if !s.withinFence(req.Location, wrk, settings.GeofenceRadiusMeters) {
		if hasCoordinates(req.Location) && hasWorkplace(wrk) {
			reasons = append(reasons, "logout outside allowed radius")
		}
	}
	if patch.FailureReason == nil && len(reasons) > 0 {
		joined := strings.Join(reasons, "; ")
		patch.FailureReason = &joined
	}

	logoutTime := req.Timestamp
	if logoutTime == nil {
		logoutTime = existing.LogoutTime
	}

	if logoutTime != nil && existing.LoginTime != nil {
		total := logoutTime.Sub(*existing.LoginTime).Hours()
		if total < 0 {
			total = 0
		}
		patch.TotalHours = &total

		if sh, ok := s.workerShift(ctx, wrk); ok {
			if patch.IsEarlyLogout == nil {
				early := isEarlyLogout(*logoutTime, sh)
				patch.IsEarlyLogout = &early
			}
			if patch.OvertimeHours == nil {
				overtime := overtimeHours(total, sh)
				patch.OvertimeHours = &overtime
			}
		}
	}

	updated, err := s.Repository.ApplyLogout(ctx, existing.TenantID, existing.WorkerID, existing.Date, patch)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.DayRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.DayRecord{}, fmt.Errorf("failed to apply logout: %w", err)
	}

	return updated, nil
}

// GetRecord implements attendance.Service.
func (s *ServiceImpl) GetRecord(ctx context.Context, id string) (attendance.DayRecordResponse, error) {
	caller, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.DayRecordResponse{}, fmt.Errorf("failed to resolve caller identity: %w", err)
	}

	scope := tenant.NewScope(caller.TenantID, s.masterTenantID)
	record, err := s.Repository.GetByID(ctx, id, scope)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.DayRecordResponse{}, attendance.ErrRecordNotFound
		}
		return attendance.DayRecordResponse{}, fmt.Errorf("failed to get day record: %w", err)
	}

	return mapRecordToResponse(record), nil
}

// verifyImage runs the pluggable identity check. A capability failure is
// recorded as unverified rather than aborting the operation.
func (s *ServiceImpl) verifyImage(candidate string, reference *string, reasons *[]string) facematch.Match {
	ref := ""
	if reference != nil {
		ref = *reference
	}
	match, err := s.verifier.Verify(candidate, ref)
	if err != nil {
		slog.Warn("identity verification unavailable, recording as unverified", "error", err)
		*reasons = append(*reasons, "identity verification unavailable")
		return facematch.Match{}
	}
	if !match.Matched {
		*reasons = append(*reasons, "face match failed")
	}
	return match
}

func (s *ServiceImpl) withinFence(loc attendance.Location, wrk worker.Worker, radiusMeters float64) bool {
	if !hasCoordinates(loc) || !hasWorkplace(wrk) {
		return false
	}
	point := &geo.Point{Latitude: *loc.Latitude, Longitude: *loc.Longitude}
	reference := &geo.Point{Latitude: *wrk.WorkplaceLatitude, Longitude: *wrk.WorkplaceLongitude}
	return geo.WithinRadius(point, reference, radiusMeters)
}

// isLateLogin compares the login time-of-day against the worker's shift
// start plus the tenant grace window. Computed once at creation only.
func (s *ServiceImpl) isLateLogin(ctx context.Context, wrk worker.Worker, login time.Time, graceMinutes int) bool {
	sh, ok := s.workerShift(ctx, wrk)
	if !ok {
		return false
	}
	start, err := time.Parse("15:04", sh.StartTime)
	if err != nil {
		return false
	}
	scheduled := time.Date(login.Year(), login.Month(), login.Day(),
		start.Hour(), start.Minute(), 0, 0, login.Location())
	graceLimit := scheduled.Add(time.Duration(graceMinutes) * time.Minute)
	return login.After(graceLimit)
}

func (s *ServiceImpl) workerShift(ctx context.Context, wrk worker.Worker) (shift.Definition, bool) {
	if wrk.ShiftName == nil || *wrk.ShiftName == "" {
		return shift.Definition{}, false
	}
	sh, err := s.shiftRepo.GetByName(ctx, wrk.TenantID, *wrk.ShiftName)
	if err != nil {
		if !errors.Is(err, shift.ErrShiftNotFound) {
			slog.Warn("failed to resolve worker shift", "worker_id", wrk.ID, "error", err)
		}
		return shift.Definition{}, false
	}
	return sh, true
}

func isEarlyLogout(logout time.Time, sh shift.Definition) bool {
	end, err := time.Parse("15:04", sh.EndTime)
	if err != nil {
		return false
	}
	scheduledOut := time.Date(logout.Year(), logout.Month(), logout.Day(),
		end.Hour(), end.Minute(), 0, 0, logout.Location())
	return logout.Before(scheduledOut)
}

// overtimeHours derives overtime as worked hours beyond the scheduled shift
// length, clamped to zero. Overnight shifts wrap across midnight.
func overtimeHours(totalHours float64, sh shift.Definition) float64 {
	start, err1 := time.Parse("15:04", sh.StartTime)
	end, err2 := time.Parse("15:04", sh.EndTime)
	if err1 != nil || err2 != nil {
		return 0
	}
	scheduled := end.Sub(start).Hours()
	if scheduled <= 0 {
		scheduled += 24
	}
	overtime := totalHours - scheduled
	if overtime < 0 {
		return 0
	}
	return overtime
}

func hasCoordinates(loc attendance.Location) bool {
	return loc.Latitude != nil && loc.Longitude != nil
}

func hasWorkplace(wrk worker.Worker) bool {
	return wrk.WorkplaceLatitude != nil && wrk.WorkplaceLongitude != nil
}

func parseDay(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// mapRecordToResponse converts a DayRecord entity to DayRecordResponse
func mapRecordToResponse(record attendance.DayRecord) attendance.DayRecordResponse {
	var workerName string
	if record.WorkerName != nil {
		workerName = *record.WorkerName
	}

	resp := attendance.DayRecordResponse{
		ID:         record.ID,
		WorkerID:   record.WorkerID,
		WorkerName: workerName,
		Date:       record.Date.Format("2006-01-02"),
		LoginTime:  timePtrToString(record.LoginTime),
		LogoutTime: timePtrToString(record.LogoutTime),

		LoginImageRef:  record.LoginImageRef,
		LogoutImageRef: record.LogoutImageRef,

		LoginVerified:    record.Verification.LoginVerified,
		LoginConfidence:  record.Verification.LoginConfidence,
		LogoutVerified:   record.Verification.LogoutVerified,
		LogoutConfidence: record.Verification.LogoutConfidence,
		FailureReason:    record.Verification.FailureReason,

		IsLate:        record.IsLate,
		IsEarlyLogout: record.IsEarlyLogout,
		IsOnLeave:     record.IsOnLeave,
		IsHoliday:     record.IsHoliday,
		IsWorkingDay:  record.IsWorkingDay,
		TotalHours:    record.TotalHours,
		OvertimeHours: record.OvertimeHours,
		StatusFlag:    record.StatusFlag,

		CreatedAt: record.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: record.UpdatedAt.Format("2006-01-02 15:04:05"),
	}

	if hasCoordinates(record.LoginLocation) || record.LoginLocation.Address != nil {
		loc := record.LoginLocation
		resp.LoginLocation = &loc
	}
	if hasCoordinates(record.LogoutLocation) || record.LogoutLocation.Address != nil {
		loc := record.LogoutLocation
		resp.LogoutLocation = &loc
	}

	return resp
}
